package main

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/daeshin/schoolhub/storage/database"
)

var gooseRunFunc func(command string, db *sql.DB, dir string, args ...string) error = database.GooseRun // mockable

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run goose migrations on the primary store",
		Long: `Run goose migrations on the primary store.

Commands: up, up-by-one, up-to VERSION, down, down-to VERSION, redo, reset, status, version, create NAME [go|sql], fix`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errHelp
			}
			return cli.migrate(args)
		},
	}
}

func (cli *commandLine) migrate(args []string) error {
	if cli.primaryDB == nil {
		return database.ErrUnavailable
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.primaryDB, database.MigrationsDir(), arguments...)
}

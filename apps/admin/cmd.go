package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	primaryDB *sql.DB // nil when the primary store is unreachable
	stores    map[string]attendance.Repository
	usrRepo   user.Repository
	out       io.Writer
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, a...)
}

// store returns the attendance store called name.
func (cli *commandLine) store(name string) (attendance.Repository, error) {
	if s, ok := cli.stores[name]; ok {
		return s, nil
	}
	names := make([]string, 0, len(cli.stores))
	for n := range cli.stores {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown store %q, want one of %s", name, strings.Join(names, ", "))
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "SchoolHub administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(
		cli.migrateCmd(),
		cli.syncCmd(),
		cli.exportCmd(),
		cli.seedCmd(),
		cli.clearCmd(),
		cli.addUserCmd(),
	)
	return root
}

// run executes the command line args, args[0] being the program name.
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	return root.Execute()
}

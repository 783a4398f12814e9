package main

import (
	"context"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/user"
)

func (cli *commandLine) addUserCmd() *cobra.Command {
	var id, name string
	cmd := &cobra.Command{
		Use:   "adduser --id ID --name NAME",
		Short: "Create a user. The password is prompted next",
		RunE: func(cmd *cobra.Command, args []string) error {
			if core.CleanString(id) == "" || core.CleanString(name) == "" {
				_ = cmd.Usage()
				return errHelp
			}
			cli.printf("Enter password:")
			pwd, err := readPasswordFunc(int(syscall.Stdin))
			cli.printf("\n")
			if err != nil {
				return err
			}
			if len(pwd) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.addUser(id, name, string(pwd))
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "login id of the user")
	cmd.Flags().StringVar(&name, "name", "", "display name of the user")
	return cmd
}

// addUser creates a user.User in the local store.
func (cli *commandLine) addUser(id, name, pwd string) error {
	usr := user.User{
		ID:        core.CleanString(id),
		Name:      core.CleanString(name),
		CreatedAt: core.NowFunc().UTC(),
	}
	if err := usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	if _, err := cli.usrRepo.CreateUser(context.Background(), usr); err != nil {
		return err
	}
	cli.printf("user %q created\n", usr.ID)
	return nil
}

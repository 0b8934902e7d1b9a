package main

import (
	"fmt"

	"github.com/krancour/usersapi/sdk/users"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to a users API server",
	Description: "Verifies that the API server is reachable with the given " +
		"token and saves both for use by subsequent commands.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Log into the API server at the specified address " +
				"(required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    flagToken,
			Aliases: []string{"t"},
			Usage: "Specify the API token; only required if the API server was " +
				"configured with one",
			EnvVars: []string{"USERS_API_TOKEN"},
		},
	},
	Action: login,
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Forget the saved API server address and token",
	Action: logout,
}

func login(c *cli.Context) error {
	address := c.String(flagServer)
	token := c.String(flagToken)

	client := users.NewUsersClient(address, token, c.Bool(flagInsecure))
	if _, err := client.List(c.Context); err != nil {
		return errors.Wrapf(err, "error contacting API server at %s", address)
	}

	if err := saveConfig(
		&config{
			APIAddress: address,
			APIToken:   token,
		},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	fmt.Printf("Logged in to %s.\n", address)
	return nil
}

func logout(c *cli.Context) error {
	if err := deleteConfig(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/krancour/usersapi/sdk/users"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/ssh/terminal"
)

var userCommand = &cli.Command{
	Name:  "user",
	Usage: "Manage users",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "Register a new user",
			Description: "Missing values are prompted for when running in a " +
				"terminal.",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagName,
					Aliases: []string{"n"},
					Usage:   "The new user's name",
				},
				&cli.StringFlag{
					Name:    flagEmail,
					Aliases: []string{"e"},
					Usage:   "The new user's email address",
				},
				cliFlagOutput,
			},
			Action: userCreate,
		},
		{
			Name:  "get",
			Usage: "Retrieve a user",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Retrieve the specified user (required)",
					Required: true,
				},
				cliFlagOutput,
			},
			Action: userGet,
		},
		{
			Name:  "list",
			Usage: "Retrieve all users",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: userList,
		},
	},
}

func userCreate(c *cli.Context) error {
	name := c.String(flagName)
	email := c.String(flagEmail)
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	if terminal.IsTerminal(int(os.Stdin.Fd())) {
		if name == "" {
			if err := survey.AskOne(
				&survey.Input{Message: "Name"},
				&name,
				survey.WithValidator(survey.Required),
			); err != nil {
				return errors.Wrap(err, "error prompting for name")
			}
		}
		if email == "" {
			if err := survey.AskOne(
				&survey.Input{Message: "Email"},
				&email,
				survey.WithValidator(survey.Required),
			); err != nil {
				return errors.Wrap(err, "error prompting for email")
			}
		}
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting users client")
	}

	// The API server validates name and email
	user, err := client.Create(
		c.Context,
		users.User{
			Name:  name,
			Email: email,
		},
	)
	if err != nil {
		return err
	}

	return printUsers(c.App.Writer, output, []users.User{user})
}

func userList(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting users client")
	}

	usrs, err := client.List(c.Context)
	if err != nil {
		return err
	}

	// Machine-readable formats print an empty list as is
	if len(usrs) == 0 && strings.ToLower(output) == outputFormatTable {
		fmt.Fprintln(c.App.Writer, "No users found.")
		return nil
	}

	return printUsers(c.App.Writer, output, usrs)
}

func userGet(c *cli.Context) error {
	id := c.Int64(flagID)
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting users client")
	}

	user, err := client.Get(c.Context, id)
	if err != nil {
		return err
	}

	return printUsers(c.App.Writer, output, []users.User{user})
}

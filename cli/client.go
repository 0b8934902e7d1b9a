package main

import (
	"github.com/krancour/usersapi/sdk/users"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func getClient(c *cli.Context) (users.UsersClient, error) {
	config, err := getConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "error retrieving configuration")
	}
	return users.NewUsersClient(
		config.APIAddress,
		config.APIToken,
		c.Bool(flagInsecure),
	), nil
}

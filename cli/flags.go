package main

import "github.com/urfave/cli/v2"

const (
	flagEmail    = "email"
	flagID       = "id"
	flagInsecure = "insecure"
	flagName     = "name"
	flagOutput   = "output"
	flagServer   = "server"
	flagToken    = "token"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: outputFormatTable,
	}
)

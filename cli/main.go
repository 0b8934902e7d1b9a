package main

import (
	"fmt"
	"os"

	"github.com/krancour/usersapi/internal/signals"
	"github.com/krancour/usersapi/internal/version"
	"github.com/urfave/cli/v2"
)

func main() {
	fmt.Println()
	if err := newApp().RunContext(signals.Context(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "users"
	app.Usage = "Manage the users registered with a users API server"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
	}
	app.Commands = []*cli.Command{
		loginCommand,
		logoutCommand,
		userCommand,
	}
	return app
}

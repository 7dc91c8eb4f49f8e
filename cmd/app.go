// Package cmd provides the mypaste CLI application
package cmd

import (
	"github.com/pasteclient/mypaste/config"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"os"
)

const (
	categoryText = "Text commands"
	categoryFile = "File commands"
)

// New creates a new CLI application
func New() *cli.App {
	return &cli.App{
		Name:                   "mypaste",
		Usage:                  "send, get and delete pastes on a remote paste server",
		UsageText:              "mypaste [GLOBAL OPTIONS..] COMMAND [OPTION..] [ARG..]",
		HideHelp:               true,
		HideVersion:            true,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Reader:                 os.Stdin,
		Writer:                 os.Stdout,
		ErrWriter:              os.Stderr,
		Before:                 initApp,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load config file from `FILE`"},
			&cli.StringFlag{Name: "base-url", Aliases: []string{"b"}, Usage: "talk to paste server at `URL`"},
			&cli.StringFlag{Name: "proxy", Aliases: []string{"p"}, Usage: "route all requests through proxy `URL`"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "do not output progress"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			// Text commands
			cmdSend,
			cmdGet,
			cmdDelete,
			cmdLast,

			// File commands
			cmdFile,
		},
	}
}

// Run runs the CLI application with the given arguments
func Run(app *cli.App, args ...string) error {
	return app.Run(args)
}

func initApp(c *cli.Context) error {
	log.SetOutput(c.App.ErrWriter)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if c.Bool("debug") {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	return config.LoadDotEnv(config.DefaultDotEnvFile)
}

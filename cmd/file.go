package cmd

import (
	"errors"
	"github.com/urfave/cli/v2"
)

var cmdFile = &cli.Command{
	Name:     "file",
	Aliases:  []string{"f"},
	Usage:    "Send, get and delete files",
	Category: categoryFile,
	Subcommands: []*cli.Command{
		{
			Name:      "send",
			Usage:     "Upload a file and print the server's answer",
			UsageText: "mypaste file send FILE",
			Action:    execFileSendCmd,
			Description: `Uploads FILE to the paste server. The file is streamed, so it can be arbitrarily
large. Its content type is derived from the file extension.

Examples:
  mypaste file send report.pdf   # Uploads report.pdf`,
		},
		{
			Name:      "get",
			Usage:     "Download a file",
			UsageText: "mypaste file get NAME [DEST]",
			Action:    execFileGetCmd,
			Description: `Downloads the file NAME from the paste server to DEST. If DEST is omitted, the file
is saved in the current directory. If DEST is a directory, the file is saved in it.

Examples:
  mypaste file get report.pdf           # Saves report.pdf in the current directory
  mypaste file get report.pdf /tmp/r.pdf`,
		},
		{
			Name:      "delete",
			Aliases:   []string{"rm"},
			Usage:     "Delete a file",
			UsageText: "mypaste file delete NAME",
			Action:    execFileDeleteCmd,
		},
	},
}

func execFileSendCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return errFileSendArgs
	}
	return dispatch(c, opFileSend{filename: c.Args().First()})
}

func execFileGetCmd(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return errFileGetArgs
	}
	return dispatch(c, opFileGet{name: c.Args().Get(0), dest: c.Args().Get(1)})
}

func execFileDeleteCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return errFileDeleteArgs
	}
	return dispatch(c, opFileDelete{name: c.Args().First()})
}

var (
	errFileSendArgs   = errors.New("invalid arguments: exactly one FILE required, see 'mypaste file send --help'")
	errFileGetArgs    = errors.New("invalid arguments: NAME and optional DEST required, see 'mypaste file get --help'")
	errFileDeleteArgs = errors.New("invalid arguments: exactly one NAME required, see 'mypaste file delete --help'")
)

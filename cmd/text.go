package cmd

import (
	"errors"
	"fmt"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
	"io"
	"os"
	"strings"
)

var cmdSend = &cli.Command{
	Name:      "send",
	Aliases:   []string{"s"},
	Usage:     "Send text to the paste server and print its token",
	UsageText: "mypaste send [TEXT..]",
	Action:    execSendCmd,
	Category:  categoryText,
	Description: `Sends TEXT to the paste server. If no TEXT is given, the text is read from STDIN
until EOF. The token returned by the server is printed and remembered, so that it can
be recalled later using 'mypaste last'.

Examples:
  mypaste send hello world     # Sends 'hello world'
  mypaste send < notes.txt     # Sends the contents of notes.txt
  mypaste send                 # Reads text from the terminal, end with Ctrl-D`,
}

var cmdGet = &cli.Command{
	Name:      "get",
	Aliases:   []string{"g"},
	Usage:     "Print the text stored under a token",
	UsageText: "mypaste get [TOKEN]",
	Action:    execGetCmd,
	Category:  categoryText,
	Description: `Retrieves the text stored under TOKEN and prints it to STDOUT. Whatever the server
answers is printed, including error pages. If TOKEN is not given, it is read from STDIN.

Examples:
  mypaste get abc123           # Prints the paste 'abc123'`,
}

var cmdDelete = &cli.Command{
	Name:      "delete",
	Aliases:   []string{"d", "rm"},
	Usage:     "Delete the text stored under a token",
	UsageText: "mypaste delete [OPTIONS..] [TOKEN]",
	Action:    execDeleteCmd,
	Category:  categoryText,
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "body", Aliases: []string{"B"}, Usage: "send `TEXT` as request body, e.g. as confirmation"},
	},
	Description: `Deletes the text stored under TOKEN and prints the server's answer. If TOKEN is not
given, it is read from STDIN.

Examples:
  mypaste delete abc123                 # Deletes the paste 'abc123'
  mypaste delete --body secret abc123   # Same, but sends 'secret' along`,
}

var cmdLast = &cli.Command{
	Name:     "last",
	Aliases:  []string{"l"},
	Usage:    "Print the address of the last sent paste",
	Action:   execLastCmd,
	Category: categoryText,
}

func execSendCmd(c *cli.Context) error {
	if c.NArg() > 0 {
		return dispatch(c, opSend{text: strings.Join(c.Args().Slice(), " ")})
	}
	text, err := readInput(c, "(Reading message from STDIN, press Ctrl-D to send)")
	if err != nil {
		return err
	}
	return dispatch(c, opSend{text: text})
}

func execGetCmd(c *cli.Context) error {
	token, err := tokenArg(c)
	if err != nil {
		return err
	}
	return dispatch(c, opGet{token: token})
}

func execDeleteCmd(c *cli.Context) error {
	token, err := tokenArg(c)
	if err != nil {
		return err
	}
	return dispatch(c, opDelete{token: token, body: c.String("body")})
}

func execLastCmd(c *cli.Context) error {
	return dispatch(c, opLast{})
}

// tokenArg returns the first argument, or reads the token from STDIN if there is none
func tokenArg(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return c.Args().First(), nil
	}
	token, err := readInput(c, "(Reading token from STDIN, press Ctrl-D to end)")
	if err != nil {
		return "", err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

// readInput reads the app's input until EOF. If the input is a terminal, the hint is printed first.
func readInput(c *cli.Context, hint string) (string, error) {
	if stdin, ok := c.App.Reader.(*os.File); ok && term.IsTerminal(int(stdin.Fd())) {
		fmt.Fprintln(c.App.ErrWriter, hint)
		fmt.Fprintln(c.App.ErrWriter)
	}
	b, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var errMissingToken = errors.New("missing token: pass it as argument or via STDIN")

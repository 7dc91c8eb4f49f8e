package cmd

import (
	"errors"
	"fmt"
	"github.com/pasteclient/mypaste/client"
	"github.com/pasteclient/mypaste/config"
	"github.com/pasteclient/mypaste/util"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"os"
	"path/filepath"
	"strings"
)

// operation is one of the things the CLI can do. The set of operations is closed: every command
// produces exactly one of the op* types below, and dispatch handles all of them.
type operation interface {
	isOperation()
}

type opGet struct {
	token string
}

type opSend struct {
	text string
}

type opDelete struct {
	token string
	body  string
}

type opLast struct{}

type opFileGet struct {
	name string
	dest string
}

type opFileSend struct {
	filename string
}

type opFileDelete struct {
	name string
}

func (opGet) isOperation()        {}
func (opSend) isOperation()       {}
func (opDelete) isOperation()     {}
func (opLast) isOperation()       {}
func (opFileGet) isOperation()    {}
func (opFileSend) isOperation()   {}
func (opFileDelete) isOperation() {}

func dispatch(c *cli.Context, op operation) error {
	switch op := op.(type) {
	case opGet:
		return execGet(c, op)
	case opSend:
		return execSend(c, op)
	case opDelete:
		return execDelete(c, op)
	case opLast:
		return execLast(c)
	case opFileGet:
		return execFileGet(c, op)
	case opFileSend:
		return execFileSend(c, op)
	case opFileDelete:
		return execFileDelete(c, op)
	default:
		return fmt.Errorf("unknown operation %T", op)
	}
}

func execGet(c *cli.Context, op opGet) error {
	pclient, _, err := newClient(c, "")
	if err != nil {
		return err
	}
	addr, err := client.Resolve(pclient.Endpoint(), client.Flat, op.token)
	if err != nil {
		return err
	}
	text, err := pclient.FetchText(addr)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, text)
	return nil
}

func execSend(c *cli.Context, op opSend) error {
	pclient, conf, err := newClient(c, "")
	if err != nil {
		return err
	}
	token, err := pclient.SubmitText(client.Root(pclient.Endpoint(), client.Flat), op.text)
	if err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if err := config.NewHistory(conf.HistoryFile).Write(token); err != nil {
		log.WithError(err).Warn("Failed to record history")
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}

func execDelete(c *cli.Context, op opDelete) error {
	pclient, _, err := newClient(c, "")
	if err != nil {
		return err
	}
	addr, err := client.Resolve(pclient.Endpoint(), client.Flat, op.token)
	if err != nil {
		return err
	}
	resp, err := pclient.Delete(addr, op.body)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, resp)
	return nil
}

func execLast(c *cli.Context) error {
	pclient, conf, err := newClient(c, "")
	if err != nil {
		return err
	}
	token, err := config.NewHistory(conf.HistoryFile).Read()
	if errors.Is(err, config.ErrNoHistory) {
		fmt.Fprintln(c.App.Writer, "No history recorded!")
		return nil
	} else if err != nil {
		return err
	}
	addr, err := client.Resolve(pclient.Endpoint(), client.Flat, strings.TrimSpace(token))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, addr.String())
	return nil
}

func execFileGet(c *cli.Context, op opFileGet) error {
	pclient, _, err := newClient(c, "Downloading")
	if err != nil {
		return err
	}
	addr, err := client.Resolve(pclient.Endpoint(), client.Versioned, op.name)
	if err != nil {
		return err
	}
	dest := op.dest
	if dest == "" {
		dest = filepath.Base(op.name)
	} else if stat, err := os.Stat(dest); err == nil && stat.IsDir() {
		dest = filepath.Join(dest, filepath.Base(op.name))
	}
	written, err := pclient.Download(addr, dest)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": dest, "size": written}).Debug("Download complete")
	if !c.Bool("quiet") {
		fmt.Fprintf(c.App.ErrWriter, "Saved %s to %s\n", op.name, util.CollapseHome(dest))
	}
	return nil
}

func execFileSend(c *cli.Context, op opFileSend) error {
	pclient, _, err := newClient(c, "Uploading")
	if err != nil {
		return err
	}
	f, err := os.Open(op.filename)
	if err != nil {
		return &client.IOError{Op: "open", Path: op.filename, Err: err}
	}
	defer f.Close()
	name := filepath.Base(op.filename)
	resp, err := pclient.SubmitStream(client.Root(pclient.Endpoint(), client.Versioned), f, name, util.InferMIME(name))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, resp)
	return nil
}

func execFileDelete(c *cli.Context, op opFileDelete) error {
	pclient, _, err := newClient(c, "")
	if err != nil {
		return err
	}
	addr, err := client.Resolve(pclient.Endpoint(), client.Versioned, op.name)
	if err != nil {
		return err
	}
	resp, err := pclient.Delete(addr, "")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, resp)
	return nil
}

// newClient loads the config, applies the command line overrides and creates the paste client. If
// progressLabel is not empty and --quiet is not set, transfer progress is printed to the error writer.
func newClient(c *cli.Context, progressLabel string) (*client.Client, *config.Config, error) {
	configFile := c.String("config")
	if configFile == "" {
		configFile = config.DefaultFile()
	}
	conf, err := config.Load(configFile)
	if err != nil {
		return nil, nil, &client.ConfigError{Field: "config file", Value: configFile, Err: err}
	}
	if baseURL := c.String("base-url"); baseURL != "" {
		conf.BaseURL = baseURL
	}
	if proxy := c.String("proxy"); proxy != "" {
		conf.Proxy = proxy
	}
	if progressLabel != "" && !c.Bool("quiet") {
		conf.ProgressFunc = newProgressPrinter(c.App.ErrWriter, progressLabel).Print
	}
	pclient, err := client.NewClient(conf)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("base_url", conf.BaseURL).Debug("Client created")
	return pclient, conf, nil
}

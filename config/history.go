package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// History stores the last token returned by the server
type History struct {
	filename string
}

// NewHistory creates a history backed by the given file
func NewHistory(filename string) *History {
	return &History{
		filename: filename,
	}
}

// Filename returns the path of the history file
func (h *History) Filename() string {
	return h.filename
}

// Write replaces the recorded token, creating the config directory if needed
func (h *History) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(h.filename), 0700); err != nil {
		return err
	}
	return os.WriteFile(h.filename, []byte(token), 0600)
}

// Read returns the recorded token, or ErrNoHistory if nothing has been recorded yet
func (h *History) Read() (string, error) {
	b, err := os.ReadFile(h.filename)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoHistory
	} else if err != nil {
		return "", err
	}
	return string(b), nil
}

// ErrNoHistory is returned by History.Read if no token has been recorded
var ErrNoHistory = errors.New("no history recorded")

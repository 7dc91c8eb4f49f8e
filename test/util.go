// Package test provides assertion and fixture helpers for tests
package test

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"
)

// RandomBytes returns n random bytes and fails t if that fails
func RandomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatal(err)
	}
	return b
}

// WriteFile writes content to a file called name in dir, and returns the full path. It fails t if that fails.
func WriteFile(t *testing.T, dir string, name string, content []byte) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, content, 0600); err != nil {
		t.Fatal(err)
	}
	return filename
}

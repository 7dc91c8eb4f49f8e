package test

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// StrEquals tests two strings for equality and fails t if they are not equal
func StrEquals(t *testing.T, expected string, actual string) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected %s, got %s", expected, actual)
	}
}

// StrContains tests if substr is contained in s and fails t if it is not
func StrContains(t *testing.T, s string, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Fatalf("expected %s to be contained in string, but it wasn't: %s", substr, s)
	}
}

// Int64Equals tests if two int64s for equality and fails t if they are not equal
func Int64Equals(t *testing.T, expected int64, actual int64) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected %d, got %d", expected, actual)
	}
}

// BoolEquals tests if two bools for equality and fails t if they are not equal
func BoolEquals(t *testing.T, expected bool, actual bool) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected %t, got %t", expected, actual)
	}
}

// BytesEquals tests if two byte arrays for equality and fails t if they are not equal
func BytesEquals(t *testing.T, expected []byte, actual []byte) {
	t.Helper()
	if !bytes.Equal(actual, expected) {
		t.Fatalf("expected %x, got %x", expected, actual)
	}
}

// FileNotExist asserts that a file does not exist and fails t if it does
func FileNotExist(t *testing.T, filename string) {
	t.Helper()
	if stat, _ := os.Stat(filename); stat != nil {
		t.Fatalf("expected file %s to not exist, but it does", filename)
	}
}

// FileExist asserts that a file exists and fails t if it does not
func FileExist(t *testing.T, filename string) {
	t.Helper()
	if stat, _ := os.Stat(filename); stat == nil {
		t.Fatalf("expected file %s to exist, but it does not", filename)
	}
}

// FileContent asserts that a file exists and has the expected content, and fails t if it does not
func FileContent(t *testing.T, filename string, expected []byte) {
	t.Helper()
	actual, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(actual, expected) {
		t.Fatalf("expected file %s to have %d byte(s) of expected content, got %d byte(s) that differ", filename, len(expected), len(actual))
	}
}

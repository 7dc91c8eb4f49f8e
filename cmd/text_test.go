package cmd

import (
	"errors"
	"github.com/pasteclient/mypaste/client"
	"github.com/pasteclient/mypaste/config"
	"github.com/pasteclient/mypaste/pastetest"
	"github.com/pasteclient/mypaste/test"
	"testing"
)

func TestCLI_SendGetDeleteLast(t *testing.T) {
	historyFile := newTestEnv(t)
	serv := pastetest.NewServer(t)

	app, _, stdout, _ := newTestApp()
	if err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "send", "hello", "world"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "token1\n", stdout.String())
	test.FileContent(t, historyFile, []byte("token1"))
	text, _ := serv.Text("token1")
	test.StrEquals(t, "hello world", text)

	app, _, stdout, _ = newTestApp()
	if err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "last"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, serv.BaseURL()+"/token1\n", stdout.String())

	app, _, stdout, _ = newTestApp()
	if err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "get", "token1"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "hello world\n", stdout.String())

	app, _, stdout, _ = newTestApp()
	if err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "delete", "--body", "yes", "token1"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "deleted token1\n", stdout.String())
	test.StrEquals(t, "yes", serv.LastRequest().Body)
}

func TestCLI_SendFromStdin(t *testing.T) {
	newTestEnv(t)
	serv := pastetest.NewServer(t)

	app, stdin, stdout, stderr := newTestApp()
	stdin.WriteString("line one\nline two\n")
	if err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "send"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "token1\n", stdout.String())
	test.StrEquals(t, "", stderr.String()) // Not a terminal, no hint
	text, _ := serv.Text("token1")
	test.StrEquals(t, "line one\nline two\n", text)
}

func TestCLI_GetTokenFromStdin(t *testing.T) {
	newTestEnv(t)
	serv := pastetest.NewServer(t)
	serv.PutText("abc", "some text")

	app, stdin, stdout, _ := newTestApp()
	stdin.WriteString("  abc\n")
	if err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "get"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "some text\n", stdout.String())
}

func TestCLI_GetMissingToken(t *testing.T) {
	newTestEnv(t)
	serv := pastetest.NewServer(t)

	app, _, _, _ := newTestApp()
	err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "get")
	if err != errMissingToken {
		t.Fatalf("expected errMissingToken, got %v", err)
	}
}

func TestCLI_SendEmptyRemoteError(t *testing.T) {
	historyFile := newTestEnv(t)
	serv := pastetest.NewServer(t)

	app, _, _, _ := newTestApp()
	err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "send")
	var remoteErr *client.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	test.FileNotExist(t, historyFile)
}

func TestCLI_LastNoHistory(t *testing.T) {
	newTestEnv(t)

	app, _, stdout, _ := newTestApp()
	if err := Run(app, "mypaste", "--base-url", "https://paste.example/api", "last"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "No history recorded!\n", stdout.String())
}

func TestCLI_ConfigFileAndEnv(t *testing.T) {
	newTestEnv(t)
	serv := pastetest.NewServer(t)
	configFile := test.WriteFile(t, t.TempDir(), "config.toml", []byte(`base_url = "`+serv.BaseURL()+`"`))

	app, _, stdout, _ := newTestApp()
	if err := Run(app, "mypaste", "--config", configFile, "send", "from config"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "token1\n", stdout.String())

	t.Setenv(config.EnvBaseURL, serv.BaseURL())
	app, _, stdout, _ = newTestApp()
	if err := Run(app, "mypaste", "get", "token1"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "from config\n", stdout.String())
}

func TestCLI_Proxy(t *testing.T) {
	newTestEnv(t)
	serv := pastetest.NewServer(t)
	serv.TokenFunc = func() string { return "abc123" }

	app, _, stdout, _ := newTestApp()
	if err := Run(app, "mypaste", "--base-url", "http://paste.example/api", "--proxy", serv.URL, "send", "hi"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "abc123\n", stdout.String())
	test.StrEquals(t, "paste.example", serv.LastRequest().Host)
}

func TestCLI_MissingBaseURL(t *testing.T) {
	newTestEnv(t)

	app, _, _, _ := newTestApp()
	err := Run(app, "mypaste", "get", "abc")
	var configErr *client.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestCLI_MalformedConfigFile(t *testing.T) {
	newTestEnv(t)
	configFile := test.WriteFile(t, t.TempDir(), "config.toml", []byte(`base_url = "unterminated`))

	app, _, _, _ := newTestApp()
	err := Run(app, "mypaste", "--config", configFile, "get", "abc")
	var configErr *client.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	test.StrEquals(t, configFile, configErr.Value)
}

func TestCLI_InvalidToken(t *testing.T) {
	newTestEnv(t)
	serv := pastetest.NewServer(t)

	app, _, _, _ := newTestApp()
	err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "get", "https://evil.example/x")
	var addrErr *client.AddressError
	if !errors.As(err, &addrErr) {
		t.Fatalf("expected AddressError, got %v", err)
	}
	if len(serv.Requests()) != 0 {
		t.Fatalf("expected no requests, got %d", len(serv.Requests()))
	}
}

func TestCLI_SendTokenWithTrailingNewline(t *testing.T) {
	historyFile := newTestEnv(t)
	serv := pastetest.NewServer(t)
	serv.TokenFunc = func() string { return "abc123\n" }

	app, _, stdout, _ := newTestApp()
	if err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "send", "hi"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "abc123\n", stdout.String())
	test.FileContent(t, historyFile, []byte("abc123"))

	app, _, stdout, _ = newTestApp()
	if err := Run(app, "mypaste", "--base-url", serv.BaseURL(), "last"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, serv.BaseURL()+"/abc123\n", stdout.String())
}

func TestCLI_LastTrimsLegacyHistory(t *testing.T) {
	historyFile := newTestEnv(t)
	if err := config.NewHistory(historyFile).Write("xyz789\r\n"); err != nil {
		t.Fatal(err)
	}

	app, _, stdout, _ := newTestApp()
	if err := Run(app, "mypaste", "--base-url", "https://paste.example/api", "last"); err != nil {
		t.Fatal(err)
	}
	test.StrEquals(t, "https://paste.example/api/xyz789\n", stdout.String())
}

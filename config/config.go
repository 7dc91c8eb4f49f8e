// Package config provides the configuration of the paste client, and the history of the last submitted token
package config

import (
	"github.com/joho/godotenv"
	"github.com/pasteclient/mypaste/util"
	"github.com/spf13/viper"
	"os"
)

const (
	// DefaultConfigFile is the location at which the client looks for its config file if none is given
	DefaultConfigFile = "~/.config/paste-client/config.toml"

	// DefaultHistoryFile is the location of the file that holds the last submitted token
	DefaultHistoryFile = "~/.config/paste-client/history_token"

	// DefaultDotEnvFile is loaded into the environment (without overriding it) before the config is read
	DefaultDotEnvFile = ".env"

	// EnvConfigFile allows overriding the config file location
	EnvConfigFile = "MYPASTE_CONFIG"

	// EnvHistoryFile allows overriding the history file location
	EnvHistoryFile = "MYPASTE_HISTORY"

	// EnvBaseURL overrides the base URL from the config file
	EnvBaseURL = "BASE_URL"

	// EnvProxy overrides the proxy URL from the config file
	EnvProxy = "PROXY"

	keyBaseURL = "base_url"
	keyProxy   = "proxy"
)

// Config is the configuration of the paste client. BaseURL is the only required setting; it is validated
// when the client is created, not when the config is loaded.
type Config struct {
	BaseURL      string
	Proxy        string
	HistoryFile  string
	ProgressFunc util.ProgressFunc
}

// New returns the default config
func New() *Config {
	historyFile := os.Getenv(EnvHistoryFile)
	if historyFile == "" {
		historyFile = util.ExpandHome(DefaultHistoryFile)
	}
	return &Config{
		BaseURL:      "",
		Proxy:        "",
		HistoryFile:  historyFile,
		ProgressFunc: nil,
	}
}

// Load reads the config from the given TOML file, or from the default location if filename is empty. A
// missing config file is not an error, since all settings can also be passed via the environment. Environment
// variables take precedence over values from the file. A malformed file fails with the parser's error.
func Load(filename string) (*Config, error) {
	if filename == "" {
		filename = DefaultFile()
	}
	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("toml")
	if err := v.BindEnv(keyBaseURL, EnvBaseURL); err != nil {
		return nil, err
	}
	if err := v.BindEnv(keyProxy, EnvProxy); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filename); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	conf := New()
	conf.BaseURL = v.GetString(keyBaseURL)
	conf.Proxy = v.GetString(keyProxy)
	return conf, nil
}

// DefaultFile returns the config file location, taking the EnvConfigFile override into account
func DefaultFile() string {
	if filename := os.Getenv(EnvConfigFile); filename != "" {
		return filename
	}
	return util.ExpandHome(DefaultConfigFile)
}

// LoadDotEnv loads environment variables from the given dotenv file. Variables that are already set are not
// overridden, and a missing file is silently ignored.
func LoadDotEnv(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return nil
	}
	return godotenv.Load(filename)
}

// Copyright (C) 2025 ConsentHound Contributors
//
// This file is part of ConsentHound.
//
// ConsentHound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ConsentHound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const EnvPrefix = "CONSENTHOUND"

// Option is a single configuration value sourced, in order of precedence,
// from command line flag, environment variable or config file.
type Option struct {
	Name       string
	Shorthand  string
	Usage      string
	Required   bool
	Persistent bool
	Default    interface{}
}

func (s Option) Value() interface{} {
	return viper.Get(s.Name)
}

func (s Option) Set(value interface{}) {
	viper.Set(s.Name, value)
}

var (
	ConfigFile = Option{
		Name:       "config",
		Shorthand:  "c",
		Usage:      fmt.Sprintf("Location of the configuration file (default %s)", DefaultConfigFile()),
		Persistent: true,
		Default:    "",
	}

	VerbosityLevel = Option{
		Name:       "verbosity",
		Shorthand:  "v",
		Usage:      "Verbosity level: 0 = info, 1 = debug, 2 = trace",
		Persistent: true,
		Default:    0,
	}

	JsonLogs = Option{
		Name:       "json",
		Usage:      "Output logs as json",
		Persistent: true,
		Default:    false,
	}

	Proxy = Option{
		Name:       "proxy",
		Usage:      "Sets the proxy URL for all requests",
		Persistent: true,
		Default:    "",
	}

	AzTenant = Option{
		Name:       "tenant",
		Shorthand:  "t",
		Usage:      "The directory tenant to audit, either the tenant id or an owned domain name",
		Persistent: true,
		Default:    "",
	}

	AzAppId = Option{
		Name:       "app",
		Shorthand:  "a",
		Usage:      "The client id of the enterprise application used to authenticate",
		Persistent: true,
		Default:    "",
	}

	AzSecret = Option{
		Name:       "secret",
		Shorthand:  "s",
		Usage:      "The client secret of the enterprise application",
		Persistent: true,
		Default:    "",
	}

	AzCert = Option{
		Name:       "cert",
		Usage:      "Path to a PEM encoded certificate used to authenticate",
		Persistent: true,
		Default:    "",
	}

	AzKey = Option{
		Name:       "key",
		Usage:      "Path to the PEM encoded private key for --cert",
		Persistent: true,
		Default:    "",
	}

	AzKeyPass = Option{
		Name:       "keypass",
		Usage:      "Passphrase for the private key, if encrypted",
		Persistent: true,
		Default:    "",
	}

	AzUsername = Option{
		Name:       "username",
		Shorthand:  "u",
		Usage:      "Username to authenticate with (resource owner password flow)",
		Persistent: true,
		Default:    "",
	}

	AzPassword = Option{
		Name:       "password",
		Shorthand:  "p",
		Usage:      "Password to authenticate with (resource owner password flow)",
		Persistent: true,
		Default:    "",
	}
)

// GlobalOptions are registered on the root command and shared by every
// subcommand.
func GlobalOptions() []Option {
	return []Option{
		ConfigFile,
		VerbosityLevel,
		JsonLogs,
		Proxy,
		AzTenant,
		AzAppId,
		AzSecret,
		AzCert,
		AzKey,
		AzKeyPass,
		AzUsername,
		AzPassword,
	}
}

// Init loads configuration from the environment and the config file. Flag
// values take precedence because they are bound directly to viper.
func Init() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configFile := DefaultConfigFile()
	if path, ok := ConfigFile.Value().(string); ok && path != "" {
		configFile = path
	}
	viper.SetConfigFile(configFile)

	// A missing config file is fine; flags and env still apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "unable to read config file %s: %v\n", configFile, err)
		}
	}
}

func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "consenthound")
	}
	return filepath.Join(home, ".config", "consenthound")
}

func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// WriteConfig persists the current viper state to the config file, creating
// the directory as needed. Used by the configure command.
func WriteConfig() error {
	if err := os.MkdirAll(DefaultConfigDir(), 0o755); err != nil {
		return err
	}
	return viper.WriteConfigAs(DefaultConfigFile())
}

// RegisterFlags binds each option to a cobra flag backed by viper.
func RegisterFlags(cmd *cobra.Command, options []Option) error {
	for _, option := range options {
		flags := cmd.Flags()
		if option.Persistent {
			flags = cmd.PersistentFlags()
		}

		switch defaultValue := option.Default.(type) {
		case string:
			flags.StringP(option.Name, option.Shorthand, defaultValue, option.Usage)
		case bool:
			flags.BoolP(option.Name, option.Shorthand, defaultValue, option.Usage)
		case int:
			flags.IntP(option.Name, option.Shorthand, defaultValue, option.Usage)
		case []string:
			flags.StringSliceP(option.Name, option.Shorthand, defaultValue, option.Usage)
		default:
			return fmt.Errorf("unsupported default type for option %s: %T", option.Name, option.Default)
		}

		if option.Required {
			if err := cmd.MarkFlagRequired(option.Name); err != nil {
				return err
			}
		}

		if err := viper.BindPFlag(option.Name, flags.Lookup(option.Name)); err != nil {
			return err
		}
	}
	return nil
}

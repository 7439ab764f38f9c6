// SPDX-License-Identifier: Apache-2.0

// Package config holds the process-wide configuration loaded from the config
// file and GMM_* environment variables.
package config

import (
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/spf13/viper"

	"github.com/gmm-app/gmm/internal/core"
)

// Config is the root configuration document.
type Config struct {
	Log  logx.LoggingConfig `yaml:"log" json:"log" mapstructure:"log"`
	Game GameConfig         `yaml:"game" json:"game" mapstructure:"game"`
}

// GameConfig pins the game install and the prerequisite package source.
type GameConfig struct {
	// Dir overrides automatic install detection when set.
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"`

	// ScriptHookURL overrides the default prerequisite archive location.
	ScriptHookURL string `yaml:"scriptHookUrl" json:"scriptHookUrl" mapstructure:"scriptHookUrl"`
}

var globalConfig = Config{
	Log: logx.LoggingConfig{
		Level:          "info",
		ConsoleLogging: true,
		FileLogging:    false,
	},
	Game: GameConfig{
		ScriptHookURL: core.ScriptHookArchiveURL,
	},
}

// Initialize loads the configuration from the specified file. An empty path
// keeps the built-in defaults.
func Initialize(path string) error {
	if path != "" {
		globalConfig = Config{}
		viper.Reset()
		viper.SetConfigFile(path)
		viper.SetEnvPrefix("GMM")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		err := viper.ReadInConfig()
		if err != nil {
			return NotFoundError.Wrap(err, "failed to read config file: %s", path).
				WithProperty(errorx.PropertyPayload(), path)
		}

		if err := viper.Unmarshal(&globalConfig); err != nil {
			return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
				WithProperty(errorx.PropertyPayload(), path)
		}

		if globalConfig.Game.ScriptHookURL == "" {
			globalConfig.Game.ScriptHookURL = core.ScriptHookArchiveURL
		}
	}

	return nil
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}

// Set replaces the loaded configuration. Intended for tests.
func Set(c *Config) error {
	globalConfig = *c
	return nil
}

// SetGameDir pins the game install directory in the global configuration.
func SetGameDir(dir string) {
	globalConfig.Game.Dir = dir
}

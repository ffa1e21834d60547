// Package configuration defines a configuration engine for the entire app.
//
// The configuration features:
//   - takes the variables loaded from the environment files.
//   - falls back to the process environment for the rest.
//   - reads the optional envboot.yml project file.
//   - allows setting default variables if user didn't define them.
package configuration

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ahmetson/envboot/env"
	"github.com/ahmetson/envboot/log"
	"github.com/spf13/viper"
)

const (
	// FileNameKey is the environment variable to override the project file name
	FileNameKey = "ENVBOOT_CONFIG_NAME"
	// FilePathKey is the environment variable to override the project file directory
	FilePathKey = "ENVBOOT_CONFIG_PATH"
	// RequiredKey lists the variables in the project file that must be set
	RequiredKey = "required"
)

// Config Configuration Engine based on viper.Viper
type Config struct {
	viper  *viper.Viper // used to keep default values
	logger *log.Logger  // debug purpose only
	loaded *env.Result
	file   string // the project file used, empty if not found
}

// New creates a configuration from the loaded environment files.
//
// The project file is optional. An error is returned only if it exists but can't be read.
func New(logger *log.Logger, loaded *env.Result) (*Config, error) {
	conf := Config{
		viper:  viper.New(),
		logger: logger,
		loaded: loaded,
	}

	// replace the values with the ones we fetched from environment files
	conf.viper.AutomaticEnv()
	for _, key := range loaded.Keys() {
		conf.viper.Set(key, loaded.Vars[key])
	}

	conf.viper.SetDefault(FileNameKey, "envboot")
	conf.viper.SetDefault(FilePathKey, loaded.Dir)

	conf.viper.SetConfigName(conf.viper.GetString(FileNameKey))
	conf.viper.SetConfigType("yaml")
	conf.viper.AddConfigPath(conf.viper.GetString(FilePathKey))
	err := conf.viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.Debug("project file wasn't found", "name", conf.viper.GetString(FileNameKey), "path", conf.viper.GetString(FilePathKey))
			return &conf, nil
		}
		return nil, fmt.Errorf("viper.ReadInConfig: %w", err)
	}

	conf.file = conf.viper.ConfigFileUsed()
	logger.Info("project file loaded", "file", conf.file, "required", len(conf.Required()))

	return &conf, nil
}

// Loaded returns the result of the environment files loading
func (config *Config) Loaded() *env.Result {
	return config.loaded
}

// File returns the path of the project file. Empty if it wasn't found.
func (config *Config) File() string {
	return config.file
}

// SetDefaults sets the default configuration parameters.
func (config *Config) SetDefaults(defaultConfig DefaultConfig) {
	for name, value := range defaultConfig.Parameters {
		if value == nil {
			continue
		}
		// already set, don't use the default
		if config.viper.IsSet(name) {
			continue
		}
		config.logger.Debug("Set default for "+defaultConfig.Title, name, value)
		config.SetDefault(name, value)
	}
}

// SetDefault sets the default configuration name to the value
func (config *Config) SetDefault(name string, value interface{}) {
	config.viper.SetDefault(name, value)
}

// Exist Checks whether the configuration variable exists and is not empty.
// If the configuration exists or its default value exists, then returns true.
func (config *Config) Exist(name string) bool {
	value, ok := config.Lookup(name)
	return ok && len(value) > 0
}

// GetString Returns the configuration parameter as a string
func (config *Config) GetString(name string) string {
	return config.viper.GetString(name)
}

// GetDuration Returns the configuration parameter as a duration such as "10s"
func (config *Config) GetDuration(name string) time.Duration {
	return config.viper.GetDuration(name)
}

// Required returns the variable names listed in the project file
func (config *Config) Required() []string {
	if len(config.file) == 0 {
		return []string{}
	}

	raw := config.viper.GetStringSlice(RequiredKey)
	required := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if len(name) > 0 {
			required = append(required, name)
		}
	}
	return required
}

// Missing returns the required variables that are not set or empty
func (config *Config) Missing() []string {
	missing := make([]string, 0)
	for _, name := range config.Required() {
		if !config.Exist(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Lookup returns the configuration parameter and whether it's set.
// It has the same signature as os.LookupEnv.
//
// Environment variable names are case-sensitive, while viper folds them to lower case.
// So the environment files and the process environment are checked by the exact name first.
// Only the project file and the defaults go through viper.
// A variable set to the empty string is set.
func (config *Config) Lookup(name string) (string, bool) {
	if value, ok := config.loaded.Lookup(name); ok {
		return value, true
	}
	if value, ok := os.LookupEnv(name); ok {
		return value, true
	}
	if config.viper.IsSet(name) {
		return config.viper.GetString(name), true
	}
	return "", false
}

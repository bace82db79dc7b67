package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/gcue/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDBURI           = "db_uri"
	cfgKeyNeo4jUser       = "neo4j_user"
	cfgKeyNeo4jPassword   = "neo4j_password"
	cfgKeyNeo4jDB         = "neo4j_db"
	cfgKeyPager           = "pager"
	cfgKeyResultsDir      = "results_directory"
	cfgKeyResultsFormat   = "results_format"
	cfgKeyLogLevel        = "log_level"
	cfgKeyDataDir         = "data_dir"
	cfgKeyContinueOnError = "console.continue_on_error"

	defaultResultsDir    = ".gcue"
	defaultResultsFormat = "csv"
	defaultLogLevel      = "info"
)

// envBindings maps config keys to the environment variables that override
// them.
var envBindings = map[string]string{
	cfgKeyDBURI:         types.SettingDBURI,
	cfgKeyNeo4jUser:     types.SettingUser,
	cfgKeyNeo4jPassword: types.SettingPassword,
	cfgKeyNeo4jDB:       types.SettingDatabase,
	cfgKeyPager:         "GCUE_PAGER",
	cfgKeyLogLevel:      "GCUE_LOG_LEVEL",
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; environment variables override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyResultsDir, defaultResultsDir)
	v.SetDefault(cfgKeyResultsFormat, defaultResultsFormat)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyContinueOnError, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("%w: read config: %w", types.ErrInvalidConfig, err)
	}

	return v, nil
}

func connectionConfig(v *viper.Viper) types.ConnectionConfig {
	return types.ConnectionConfig{
		DBURI:    v.GetString(cfgKeyDBURI),
		User:     v.GetString(cfgKeyNeo4jUser),
		Password: v.GetString(cfgKeyNeo4jPassword),
		Database: v.GetString(cfgKeyNeo4jDB),
	}
}

func resultsFormat(v *viper.Viper) (types.OutputFormat, error) {
	f, err := types.ParseOutputFormat(v.GetString(cfgKeyResultsFormat))
	if err != nil {
		return f, fmt.Errorf("%w: %s: %w", types.ErrInvalidConfig, cfgKeyResultsFormat, err)
	}
	return f, nil
}

// pager returns the configured pager, or the platform default.
func pager(v *viper.Viper) (types.Pager, error) {
	cmdline := v.GetString(cfgKeyPager)
	if cmdline == "" {
		return types.DefaultPager(), nil
	}
	p, err := types.NewPager(cmdline)
	if err != nil {
		return p, fmt.Errorf("%w: %w", types.ErrInvalidConfig, err)
	}
	return p, nil
}

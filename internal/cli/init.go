package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// configFile holds the structure written to config.yaml. Credentials are
// never written; they come from the environment.
type configFile struct {
	DBURI            string         `yaml:"db_uri,omitempty"`
	Neo4jUser        string         `yaml:"neo4j_user,omitempty"`
	Neo4jDB          string         `yaml:"neo4j_db,omitempty"`
	Pager            string         `yaml:"pager,omitempty"`
	ResultsDirectory string         `yaml:"results_directory"`
	ResultsFormat    string         `yaml:"results_format"`
	LogLevel         string         `yaml:"log_level"`
	DataDir          string         `yaml:"data_dir,omitempty"`
	Console          consoleSection `yaml:"console"`
}

type consoleSection struct {
	ContinueOnError bool `yaml:"continue_on_error"`
}

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Long:  "Create the configuration directory and write config.yaml with the current settings.\nAn existing file is left alone unless --force is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.debug {
				return printDebug(cmd, a, nil)
			}
			return a.runInit(cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.yaml")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, force bool) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(a.configDir, configFileExt)
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "config already exists at %s\n", path)
		return nil
	}

	cfg := configFile{
		DBURI:            a.config.GetString(cfgKeyDBURI),
		Neo4jUser:        a.config.GetString(cfgKeyNeo4jUser),
		Neo4jDB:          a.config.GetString(cfgKeyNeo4jDB),
		Pager:            a.config.GetString(cfgKeyPager),
		ResultsDirectory: a.config.GetString(cfgKeyResultsDir),
		ResultsFormat:    a.config.GetString(cfgKeyResultsFormat),
		LogLevel:         a.config.GetString(cfgKeyLogLevel),
		DataDir:          a.config.GetString(cfgKeyDataDir),
		Console: consoleSection{
			ContinueOnError: a.config.GetBool(cfgKeyContinueOnError),
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	a.logger.Info("config written", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", path)
	return nil
}

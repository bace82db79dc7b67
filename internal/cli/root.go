// Package cli implements the gcue command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gcue/internal/logging"
	"github.com/mesh-intelligence/gcue/internal/output"
	"github.com/mesh-intelligence/gcue/internal/paths"
	"github.com/mesh-intelligence/gcue/internal/repository"
	"github.com/mesh-intelligence/gcue/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

var errColor = color.New(color.FgRed)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	debug     bool
}

// app is the state resolved once per invocation and shared by the
// subcommands.
type app struct {
	flags     rootFlags
	configDir string
	dataDir   string
	config    *viper.Viper
	logger    *zap.Logger

	connect func(ctx context.Context, cfg types.ConnectionConfig, logger *zap.Logger) (types.QueryExecutor, error)
	page    func(ctx context.Context, file string, pager types.Pager) error
	now     func() time.Time
}

func newApp() *app {
	return &app{
		connect: repository.Connect,
		page:    output.PageResults,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
}

// NewRootCmd creates the top-level "gcue" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gcue",
		Short: "Query Neo4j and AWS Neptune databases from the terminal",
		Long: "gcue runs Cypher queries against Neo4j (bolt://) or AWS Neptune (https://),\n" +
			"either from an interactive console or as one-off commands.\n\n" +
			"The database is selected with DB_URI. Neo4j also needs NEO4J_USER,\n" +
			"NEO4J_PASSWORD and NEO4J_DB; Neptune uses the ambient AWS credentials.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/gcue)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory for history and logs (default: $XDG_DATA_HOME/gcue)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "print the resolved invocation without doing anything")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newConsoleCmd(a))
	root.AddCommand(newQueryCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	a := newApp()
	root := newRootCmd(a)
	err := root.ExecuteContext(context.Background())
	if err != nil {
		a.logger.Error("command failed", zap.Error(err))
	}
	_ = a.logger.Sync()
	os.Exit(handleError(root, err))
}

// handleError prints err and maps it to an exit code.
func handleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return exitSuccess
	}
	errColor.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
	return exitCode(err)
}

// exitCode maps backend, export and pager failures to exitSysError and
// everything else (bad flags, bad configuration) to exitUserError.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrConnection),
		errors.Is(err, types.ErrExecution),
		errors.Is(err, types.ErrUnexpectedResponse),
		errors.Is(err, types.ErrExport),
		errors.Is(err, types.ErrPager):
		return exitSysError
	default:
		return exitUserError
	}
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	if err := v.BindPFlag(cfgKeyLogLevel, cmd.Flags().Lookup("log-level")); err != nil {
		return fmt.Errorf("bind log level flag: %w", err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	a.configDir, a.dataDir, a.config = configDir, dataDir, v

	level, err := logging.ParseLevel(v.GetString(cfgKeyLogLevel))
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrInvalidConfig, err)
	}
	if a.flags.debug {
		return nil
	}

	logger, err := logging.New(level, paths.LogFile(dataDir))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	session, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("create session id: %w", err)
	}
	a.logger = logger.With(zap.String("session_id", session.String()))
	a.logger.Debug("starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir))
	return nil
}

package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treesearch/pkg/buildinfo"
	"github.com/matzehuels/treesearch/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "treesearch"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	stdout     io.Writer
	stderr     io.Writer
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	cfg := Config{}
	cfg.SetDefaults()
	return &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
		stdout: os.Stdout,
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command results, which go to stdout by default.
func (c *CLI) SetOutput(w io.Writer) {
	c.stdout = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Treesearch runs uninformed searches over trees and state graphs",
		Long: `Treesearch runs depth-limited and iterative deepening search over trees and
state graphs loaded from JSON, TOML or YAML files, and reports the path to
the goal, or every goal path, together with search statistics.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return c.setup(cmd) },
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/treesearch/config.toml)")

	// Register all subcommands
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, applies its log level and installs the
// logging hooks. It runs before every subcommand.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, _ := log.ParseLevel(cfg.LogLevel)
	c.SetLogLevel(level)

	hooks := newLogHooks(c.Logger)
	observability.SetSearchHooks(hooks)
	observability.SetHTTPHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("config loaded", "path", cfg.path, "algorithm", cfg.Algorithm, "max_limit", cfg.MaxLimit)
	return nil
}

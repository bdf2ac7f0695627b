// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/calidris/jot/internal/config"
	"github.com/calidris/jot/internal/repo"
	"github.com/calidris/jot/internal/ui"
)

var (
	// Global flags
	dirName     string // named data directory from config
	dirPathFlag string // explicit path
	configPath  string
	verbose     bool

	// Resolved values
	resolvedDirPath string
	cfg             *config.Config
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "jot - notes in plain markdown",
	Long: `jot manages a directory of plain-text markdown notes with
structured metadata headers, compatible with Notable data directories
(notes/, attachments/, .notable/).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "version", "completion", "docs":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		ui.ConfigureAccent(cfg.UI.Accent)

		// Resolve data directory: explicit path > named dir > default.
		if dirPathFlag != "" {
			resolvedDirPath = dirPathFlag
		} else {
			resolvedDirPath, err = cfg.GetDirPath(dirName)
			if err != nil {
				return fmt.Errorf(`no data directory specified

Either:
  1. Use --dir /path/to/data
  2. Use --name <name> (from config)
  3. Set default_dir in ~/.config/jot/config.toml`)
			}
		}

		if _, err := os.Stat(resolvedDirPath); os.IsNotExist(err) {
			return fmt.Errorf("data directory not found: %s", resolvedDirPath)
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dirPathFlag, "dir", "", "Explicit path to data directory")
	rootCmd.PersistentFlags().StringVarP(&dirName, "name", "n", "", "Named data directory from config")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log reconciliation details to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getDirPath returns the resolved data directory path.
func getDirPath() string {
	return resolvedDirPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// openRepo opens the repository for the resolved data directory with
// the CLI's logger wired in.
func openRepo() (*repo.Repository, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return repo.Open(getDirPath(), repo.WithLogger(log))
}

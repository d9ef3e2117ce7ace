package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yakoovad/crewmate-creator/internal/config"
	"github.com/yakoovad/crewmate-creator/pkg/logger"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "crewmate",
	Short:         "Crewmate Creator backend",
	Long:          `Crewmate Creator serves the create, gallery, detail and edit screens of the crewmate roster over HTTP.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		log, err = logger.NewLogger(cfg.LogLevel)
		if err != nil {
			return errors.Wrap(err, "init logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// loadConfig reads the environment. VERSION overrides the version stamped
// into the binary.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if c.Version == "" {
		c.Version = version
	}
	return c, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

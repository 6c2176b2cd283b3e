package main

import (
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drushkit/cmd/drushkit/commands"
	"github.com/walteh/drushkit/cmd/drushkit/opts"
	"github.com/walteh/drushkit/pkg/backup"
	"github.com/walteh/drushkit/pkg/config"
	"github.com/walteh/drushkit/pkg/status"
	"github.com/walteh/drushkit/pkg/tempfiles"
)

var (
	// Flags
	configFile     string
	debug          bool
	backupDir      string
	backupLocation string
)

// NewRootCmd builds the root command. Shared services are constructed in
// the persistent pre-run, after flags have been parsed, and handed to the
// subcommands through RootOpts.
func NewRootCmd(registry *tempfiles.Registry) *cobra.Command {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "drushkit",
		Short:         "Manage directories, temporary files and backups",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			ctx := cmd.Context()

			cfg, err := loadConfig(ctx, cmd.PersistentFlags().Changed("config"))
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			store := config.NewStore(cfg)
			if backupDir != "" {
				store.SetOption(config.OptBackupDir, backupDir)
			}
			if backupLocation != "" {
				store.SetOption(config.OptBackupLocation, backupLocation)
			}

			ro.Config = cfg
			ro.Store = store
			ro.Registry = registry
			ro.Allocator = tempfiles.NewAllocator(registry, store.GetOption(config.OptTempDir, ""))
			ro.Planner = backup.NewPlanner(store)
			ro.UserLogger = status.NewUserLogger(ctx)
			return nil
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewCopyCmd(ro),
		commands.NewMoveCmd(ro),
		commands.NewDeleteCmd(ro),
		commands.NewMkdirCmd(ro),
		commands.NewBackupCmd(ro),
	)

	return cmd
}

// loadConfig reads the config file. The default path being absent is not
// an error — the tool runs on flags and defaults alone — but a path the
// user asked for explicitly must exist.
func loadConfig(ctx context.Context, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &config.Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".drushkit.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&backupDir, "backup-dir", "", "base directory for backups")
	cmd.PersistentFlags().StringVar(&backupLocation, "backup-location", "", "exact backup directory, used verbatim")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drushkit/cmd/drushkit/opts"
	"github.com/walteh/drushkit/pkg/fsops"
	"github.com/walteh/drushkit/pkg/status"
)

// NewBackupCmd creates a new backup command
func NewBackupCmd(ro *opts.RootOpts) *cobra.Command {
	var subdir string

	cmd := &cobra.Command{
		Use:   "backup <src>",
		Short: "Copy a tree into a timestamped backup directory",
		Long: `Backup copies a file or directory tree into the backup
directory for this run. It will:
1. Plan <base>/<subdir>/<timestamp>, or use the configured backup-location
2. Refuse if that directory would sit inside the protected root
3. Stage a copy in a temporary directory, then move it into place

The backup directory only ever receives complete trees: a failed copy dies
in the staging directory, which is cleaned up at exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src := args[0]

			dir, err := ro.Planner.PrepareBackupDir(ctx, subdir)
			if err != nil {
				return errors.Errorf("preparing backup directory: %w", err)
			}

			staging, err := ro.Allocator.TempDir(ctx)
			if err != nil {
				return errors.Errorf("allocating staging directory: %w", err)
			}

			staged := filepath.Join(staging, filepath.Base(src))
			if err := fsops.TreeCopy(ctx, src, staged, fsops.CopyOptions{}); err != nil {
				ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpError, Path: staged, Err: err})
				return errors.Errorf("staging backup: %w", err)
			}

			dest := filepath.Join(dir, filepath.Base(src))
			if err := fsops.TreeMove(ctx, staged, dest, false); err != nil {
				ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpError, Path: dest, Err: err})
				return errors.Errorf("publishing backup: %w", err)
			}

			ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpBackedUp, Path: dest})
			return nil
		},
	}

	cmd.Flags().StringVar(&subdir, "subdir", "", "backup subdirectory (defaults to the configured database name)")

	return cmd
}

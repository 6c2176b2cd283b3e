package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drushkit/cmd/drushkit/opts"
	"github.com/walteh/drushkit/pkg/fsops"
	"github.com/walteh/drushkit/pkg/status"
)

// NewDeleteCmd creates a new delete command
func NewDeleteCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Recursively delete a path",
		Long: `Delete removes a file or directory tree. A path that does not
exist is a success. Deletion stops at the first entry that cannot be
removed; anything already deleted stays deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			if err := fsops.TreeDelete(ctx, path); err != nil {
				ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpError, Path: path, Err: err})
				return errors.Errorf("deleting tree: %w", err)
			}

			ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpDeleted, Path: path})
			return nil
		},
	}

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drushkit/cmd/drushkit/opts"
	"github.com/walteh/drushkit/pkg/fsops"
	"github.com/walteh/drushkit/pkg/status"
)

// NewMkdirCmd creates a new mkdir command
func NewMkdirCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory and its missing ancestors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := fsops.PathEnsure(path); err != nil {
				ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpError, Path: path, Err: err})
				return errors.Errorf("creating directory: %w", err)
			}

			ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpCreated, Path: path})
			return nil
		},
	}

	return cmd
}

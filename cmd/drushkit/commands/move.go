package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drushkit/cmd/drushkit/opts"
	"github.com/walteh/drushkit/pkg/fsops"
	"github.com/walteh/drushkit/pkg/status"
)

// NewMoveCmd creates a new move command
func NewMoveCmd(ro *opts.RootOpts) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "move <src> <dest>",
		Short: "Move a directory tree, copying across filesystems",
		Long: `Move renames the source when possible and falls back to
copy+delete across filesystem boundaries. The fallback is not atomic: an
interrupted move can leave both copies present.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, dest := args[0], args[1]

			if err := fsops.TreeMove(ctx, src, dest, overwrite); err != nil {
				ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpError, Path: dest, Err: err})
				return errors.Errorf("moving tree: %w", err)
			}

			ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpMoved, Path: dest})
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the destination if it already exists")

	return cmd
}

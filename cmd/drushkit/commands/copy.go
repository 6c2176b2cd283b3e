package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drushkit/cmd/drushkit/opts"
	"github.com/walteh/drushkit/pkg/fsops"
	"github.com/walteh/drushkit/pkg/status"
)

// NewCopyCmd creates a new copy command
func NewCopyCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		overwrite bool
		ignore    []string
	)

	cmd := &cobra.Command{
		Use:   "copy <src> <dest>",
		Short: "Recursively copy a directory tree",
		Long: `Copy duplicates a file or directory tree, preserving permission
bits on platforms that have them. The destination must not exist unless
--overwrite is given, in which case it is deleted first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, dest := args[0], args[1]

			err := fsops.TreeCopy(ctx, src, dest, fsops.CopyOptions{
				Overwrite:      overwrite,
				IgnorePatterns: ignore,
			})
			if err != nil {
				ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpError, Path: dest, Err: err})
				return errors.Errorf("copying tree: %w", err)
			}

			ro.UserLogger.LogPathChange(status.PathChange{Op: status.OpCopied, Path: dest})
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the destination if it already exists")
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "glob pattern of entries to skip, relative to the source root (repeatable)")

	return cmd
}

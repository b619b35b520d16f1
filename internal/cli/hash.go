package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lispir/internal/ir"
)

// HashResult is the content id of one tree.
type HashResult struct {
	Path string `json:"path"`
	ID   string `json:"id"`
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <tree-file>...",
		Short: "Print content ids",
		Long: `Print the content id of each tree: the hash of its canonical plain
mapping. Trees with equal content have equal ids whatever file format they
were loaded from.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runHash(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := LoadTrees(cmd.Context(), paths)
	if err != nil {
		return loadFailure(f, err)
	}

	results := make([]HashResult, len(files))
	for i, tf := range files {
		id, err := ir.NodeID(tf.Tree)
		if err != nil {
			_ = f.Error(ErrCodeGeneric, err.Error(), map[string]string{"path": tf.Path})
			return WrapExitError(ExitCommandError, "failed to hash "+tf.Path, err)
		}
		results[i] = HashResult{Path: tf.Path, ID: id}
	}

	if f.JSON() {
		return f.Success(results)
	}
	for _, r := range results {
		fmt.Fprintf(f.Writer, "%s  %s\n", r.ID, r.Path)
	}
	return nil
}

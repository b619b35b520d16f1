package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/store"
)

// NamesResult lists the target names one tree introduces.
type NamesResult struct {
	Path  string   `json:"path"`
	Names []string `json:"names"`
}

// NewNamesCommand creates the names command.
func NewNamesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names <tree-file>...",
		Short: "List generated target names",
		Long: `List the sanitized target names each top-level tree introduces: the
name of a def or deftype, arity names of a multi-arity function and member
names of a type.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNames(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runNames(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := LoadTrees(cmd.Context(), paths)
	if err != nil {
		return loadFailure(f, err)
	}

	results := make([]NamesResult, len(files))
	for i, tf := range files {
		names := store.Names(tf.Tree, ir.DefaultSanitizer)
		if names == nil {
			names = []string{}
		}
		results[i] = NamesResult{Path: tf.Path, Names: names}
	}

	if f.JSON() {
		return f.Success(results)
	}
	for _, r := range results {
		if len(results) > 1 {
			fmt.Fprintf(f.Writer, "%s: %s\n", r.Path, strings.Join(r.Names, " "))
			continue
		}
		for _, name := range r.Names {
			fmt.Fprintln(f.Writer, name)
		}
	}
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lispir/internal/harness"
	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/loader"
)

// Output encodings for commands that print trees.
const (
	AsOutline = "outline"
	AsJSON    = "json"
	AsYAML    = "yaml"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	As string
}

// TreeOutput is the JSON payload for one tree.
type TreeOutput struct {
	Path string    `json:"path"`
	Kind string    `json:"kind"`
	Tree ir.Object `json:"tree"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump <tree-file>...",
		Short: "Print trees",
		Long: `Print one or more tree files.

--as outline prints one node per line with its path, kind and span.
--as json prints canonical JSON and --as yaml prints YAML; both can be
loaded again.

Examples:
  lispir dump core.yaml
  lispir dump --as json core.cue > core.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", AsOutline, "tree encoding (outline|json|yaml)")

	return cmd
}

func runDump(opts *DumpOptions, paths []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := LoadTrees(cmd.Context(), paths)
	if err != nil {
		return loadFailure(f, err)
	}

	if f.JSON() {
		out := make([]TreeOutput, len(files))
		for i, tf := range files {
			out[i] = TreeOutput{Path: tf.Path, Kind: tf.Tree.Kind().String(), Tree: ir.ToMap(tf.Tree)}
		}
		return f.Success(out)
	}

	for i, tf := range files {
		text, err := renderTree(tf.Tree, opts.As)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to render "+tf.Path, err)
		}
		if len(files) > 1 {
			if i > 0 {
				fmt.Fprintln(f.Writer)
			}
			fmt.Fprintf(f.Writer, "# %s\n", tf.Path)
		}
		fmt.Fprint(f.Writer, text)
	}
	return nil
}

// renderTree encodes n for text output. The result ends in a newline.
func renderTree(n ir.Node, as string) (string, error) {
	switch as {
	case AsOutline:
		return harness.Outline(n), nil
	case AsJSON, AsYAML:
		format, err := loader.ParseFormat(as)
		if err != nil {
			return "", err
		}
		data, err := loader.Encode(n, format)
		if err != nil {
			return "", err
		}
		text := string(data)
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return text, nil
	default:
		return "", fmt.Errorf("invalid encoding %q: must be one of outline, json, yaml", as)
	}
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/loader"
)

// FixOptions holds flags for the fix-locations command.
type FixOptions struct {
	*RootOptions
	Span   string // fallback span, "line:col-endLine:endCol"
	As     string
	Output string // write the repaired tree here instead of stdout
}

// FixOutput is the JSON payload for one repaired tree.
type FixOutput struct {
	Path  string    `json:"path"`
	Error string    `json:"error,omitempty"`
	Tree  ir.Object `json:"tree,omitempty"`
}

// NewFixLocationsCommand creates the fix-locations command.
func NewFixLocationsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FixOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fix-locations <tree-file>...",
		Short: "Fill in missing source locations",
		Long: `Give every node without a complete span the span of its nearest
located ancestor. A root without a span takes the --span fallback.

Exit codes:
  0 - All trees repaired
  1 - A tree had no location to start from
  2 - Command error (unreadable files, bad flags, etc.)

Examples:
  lispir fix-locations core.yaml
  lispir fix-locations --span 3:0-3:40 --as yaml -o fixed.yaml expr.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Span, "span", "", "fallback span for roots without one (line:col-endLine:endCol)")
	cmd.Flags().StringVar(&opts.As, "as", AsOutline, "tree encoding (outline|json|yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the repaired tree to this file (one input only)")

	return cmd
}

func runFix(opts *FixOptions, paths []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	var fallback *ir.Span
	if opts.Span != "" {
		span, err := ir.ParseSpan(opts.Span)
		if err != nil {
			_ = f.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid --span", err)
		}
		fallback = &span
	}
	if opts.Output != "" && len(paths) != 1 {
		_ = f.Error(ErrCodeGeneric, "--output takes exactly one input file", nil)
		return NewExitError(ExitCommandError, "--output takes exactly one input file")
	}

	files, err := LoadTrees(cmd.Context(), paths)
	if err != nil {
		return loadFailure(f, err)
	}

	out := make([]FixOutput, len(files))
	failed := 0
	for i, tf := range files {
		out[i].Path = tf.Path
		fixed, err := ir.FixMissingLocations(tf.Tree, fallback)
		if err != nil {
			if !errors.Is(err, ir.ErrNoLocation) && !errors.Is(err, ir.ErrMissingChild) {
				return WrapExitError(ExitCommandError, "failed to repair "+tf.Path, err)
			}
			out[i].Error = err.Error()
			failed++
			continue
		}
		files[i].Tree = fixed
		out[i].Tree = ir.ToMap(fixed)
		f.VerboseLog("repaired %s", tf.Path)
	}

	if failed > 0 {
		msg := fmt.Sprintf("%d tree(s) could not be repaired", failed)
		if f.JSON() {
			if err := f.Failure(ErrCodeRepairFailed, msg, out); err != nil {
				return err
			}
		} else {
			for _, o := range out {
				if o.Error != "" {
					fmt.Fprintf(f.Writer, "%s %s: %s\n", f.Glyphs.Fail, o.Path, o.Error)
				}
			}
		}
		return NewExitError(ExitFailure, msg)
	}

	if opts.Output != "" {
		return writeTree(f, files[0].Tree, opts.Output)
	}

	if f.JSON() {
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

// writeTree encodes n in the format named by path's extension.
func writeTree(f *OutputFormatter, n ir.Node, path string) error {
	format, err := loader.ParseFormat(filepath.Ext(path))
	if err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid --output", err)
	}
	data, err := loader.Encode(n, format)
	if err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to encode tree", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to write "+path, err)
	}
	if f.JSON() {
		return f.Success(map[string]string{"output": path})
	}
	fmt.Fprintf(f.Writer, "%s wrote %s\n", f.Glyphs.Pass, path)
	return nil
}

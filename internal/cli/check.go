package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lispir/internal/ir"
)

// CheckResult holds the validation results for one tree.
type CheckResult struct {
	Path   string               `json:"path"`
	Valid  bool                 `json:"valid"`
	Errors []ir.ValidationError `json:"errors,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <tree-file>...",
		Short: "Validate trees",
		Long: `Validate tree files against the structural rules a well-formed
analyzer output satisfies: declared children present, required fields set,
arity tables consistent, recur targets resolvable.

Exit codes:
  0 - All trees valid
  1 - One or more trees have problems
  2 - Command error (unreadable files, etc.)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := LoadTrees(cmd.Context(), paths)
	if err != nil {
		return loadFailure(f, err)
	}

	results := make([]CheckResult, len(files))
	invalid := 0
	for i, tf := range files {
		f.VerboseLog("Validating %s", tf.Path)
		errs := ir.Validate(tf.Tree)
		results[i] = CheckResult{Path: tf.Path, Valid: len(errs) == 0, Errors: errs}
		if len(errs) > 0 {
			invalid++
		}
	}

	if f.JSON() {
		if invalid > 0 {
			if err := f.Failure(ErrCodeInvalidTree, fmt.Sprintf("%d tree(s) invalid", invalid), results); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d tree(s) invalid", invalid))
		}
		return f.Success(results)
	}

	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(f.Writer, "%s %s\n", f.Glyphs.Pass, r.Path)
			continue
		}
		fmt.Fprintf(f.Writer, "%s %s\n", f.Glyphs.Fail, r.Path)
		for _, e := range r.Errors {
			fmt.Fprintf(f.Writer, "  %s\n", e.Error())
		}
	}

	if invalid > 0 {
		fmt.Fprintf(f.Writer, "\n%d of %d tree(s) invalid\n", invalid, len(results))
		return NewExitError(ExitFailure, fmt.Sprintf("%d tree(s) invalid", invalid))
	}
	return nil
}

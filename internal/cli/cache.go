package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/store"
)

// CacheOptions holds flags shared by the cache subcommands.
type CacheOptions struct {
	*RootOptions
	Database string
	As       string // get only
}

// UnitOutput is the JSON payload describing one cached unit.
type UnitOutput struct {
	ID       string   `json:"id"`
	Seq      int64    `json:"seq"`
	NS       string   `json:"ns"`
	File     string   `json:"file"`
	Kind     string   `json:"kind"`
	Line     int      `json:"line,omitempty"`
	Names    []string `json:"names,omitempty"`
	Inserted *bool    `json:"inserted,omitempty"`
}

func unitOutput(u store.Unit) UnitOutput {
	return UnitOutput{
		ID:    u.ID,
		Seq:   u.Seq,
		NS:    u.NS,
		File:  u.File,
		Kind:  u.Kind,
		Line:  u.Line,
		Names: u.Names,
	}
}

// NewCacheCommand creates the cache command and its subcommands.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CacheOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the unit cache",
		Long: `Store top-level trees in a SQLite unit cache keyed by content id,
and read them back.

Example:
  lispir cache put --db units.db core.yaml
  lispir cache list --db units.db --ns user
  lispir cache find --db units.db inc__BANG__`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newCachePutCommand(opts))
	cmd.AddCommand(newCacheGetCommand(opts))
	cmd.AddCommand(newCacheListCommand(opts))
	cmd.AddCommand(newCacheFindCommand(opts))
	cmd.AddCommand(newCacheDropCommand(opts))

	return cmd
}

func openStore(opts *CacheOptions, cmd *cobra.Command, f *OutputFormatter) (*store.Store, error) {
	st, err := store.Open(opts.Database, store.WithLogger(newLogger(opts.RootOptions, cmd.ErrOrStderr())))
	if err != nil {
		_ = f.Error(ErrCodeStoreFailed, err.Error(), map[string]string{"db": opts.Database})
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func closeStore(st *store.Store, f *OutputFormatter) {
	if err := st.Close(); err != nil {
		fmt.Fprintf(f.GetErrWriter(), "error closing database: %v\n", err)
	}
}

func storeFailure(f *OutputFormatter, message string, err error) error {
	_ = f.Error(ErrCodeStoreFailed, err.Error(), nil)
	return WrapExitError(ExitCommandError, message, err)
}

func newCachePutCommand(opts *CacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "put <tree-file>...",
		Short:         "Cache trees",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCachePut(opts, args, cmd)
		},
	}
}

func runCachePut(opts *CacheOptions, paths []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := LoadTrees(cmd.Context(), paths)
	if err != nil {
		return loadFailure(f, err)
	}

	st, err := openStore(opts, cmd, f)
	if err != nil {
		return err
	}
	defer closeStore(st, f)

	out := make([]UnitOutput, len(files))
	for i, tf := range files {
		u, inserted, err := st.PutUnit(cmd.Context(), tf.Tree)
		if err != nil {
			return storeFailure(f, "failed to cache "+tf.Path, err)
		}
		out[i] = unitOutput(u)
		out[i].Inserted = &inserted
	}

	if f.JSON() {
		return f.Success(out)
	}
	for i, u := range out {
		state := "cached"
		if !*u.Inserted {
			state = "already cached"
		}
		fmt.Fprintf(f.Writer, "%s %s %s (seq %d, %s)\n", f.Glyphs.Pass, files[i].Path, state, u.Seq, u.ID)
	}
	return nil
}

func newCacheGetCommand(opts *CacheOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "get <id>",
		Short:         "Print a cached tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheGet(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.As, "as", AsOutline, "tree encoding (outline|json|yaml)")
	return cmd
}

func runCacheGet(opts *CacheOptions, id string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, cmd, f)
	if err != nil {
		return err
	}
	defer closeStore(st, f)

	u, err := st.GetUnit(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		_ = f.Error(ErrCodeUnitNotFound, fmt.Sprintf("no cached unit %s", id), nil)
		return WrapExitError(ExitFailure, "unit not found", err)
	}
	if err != nil {
		return storeFailure(f, "failed to read unit", err)
	}
	tree, err := st.LoadUnit(cmd.Context(), id)
	if err != nil {
		return storeFailure(f, "failed to load unit", err)
	}

	if f.JSON() {
		return f.Success(TreeOutput{Path: u.File, Kind: u.Kind, Tree: ir.ToMap(tree)})
	}
	text, err := renderTree(tree, opts.As)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to render unit", err)
	}
	fmt.Fprint(f.Writer, text)
	return nil
}

func newCacheListCommand(opts *CacheOptions) *cobra.Command {
	var ns string
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List cached units in seq order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheList(opts, ns, cmd)
		},
	}
	cmd.Flags().StringVar(&ns, "ns", "", "only units of this namespace")
	return cmd
}

func runCacheList(opts *CacheOptions, ns string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, cmd, f)
	if err != nil {
		return err
	}
	defer closeStore(st, f)

	units, err := st.ListUnits(cmd.Context(), ns)
	if err != nil {
		return storeFailure(f, "failed to list units", err)
	}

	out := make([]UnitOutput, len(units))
	for i, u := range units {
		out[i] = unitOutput(u)
	}
	if f.JSON() {
		return f.Success(out)
	}
	if len(out) == 0 {
		fmt.Fprintln(f.Writer, "No cached units.")
		return nil
	}
	for _, u := range out {
		fmt.Fprintf(f.Writer, "%4d  %s  %s/%s:%d  %s\n", u.Seq, u.ID, u.NS, u.File, u.Line, u.Kind)
	}
	return nil
}

func newCacheFindCommand(opts *CacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "find <target-name>",
		Short:         "Find units that introduce a target name",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheFind(opts, args[0], cmd)
		},
	}
}

func runCacheFind(opts *CacheOptions, name string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, cmd, f)
	if err != nil {
		return err
	}
	defer closeStore(st, f)

	ids, err := st.FindByName(cmd.Context(), name)
	if err != nil {
		return storeFailure(f, "failed to search names", err)
	}
	if f.JSON() {
		return f.Success(map[string]any{"name": name, "ids": ids})
	}
	if len(ids) == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("no unit introduces %s", name))
	}
	fmt.Fprintln(f.Writer, strings.Join(ids, "\n"))
	return nil
}

func newCacheDropCommand(opts *CacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "drop <source-file>",
		Short:         "Drop every unit compiled from a source file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheDrop(opts, args[0], cmd)
		},
	}
}

func runCacheDrop(opts *CacheOptions, file string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openStore(opts, cmd, f)
	if err != nil {
		return err
	}
	defer closeStore(st, f)

	n, err := st.DeleteFile(cmd.Context(), file)
	if err != nil {
		return storeFailure(f, "failed to drop units", err)
	}
	if f.JSON() {
		return f.Success(map[string]any{"file": file, "dropped": n})
	}
	fmt.Fprintf(f.Writer, "Dropped %d unit(s) from %s\n", n, file)
	return nil
}

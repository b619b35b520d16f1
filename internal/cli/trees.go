package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/loader"
)

// TreeFile is one tree file named on the command line.
type TreeFile struct {
	Path string
	Tree ir.Node
}

// LoadError represents a tree file that could not be loaded.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadTrees decodes every path concurrently. Results keep argument order.
// The first failure, in argument order, is returned as a *LoadError.
func LoadTrees(ctx context.Context, paths []string) ([]TreeFile, error) {
	files := make([]TreeFile, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tree, err := loadTree(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			files[i] = TreeFile{Path: path, Tree: tree}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func loadTree(path string) (ir.Node, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "file not found", Err: err}
	}
	tree, err := loader.LoadFile(path)
	if err != nil {
		var decodeErr *loader.DecodeError
		if errors.As(err, &decodeErr) {
			return nil, &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: decodeErr.Error(), Err: err}
		}
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: err.Error(), Err: err}
	}
	return tree, nil
}

// loadFailure turns a LoadTrees error into command output and an exit error.
func loadFailure(f *OutputFormatter, err error) error {
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load trees", err)
	}
	if err := f.Error(loadErr.Code, loadErr.Message, map[string]string{"path": loadErr.Path}); err != nil {
		return err
	}
	return WrapExitError(ExitCommandError, "failed to load "+loadErr.Path, err)
}

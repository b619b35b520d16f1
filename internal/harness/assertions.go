package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/lispir/internal/ir"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Path     string // Node path the assertion looked at, if any
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Path != "" {
		fmt.Fprintf(&buf, " at %s", e.Path)
	}
	fmt.Fprintf(&buf, "\n  Expected: %s\n  Actual: %s", e.Expected, e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns the
// failure messages, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertDiagnostics:
		return assertDiagnostics(result.Diagnostics, a)
	case AssertFixError:
		return assertFixError(result.FixError, a)
	case AssertCount:
		return assertCount(result.Tree, a)
	}

	path := a.Path
	if path == "" {
		path = "."
	}
	n := ir.NodeAt(result.Tree, path)
	if n == nil {
		return &AssertionError{Type: a.Type, Path: path, Expected: "a node", Actual: "no node at path"}
	}

	switch a.Type {
	case AssertKinds:
		return assertKinds(n, path, a)
	case AssertSpan:
		return assertSpan(n, path, a)
	case AssertNames:
		return assertNames(n, path, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertKinds(n ir.Node, path string, a Assertion) error {
	var got []string
	ir.Walk(n, func(c ir.Node) bool {
		got = append(got, c.Kind().String())
		return true
	})
	if !slices.Equal(got, a.Kinds) {
		return &AssertionError{
			Type:     AssertKinds,
			Path:     path,
			Expected: strings.Join(a.Kinds, " "),
			Actual:   strings.Join(got, " "),
		}
	}
	return nil
}

func assertSpan(n ir.Node, path string, a Assertion) error {
	want, err := ir.ParseSpan(a.Span)
	if err != nil {
		return err
	}
	got, ok := n.Env().Span()
	if !ok {
		return &AssertionError{Type: AssertSpan, Path: path, Expected: want.String(), Actual: "no span"}
	}
	if got != want {
		return &AssertionError{Type: AssertSpan, Path: path, Expected: want.String(), Actual: got.String()}
	}
	return nil
}

func assertNames(n ir.Node, path string, a Assertion) error {
	got, err := TargetNames(n, a.Name)
	if err != nil {
		return &AssertionError{Type: AssertNames, Path: path, Expected: "a named node", Actual: err.Error()}
	}
	if !slices.Equal(got, a.Names) {
		return &AssertionError{
			Type:     AssertNames,
			Path:     path,
			Expected: strings.Join(a.Names, " "),
			Actual:   strings.Join(got, " "),
		}
	}
	return nil
}

// TargetNames returns the target names n introduces with the default
// sanitizer: arity names for a function called name, member names for a
// type or reified instance, and the body name for a method arity.
func TargetNames(n ir.Node, name string) ([]string, error) {
	switch x := n.(type) {
	case *ir.Fn:
		if name == "" {
			return nil, fmt.Errorf("fn needs a name")
		}
		return slices.Collect(x.ArityNames(nil, name)), nil
	case *ir.DefType:
		return slices.Collect(x.MemberNames(nil)), nil
	case *ir.Reify:
		return slices.Collect(x.MemberNames(nil)), nil
	case *ir.DefTypeMethodArity:
		return []string{x.TargetName(nil)}, nil
	case ir.DefTypeMember:
		return []string{ir.MemberName(nil, x)}, nil
	default:
		return nil, fmt.Errorf("%s nodes have no target names", n.Kind())
	}
}

func assertDiagnostics(diags []ir.ValidationError, a Assertion) error {
	got := make([]string, len(diags))
	for i, d := range diags {
		got[i] = d.Code
	}
	want := a.Codes
	if want == nil {
		want = []string{}
	}
	if !slices.Equal(got, want) {
		return &AssertionError{
			Type:     AssertDiagnostics,
			Expected: fmt.Sprintf("%v", want),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

func assertCount(tree ir.Node, a Assertion) error {
	kind, _ := ir.ParseKind(a.Kind)
	count := 0
	ir.Walk(tree, func(n ir.Node) bool {
		if n.Kind() == kind {
			count++
		}
		return true
	})
	if count != a.Count {
		return &AssertionError{
			Type:     AssertCount,
			Expected: fmt.Sprintf("%d %s nodes", a.Count, a.Kind),
			Actual:   fmt.Sprintf("%d", count),
		}
	}
	return nil
}

func assertFixError(got string, a Assertion) error {
	if got == "" {
		return &AssertionError{Type: AssertFixError, Expected: a.Error, Actual: "repair succeeded"}
	}
	if !strings.Contains(got, a.Error) {
		return &AssertionError{Type: AssertFixError, Expected: a.Error, Actual: got}
	}
	return nil
}

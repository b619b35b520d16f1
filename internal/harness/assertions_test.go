package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/testutil"
)

func defFnResult() *Result {
	result := NewResult()
	result.Tree = testutil.DefFn("inc")
	return result
}

func TestAssertKinds_Match(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{{
		Type:  AssertKinds,
		Path:  "init.arities[0]",
		Kinds: []string{"fn-arity", "binding", "do", "local"},
	}})
	assert.Empty(t, errs)
}

func TestAssertKinds_Mismatch(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{{
		Type:  AssertKinds,
		Path:  "init.arities[0]",
		Kinds: []string{"fn-arity", "do"},
	}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Assertion failed: kinds at init.arities[0]")
	assert.Contains(t, errs[0], "Actual: fn-arity binding do local")
}

func TestAssertSpan_RootDefault(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{{Type: AssertSpan, Span: "1:0-3:20"}})
	assert.Empty(t, errs)
}

func TestAssertSpan_NoSpan(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{{Type: AssertSpan, Path: "init", Span: "1:0-3:20"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Actual: no span")
}

func TestAssertSpan_Wrong(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{{Type: AssertSpan, Span: "1:0-3:21"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: 1:0-3:21")
	assert.Contains(t, errs[0], "Actual: 1:0-3:20")
}

func TestAssertPath_NotFound(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{{
		Type:  AssertKinds,
		Path:  "init.arities[5]",
		Kinds: []string{"fn-arity"},
	}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "no node at path")
}

func TestAssertNames_Fn(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{{
		Type:  AssertNames,
		Path:  "init",
		Name:  "inc!",
		Names: []string{"_inc__BANG___arity1", "_inc__BANG___arity_rest"},
	}})
	assert.Empty(t, errs)
}

func TestAssertNames_NotNamed(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{{
		Type:  AssertNames,
		Path:  "init.arities[0].body",
		Names: []string{"x"},
	}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "do nodes have no target names")
}

func TestAssertCount(t *testing.T) {
	result := defFnResult()

	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertCount, Kind: "local", Count: 2}}))
	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertCount, Kind: "loop", Count: 0}}))

	errs := EvaluateAssertions(result, []Assertion{{Type: AssertCount, Kind: "binding", Count: 1}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: 1 binding nodes")
	assert.Contains(t, errs[0], "Actual: 3")
}

func TestAssertDiagnostics(t *testing.T) {
	result := defFnResult()
	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertDiagnostics}}))

	result.Diagnostics = []ir.ValidationError{{Code: "E208", Field: "loop_id", Message: "m"}}
	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertDiagnostics, Codes: []string{"E208"}}}))

	errs := EvaluateAssertions(result, []Assertion{{Type: AssertDiagnostics, Codes: []string{}}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: []")
	assert.Contains(t, errs[0], "Actual: [E208]")
}

func TestAssertFixError(t *testing.T) {
	result := defFnResult()
	a := Assertion{Type: AssertFixError, Error: "no location"}

	errs := EvaluateAssertions(result, []Assertion{a})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "repair succeeded")

	result.FixError = "def: no location information"
	assert.Empty(t, EvaluateAssertions(result, []Assertion{a}))

	result.FixError = "something else"
	require.Len(t, EvaluateAssertions(result, []Assertion{a}), 1)
}

func TestEvaluateAssertions_SomeFail(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{
		{Type: AssertCount, Kind: "fn", Count: 1},
		{Type: AssertCount, Kind: "fn", Count: 2},
		{Type: AssertSpan, Span: "1:0-3:20"},
		{Type: AssertCount, Kind: "def", Count: 0},
	})
	assert.Len(t, errs, 2)
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	errs := EvaluateAssertions(defFnResult(), []Assertion{{Type: "shape"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `unknown assertion type "shape"`)
}

func TestAssertionError_ErrorFormat(t *testing.T) {
	err := &AssertionError{Type: AssertSpan, Path: "body.ret", Expected: "1:0-1:4", Actual: "no span"}
	assert.Equal(t, "Assertion failed: span at body.ret\n  Expected: 1:0-1:4\n  Actual: no span", err.Error())

	err = &AssertionError{Type: AssertCount, Expected: "1 fn nodes", Actual: "0"}
	assert.Equal(t, "Assertion failed: count\n  Expected: 1 fn nodes\n  Actual: 0", err.Error())
}

func TestTargetNames(t *testing.T) {
	point := testutil.DefPoint()

	names, err := TargetNames(point, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"distance_to", "_distance_to_arity0", "_distance_to_arity1", "origin", "size__Q__",
	}, names)

	method := point.Members[0].(*ir.DefTypeMethod)
	names, err = TargetNames(method, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"distance_to"}, names)

	names, err = TargetNames(method.Arities[1], "")
	require.NoError(t, err)
	assert.Equal(t, []string{"_distance_to_arity1"}, names)

	_, err = TargetNames(testutil.DefFn("inc").Init, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fn needs a name")

	_, err = TargetNames(testutil.Int(1), "")
	require.Error(t, err)
}

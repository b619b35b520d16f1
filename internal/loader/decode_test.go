package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/lang"
	"github.com/roach88/lispir/internal/testutil"
)

func TestDecodeRoundTrip(t *testing.T) {
	for _, unit := range testutil.Units() {
		t.Run(unit.Kind().String(), func(t *testing.T) {
			want := ir.ToMap(unit)

			got, err := Decode(ir.ToPlain(want))
			require.NoError(t, err)

			assert.Equal(t, unit.Kind(), got.Kind())
			assert.Equal(t, want, ir.ToMap(got))
			assert.Equal(t, ir.MustNodeID(unit), ir.MustNodeID(got))
		})
	}
}

func TestDecodeSharesNamespaces(t *testing.T) {
	n, err := Decode(ir.ToPlain(ir.ToMap(testutil.DefFn("inc"))))
	require.NoError(t, err)

	def := n.(*ir.Def)
	assert.Same(t, def.Env().NS, def.Var.NS)
	assert.Same(t, def.Env().NS, def.Init.Env().NS)
}

func TestDecodeKeepsFormsAsText(t *testing.T) {
	n, err := Decode(ir.ToPlain(ir.ToMap(testutil.DefFn("inc"))))
	require.NoError(t, err)

	assert.Equal(t, lang.Text("(def inc)"), n.Form())
	assert.True(t, n.TopLevel())
}

func TestDecodeConstValues(t *testing.T) {
	n, err := Decode(ir.ToPlain(ir.ToMap(testutil.Constants())))
	require.NoError(t, err)

	items := n.(*ir.Vector).Items
	vals := make(map[ir.ConstType]any, len(items))
	for _, item := range items {
		c := item.(*ir.Const)
		vals[c.Type] = c.Val
	}

	assert.Nil(t, vals[ir.ConstNil])
	assert.Equal(t, true, vals[ir.ConstBool])
	assert.Equal(t, lang.Char('λ'), vals[ir.ConstChar])
	assert.Same(t, lang.Intern("user", "k"), vals[ir.ConstKeyword])
	assert.Equal(t, lang.Text("[1 2]"), vals[ir.ConstVector])
	assert.Equal(t, []byte("bytes"), vals[ir.ConstBytes])
}

func TestDecodeNumbers(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want any
	}{
		{"int", 7, int64(7)},
		{"int64", int64(7), int64(7)},
		{"uint64", uint64(7), int64(7)},
		{"integral float", 7.0, int64(7)},
		{"float", 7.5, 7.5},
		{"float string", "1e3", 1000.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := constVal(ir.ConstNumber, tt.val)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := func() map[string]any {
		return ir.ToPlain(ir.ToMap(testutil.Int(1))).(map[string]any)
	}

	tests := []struct {
		name     string
		mutate   func(m map[string]any) any
		wantPath string
	}{
		{
			name:     "not a mapping",
			mutate:   func(map[string]any) any { return []any{} },
			wantPath: "$",
		},
		{
			name: "unknown kind",
			mutate: func(m map[string]any) any {
				m["kind"] = "lambda"
				return m
			},
			wantPath: "$.kind",
		},
		{
			name: "unknown const type",
			mutate: func(m map[string]any) any {
				m["type"] = "complex"
				return m
			},
			wantPath: "$.type",
		},
		{
			name: "bad uuid",
			mutate: func(m map[string]any) any {
				m["type"] = "uuid"
				m["val"] = "not-a-uuid"
				return m
			},
			wantPath: "$.val",
		},
		{
			name: "line is not a number",
			mutate: func(m map[string]any) any {
				m["env"].(map[string]any)["line"] = "one"
				return m
			},
			wantPath: "$.env.line",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.mutate(valid()))
			require.Error(t, err)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantPath, de.Path)
		})
	}
}

func TestDecodeEnforcesConstruction(t *testing.T) {
	m := ir.ToPlain(ir.ToMap(testutil.CountDown())).(map[string]any)
	m["body"] = nil

	_, err := Decode(m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ir.ErrMissingChild))

	var ce *ir.ContractError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ir.KindTry, ce.Kind)
}

func TestDecodeRejectsMisplacedKind(t *testing.T) {
	m := ir.ToPlain(ir.ToMap(testutil.CountDown())).(map[string]any)
	m["body"] = ir.ToPlain(ir.ToMap(testutil.Int(1)))

	_, err := Decode(m)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "$.body", de.Path)
	assert.Contains(t, de.Message, "const node is not allowed here")
}

func TestDecodeKwargCountMismatch(t *testing.T) {
	invoke := ir.MustNew(&ir.Invoke{
		Base:   ir.NewBase(lang.List{lang.Sym("f")}, testutil.Env()),
		Fn:     testutil.VarRef("f"),
		Kwargs: []ir.KeywordArg{{Name: "key", Val: testutil.Int(1)}},
	})
	m := ir.ToPlain(ir.ToMap(invoke)).(map[string]any)
	m["kwarg_names"] = []any{}

	_, err := Decode(m)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "$.kwargs", de.Path)
}

func TestDecodeMissingTryFinallyIsNormalized(t *testing.T) {
	m := ir.ToPlain(ir.ToMap(testutil.CountDown())).(map[string]any)
	delete(m, "finally")

	n, err := Decode(m)
	require.NoError(t, err)

	try := n.(*ir.Try)
	require.NotNil(t, try.Finally)
	assert.False(t, try.HasFinally())
}

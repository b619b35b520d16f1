package ir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lispir/internal/lang"
)

func TestNewRejectsMissingField(t *testing.T) {
	_, err := New(&Binding{Base: NewBase(lang.Sym("x"), testEnv()), Local: LocalLet})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)

	var ce *ContractError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindBinding, ce.Kind)
	assert.Equal(t, "name", ce.Field)
}

func TestNewRejectsMissingChild(t *testing.T) {
	_, err := New(&If{Base: NewBase(nil, testEnv()), Test: intConst(1), Then: intConst(2)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingChild)
	assert.Contains(t, err.Error(), `"else"`)
}

func TestNewRejectsNilPluralElement(t *testing.T) {
	_, err := New(&Vector{Base: NewBase(lang.Vector{}, testEnv()), Items: []Node{intConst(1), nil}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingChild)
	assert.Contains(t, err.Error(), "items[1]")
}

func TestNewRejectsTypedNilPointer(t *testing.T) {
	var missing *Do
	_, err := New(&Let{Base: NewBase(nil, testEnv()), Body: missing})
	assert.ErrorIs(t, err, ErrMissingChild)
}

func TestNewAcceptsEmptyPluralSlots(t *testing.T) {
	v, err := New(&Vector{Base: NewBase(lang.Vector{}, testEnv())})
	require.NoError(t, err)
	assert.Equal(t, []*lang.Keyword{KwItems}, v.Children())
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(&Local{Base: NewBase(nil, testEnv())})
	})
}

func TestBaseAccessors(t *testing.T) {
	form := lang.List{lang.Sym("when"), lang.Sym("x"), int64(1)}
	expanded := lang.List{lang.Sym("if"), lang.Sym("x"), int64(1), nil}
	env := testEnv().At(3, 1, 3, 14)
	n := MustNew(&If{
		Base: NewBase(expanded, env, form).AsTopLevel(),
		Test: local("x", LocalLet),
		Then: intConst(1),
		Else: NilConst(nil, env),
	})

	assert.Equal(t, KindIf, n.Kind())
	assert.Equal(t, expanded, n.Form())
	assert.Equal(t, env, n.Env())
	assert.Equal(t, []lang.Form{form}, n.RawForms())
	assert.True(t, n.TopLevel())
}

func TestWithEnvSharesChildren(t *testing.T) {
	orig := MustNew(&If{Base: NewBase(nil, testEnv()), Test: intConst(1), Then: intConst(2), Else: intConst(3)})
	moved := WithEnv(orig, testEnv().At(9, 0, 9, 5))

	assert.NotSame(t, orig, moved)
	assert.Same(t, orig.Then, moved.Then)
	assert.Equal(t, 9, moved.Env().Line)
	assert.Equal(t, NoPos, orig.Env().Line)
}

func TestWithTopLevel(t *testing.T) {
	orig := intConst(1)
	top := WithTopLevel(orig, true)
	assert.True(t, top.TopLevel())
	assert.False(t, orig.TopLevel())
	assert.Equal(t, orig.Val, top.Val)
}

func TestReplaceSingularSlot(t *testing.T) {
	orig := MustNew(&If{Base: NewBase(nil, testEnv()), Test: intConst(1), Then: intConst(2), Else: intConst(3)})
	repl, err := Replace(orig, KwElse, kwConst("none"))
	require.NoError(t, err)

	assert.Equal(t, ConstKeyword, repl.Else.(*Const).Type)
	assert.Same(t, orig.Test, repl.Test)
	assert.Equal(t, ConstNumber, orig.Else.(*Const).Type)
}

func TestReplacePluralSlot(t *testing.T) {
	orig := MustNew(&Vector{Base: NewBase(lang.Vector{}, testEnv()), Items: []Node{intConst(1)}})
	repl, err := Replace(orig, KwItems, intConst(7), intConst(8))
	require.NoError(t, err)
	assert.Len(t, repl.Items, 2)
	assert.Len(t, orig.Items, 1)
}

func TestReplaceKwargsKeepsNames(t *testing.T) {
	orig := MustNew(&Invoke{
		Base:   NewBase(nil, testEnv()),
		Fn:     varRef("f"),
		Kwargs: []KeywordArg{{Name: "a", Val: intConst(1)}, {Name: "b", Val: intConst(2)}},
	})
	repl, err := Replace(orig, KwKwargs, intConst(10), intConst(20))
	require.NoError(t, err)
	assert.Equal(t, "a", repl.Kwargs[0].Name)
	assert.Equal(t, int64(20), repl.Kwargs[1].Val.(*Const).Val)
}

func TestReplaceErrors(t *testing.T) {
	let := MustNew(&Let{Base: NewBase(nil, testEnv()), Body: body(intConst(1))})

	t.Run("singular slot takes one node", func(t *testing.T) {
		_, err := Replace(let, KwBody, body(intConst(1)), body(intConst(2)))
		assert.ErrorIs(t, err, ErrMissingChild)
	})

	t.Run("nil node", func(t *testing.T) {
		_, err := Replace(let, KwBody, nil)
		assert.ErrorIs(t, err, ErrMissingChild)
	})

	t.Run("wrong node type", func(t *testing.T) {
		_, err := Replace(let, KwBody, intConst(1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot place node")
	})

	t.Run("unknown slot", func(t *testing.T) {
		_, err := Replace(let, KwElse, intConst(1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no child slot")
	})
}

func TestContractErrorMessage(t *testing.T) {
	err := &ContractError{Err: ErrMissingChild, Kind: KindTry, Field: "finally", Message: "detail"}
	assert.Equal(t, `try: declared child is missing "finally": detail`, err.Error())
	assert.ErrorIs(t, err, ErrMissingChild)
}

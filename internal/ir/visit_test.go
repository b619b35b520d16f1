package ir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lispir/internal/lang"
)

func TestVisitOrder(t *testing.T) {
	fn := varRef("f")
	a, b, c := intConst(1), intConst(2), intConst(3)
	n := MustNew(&Invoke{
		Base:   NewBase(nil, testEnv()),
		Fn:     fn,
		Args:   []Node{a, b},
		Kwargs: []KeywordArg{{Name: "k", Val: c}},
	})

	var got []Node
	Visit(n, func(child Node) { got = append(got, child) })
	assert.Equal(t, []Node{fn, a, b, c}, got)
}

func TestVisitIsDeterministic(t *testing.T) {
	for _, n := range sampleNodes() {
		first := ChildNodes(n)
		second := ChildNodes(n)
		require.Len(t, second, len(first), n.Kind().String())
		for i := range first {
			assert.Same(t, first[i], second[i], "%s child %d", n.Kind(), i)
		}
	}
}

func TestVisitIsShallow(t *testing.T) {
	inner := MustNew(&Vector{Base: NewBase(lang.Vector{}, testEnv()), Items: []Node{intConst(1), intConst(2)}})
	outer := MustNew(&Vector{Base: NewBase(lang.Vector{}, testEnv()), Items: []Node{inner}})

	calls := 0
	Visit(outer, func(Node) { calls++ })
	assert.Equal(t, 1, calls)
}

func TestVisitSkipsUndeclaredOptionalSlots(t *testing.T) {
	n := MustNew(&Binding{Base: NewBase(lang.Sym("x"), testEnv()), Name: "x", Local: LocalLet, Tag: varRef("int")})
	assert.Equal(t, []Node{n.Tag}, ChildNodes(n))
}

func TestVisitPanicsOnMissingChild(t *testing.T) {
	// Built without New so the missing else branch reaches Visit.
	n := &If{Base: NewBase(nil, testEnv()), Test: intConst(1), Then: intConst(2)}

	defer func() {
		r := recover()
		require.NotNil(t, r, "Visit must panic")
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrMissingChild))
	}()
	Visit(n, func(Node) {})
}

func TestVisitPanicsOnMissingPluralElement(t *testing.T) {
	n := &Do{Base: NewBase(nil, testEnv()), Statements: []Node{nil}, Ret: intConst(1)}
	assert.Panics(t, func() { Visit(n, func(Node) {}) })
}

func TestWalkPreOrder(t *testing.T) {
	n := MustNew(&If{
		Base: NewBase(nil, testEnv()),
		Test: local("x", LocalLet),
		Then: body(intConst(1)),
		Else: NilConst(nil, testEnv()),
	})
	assert.Equal(t, []Kind{KindIf, KindLocal, KindDo, KindConst, KindConst}, collectKinds(n))
}

func TestWalkPrunes(t *testing.T) {
	n := MustNew(&If{
		Base: NewBase(nil, testEnv()),
		Test: local("x", LocalLet),
		Then: body(intConst(1)),
		Else: NilConst(nil, testEnv()),
	})
	var kinds []Kind
	Walk(n, func(c Node) bool {
		kinds = append(kinds, c.Kind())
		return c.Kind() != KindDo
	})
	assert.Equal(t, []Kind{KindIf, KindLocal, KindDo, KindConst}, kinds)
}

func TestWalkPaths(t *testing.T) {
	arity := fnArity("f_1", 1, false, local("a", LocalArg))
	fn := MustNew(&Fn{Base: NewBase(nil, testEnv()), MaxFixedArity: 1, Arities: []*FnArity{arity}})

	var paths []string
	WalkPaths(fn, func(p string, _ Node) bool {
		paths = append(paths, p)
		return true
	})
	assert.Equal(t, []string{
		".",
		"arities[0]",
		"arities[0].params[0]",
		"arities[0].body",
		"arities[0].body.ret",
	}, paths)
}

func TestNodeAt(t *testing.T) {
	ret := local("a", LocalArg)
	arity := fnArity("f_1", 1, false, ret)
	fn := MustNew(&Fn{Base: NewBase(nil, testEnv()), MaxFixedArity: 1, Arities: []*FnArity{arity}})

	assert.Same(t, fn, NodeAt(fn, "."))
	assert.Same(t, ret, NodeAt(fn, "arities[0].body.ret"))
	assert.Equal(t, Node(arity.Params[0]), NodeAt(fn, "arities[0].params[0]"))
	assert.Nil(t, NodeAt(fn, "arities[1]"))
	assert.Nil(t, NodeAt(fn, "local"))
}

package ir

import (
	"reflect"
	"slices"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lispir/internal/lang"
)

var (
	nodeType       = reflect.TypeFor[Node]()
	keywordArgType = reflect.TypeFor[[]KeywordArg]()
)

// snakeCase converts a Go field name to its mapping key: ArgID -> arg_id.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// childFields returns the mapping keys of the struct fields of n that hold
// child data: every sequence-of-nodes field, and every non-nil node field.
func childFields(n Node) []string {
	v := reflect.ValueOf(n).Elem()
	var fields []string
	for i := range v.NumField() {
		f := v.Type().Field(i)
		if f.Anonymous {
			continue
		}
		switch {
		case f.Type == keywordArgType:
			fields = append(fields, snakeCase(f.Name))
		case f.Type.Kind() == reflect.Slice && f.Type.Elem().Implements(nodeType):
			fields = append(fields, snakeCase(f.Name))
		case f.Type.Implements(nodeType):
			if !v.Field(i).IsNil() {
				fields = append(fields, snakeCase(f.Name))
			}
		}
	}
	slices.Sort(fields)
	return fields
}

func childKeys(n Node) []string {
	var keys []string
	for _, tag := range n.Children() {
		keys = append(keys, slotKey(tag))
	}
	slices.Sort(keys)
	return keys
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "arg_id", snakeCase("ArgID"))
	assert.Equal(t, "loop_id", snakeCase("LoopID"))
	assert.Equal(t, "inline_fn", snakeCase("InlineFn"))
	assert.Equal(t, "is_allow_var_indirection", snakeCase("IsAllowVarIndirection"))
	assert.Equal(t, "name", snakeCase("Name"))
}

func TestSampleNodesCoverEveryKind(t *testing.T) {
	seen := make(map[Kind]bool)
	for _, n := range sampleNodes() {
		assert.False(t, seen[n.Kind()], "duplicate sample for %s", n.Kind())
		seen[n.Kind()] = true
	}
	for _, k := range AllKinds() {
		assert.True(t, seen[k], "no sample for %s", k)
	}
}

func TestChildrenMatchPopulatedFields(t *testing.T) {
	for _, n := range sampleNodes() {
		t.Run(n.Kind().String(), func(t *testing.T) {
			assert.Equal(t, childFields(n), childKeys(n))
		})
	}
}

func TestChildrenMatchPopulatedFieldsWhenOptionalsAbsent(t *testing.T) {
	env := testEnv()
	nodes := []Node{
		MustNew(&Binding{Base: NewBase(lang.Sym("x"), env), Name: "x", Local: LocalLet}),
		MustNew(&Def{Base: NewBase(nil, env), Name: lang.Sym("x"), Var: lang.NewVar(testNS, "x")}),
		MustNew(&Fn{Base: NewBase(nil, env), Arities: []*FnArity{fnArity("f", 0, false, intConst(1))}}),
		MustNew(&Throw{Base: NewBase(nil, env), Exception: intConst(1)}),
		MustNew(&Yield{Base: NewBase(nil, env)}),
		intConst(1),
	}
	for _, n := range nodes {
		t.Run(n.Kind().String(), func(t *testing.T) {
			assert.Equal(t, childFields(n), childKeys(n))
		})
	}
}

func TestChildrenDeclarationOrder(t *testing.T) {
	tests := []struct {
		n    Node
		want []*lang.Keyword
	}{
		{&If{}, []*lang.Keyword{KwTest, KwThen, KwElse}},
		{&Do{}, []*lang.Keyword{KwStatements, KwRet}},
		{&Try{}, []*lang.Keyword{KwBody, KwCatches, KwFinally}},
		{&Invoke{}, []*lang.Keyword{KwFn, KwArgs, KwKwargs}},
		{&Catch{}, []*lang.Keyword{KwClass, KwLocal, KwBody}},
		{&DefTypeMethodArity{}, []*lang.Keyword{KwThisLocal, KwParams, KwBody}},
		{&DefTypeClassMethod{}, []*lang.Keyword{KwClassLocal, KwParams, KwBody}},
		{&WithMeta{}, []*lang.Keyword{KwMeta, KwExpr}},
		{&Local{}, nil},
		{&Yield{}, []*lang.Keyword{}},
	}
	for _, tt := range tests {
		t.Run(tt.n.Kind().String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.Children())
		})
	}
}

func TestIsPluralMatchesSlots(t *testing.T) {
	for _, n := range sampleNodes() {
		for _, s := range n.slots() {
			assert.Equal(t, s.plural, IsPlural(s.tag), "%s slot %s", n.Kind(), s.tag)
		}
	}
	assert.False(t, IsPlural(KwClass))
	assert.True(t, IsPlural(KwAliases))
}

func TestEmptyBody(t *testing.T) {
	b := EmptyBody(nil, testEnv())
	require.NotNil(t, b)
	assert.True(t, b.IsBody)
	assert.True(t, b.IsEmpty())
	assert.Empty(t, b.Statements)
	assert.True(t, IsNilConst(b.Ret))
	_, err := New(b)
	assert.NoError(t, err)
}

func TestTryAlwaysDeclaresFinally(t *testing.T) {
	plain := MustNew(&Try{Base: NewBase(nil, testEnv()), Body: body(intConst(1)), Finally: EmptyBody(nil, testEnv())})
	assert.Equal(t, []*lang.Keyword{KwBody, KwCatches, KwFinally}, plain.Children())
	assert.False(t, plain.HasFinally())

	cleanup := MustNew(&Try{Base: NewBase(nil, testEnv()), Body: body(intConst(1)), Finally: body(NilConst(nil, testEnv()), intConst(1))})
	assert.True(t, cleanup.HasFinally())

	value := MustNew(&Try{Base: NewBase(nil, testEnv()), Body: body(intConst(1)), Finally: body(intConst(5))})
	assert.True(t, value.HasFinally())

	_, err := New(&Try{Base: NewBase(nil, testEnv()), Body: body(intConst(1))})
	assert.ErrorIs(t, err, ErrMissingChild)
}

func kindsImplementing(check func(Node) bool) []Kind {
	var kinds []Kind
	for _, n := range sampleNodes() {
		if check(n) {
			kinds = append(kinds, n.Kind())
		}
	}
	slices.Sort(kinds)
	return kinds
}

func sortedKinds(kinds ...Kind) []Kind {
	slices.Sort(kinds)
	return kinds
}

func TestAssignableKinds(t *testing.T) {
	got := kindsImplementing(func(n Node) bool {
		_, ok := n.(Assignable)
		return ok
	})
	assert.Equal(t, sortedKinds(KindHostField, KindVar, KindLocal, KindBinding), got)
}

func TestAssignableReflectsFlag(t *testing.T) {
	field := MustNew(&HostField{Base: NewBase(nil, testEnv()), Field: "x", Target: local("p", LocalLet)})
	assert.False(t, field.Assignable())

	field.IsAssignable = true
	assert.True(t, field.Assignable())
}

func TestMetaTargetKinds(t *testing.T) {
	got := kindsImplementing(func(n Node) bool {
		_, ok := n.(MetaTarget)
		return ok
	})
	assert.Equal(t, sortedKinds(KindFn, KindMap, KindQueue, KindReify, KindSet, KindVector), got)
}

func TestMetaKinds(t *testing.T) {
	got := kindsImplementing(func(n Node) bool {
		_, ok := n.(Meta)
		return ok
	})
	assert.Equal(t, sortedKinds(KindConst, KindMap), got)
}

func TestTypeBaseAndClassRefKinds(t *testing.T) {
	bases := kindsImplementing(func(n Node) bool {
		_, ok := n.(TypeBase)
		return ok
	})
	assert.Equal(t, sortedKinds(KindMaybeClass, KindMaybeHostForm, KindVar), bases)

	classes := kindsImplementing(func(n Node) bool {
		_, ok := n.(ClassRef)
		return ok
	})
	assert.Equal(t, sortedKinds(KindMaybeClass, KindMaybeHostForm), classes)
}

func TestDefTypeMemberKinds(t *testing.T) {
	got := kindsImplementing(func(n Node) bool {
		_, ok := n.(DefTypeMember)
		return ok
	})
	assert.Equal(t, sortedKinds(KindDefTypeMethod, KindDefTypeClassMethod, KindDefTypeStaticMethod, KindDefTypeProperty), got)
}

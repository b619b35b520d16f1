package ir

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/lispir/internal/lang"
)

func deftype(members ...DefTypeMember) *DefType {
	return MustNew(&DefType{
		Base:    NewBase(lang.List{lang.Sym("deftype*")}, testEnv()),
		Name:    "Point",
		Members: members,
	})
}

func TestArityName(t *testing.T) {
	assert.Equal(t, "_foo_arity1", ArityName(DefaultSanitizer, "foo", 1, false))
	assert.Equal(t, "_foo_arity_rest", ArityName(DefaultSanitizer, "foo", 2, true))
	assert.Equal(t, "_valid__Q___arity0", ArityName(DefaultSanitizer, "valid?", 0, false))
	assert.Equal(t, "_FOO_arity3", ArityName(strings.ToUpper, "foo", 3, false))
}

func TestArityNameNilSanitizer(t *testing.T) {
	assert.Equal(t, ArityName(DefaultSanitizer, "a-b", 1, false), ArityName(nil, "a-b", 1, false))
}

func TestMultiArityNamesAreDistinct(t *testing.T) {
	foo := method("foo",
		methodArity("foo", 1, false),
		methodArity("foo", 2, false),
		methodArity("foo", 2, true),
	)

	var names []string
	for _, a := range foo.Arities {
		names = append(names, a.TargetName(DefaultSanitizer))
	}
	assert.Equal(t, []string{"_foo_arity1", "_foo_arity2", "_foo_arity_rest"}, names)
	assert.Equal(t, "foo", MemberName(DefaultSanitizer, foo))
	assert.NotContains(t, names, MemberName(DefaultSanitizer, foo))
}

func TestMemberNamesEnumeration(t *testing.T) {
	dt := deftype(
		method("bar", methodArity("bar", 0, false)),
		method("baz",
			methodArity("baz", 1, false),
			methodArity("baz", 2, false),
			methodArity("baz", 2, true),
		),
	)

	got := slices.Collect(dt.MemberNames(DefaultSanitizer))
	assert.Equal(t, []string{"bar", "baz", "_baz_arity1", "_baz_arity2", "_baz_arity_rest"}, got)
}

func TestMemberNamesIncludesOtherMembers(t *testing.T) {
	prop := MustNew(&DefTypeProperty{Base: NewBase(nil, testEnv()), Name: "size-of", ThisLocal: this(), Body: body(intConst(0))})
	static := MustNew(&DefTypeStaticMethod{Base: NewBase(nil, testEnv()), Name: "make!", Body: body(intConst(0))})
	dt := deftype(prop, static)

	got := slices.Collect(dt.MemberNames(DefaultSanitizer))
	assert.Equal(t, []string{"size_of", "make__BANG__"}, got)
}

func TestMemberNamesIsLazy(t *testing.T) {
	dt := deftype(
		method("a", methodArity("a", 0, false)),
		method("b", methodArity("b", 0, false)),
		method("c", methodArity("c", 0, false)),
	)

	calls := 0
	counting := func(s string) string {
		calls++
		return s
	}
	for name := range dt.MemberNames(counting) {
		assert.Equal(t, "a", name)
		break
	}
	assert.Equal(t, 1, calls)
}

func TestMemberNamesDoesNotDescendIntoNestedTypes(t *testing.T) {
	nested := MustNew(&Reify{
		Base:    NewBase(nil, testEnv()),
		Members: []DefTypeMember{method("inner", methodArity("inner", 0, false))},
	})
	outerArity := MustNew(&DefTypeMethodArity{
		Base:      NewBase(nil, testEnv()),
		Name:      "outer",
		ThisLocal: this(),
		Body:      body(nested),
		LoopID:    "outer_0",
	})
	dt := deftype(method("outer", outerArity))

	assert.Equal(t, []string{"outer"}, slices.Collect(dt.MemberNames(DefaultSanitizer)))
	assert.Equal(t, []string{"inner"}, slices.Collect(nested.MemberNames(DefaultSanitizer)))
}

func TestFnArityNames(t *testing.T) {
	fn := MustNew(&Fn{
		Base:          NewBase(nil, testEnv()),
		MaxFixedArity: 1,
		IsVariadic:    true,
		Arities: []*FnArity{
			fnArity("f_0", 0, false, intConst(0)),
			fnArity("f_1", 1, false, intConst(1)),
			fnArity("f_rest", 1, true, intConst(2)),
		},
	})
	got := slices.Collect(fn.ArityNames(DefaultSanitizer, "my-fn"))
	assert.Equal(t, []string{"_my_fn_arity0", "_my_fn_arity1", "_my_fn_arity_rest"}, got)
}

package ir

import (
	"iter"
	"strconv"

	"github.com/roach88/lispir/internal/lang"
)

// Sanitizer turns a source name into a legal host identifier. It must be
// total and deterministic, and distinct names in one scope must not collide.
type Sanitizer func(string) string

// DefaultSanitizer is the identifier sanitizer for Go targets.
var DefaultSanitizer Sanitizer = lang.Munge

func sanitizer(s Sanitizer) Sanitizer {
	if s == nil {
		return DefaultSanitizer
	}
	return s
}

// ArityName is the target name of one arity body of a multi-arity callable
// called name. Fixed arities are suffixed with their parameter count and the
// variadic arity with "_rest", so names are unique within the callable.
func ArityName(s Sanitizer, name string, fixedArity int, variadic bool) string {
	suffix := strconv.Itoa(fixedArity)
	if variadic {
		suffix = "_rest"
	}
	return "_" + sanitizer(s)(name) + "_arity" + suffix
}

// MemberName is the target name of a deftype or reify member.
func MemberName(s Sanitizer, m DefTypeMember) string {
	return sanitizer(s)(m.MemberName())
}

// TargetName is the target name of this arity's body.
func (n *DefTypeMethodArity) TargetName(s Sanitizer) string {
	return ArityName(s, n.Name, n.FixedArity, n.IsVariadic)
}

// ArityNames yields the target names of each arity of a function named name,
// in declaration order.
func (n *Fn) ArityNames(s Sanitizer, name string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, a := range n.Arities {
			if !yield(ArityName(s, name, a.FixedArity, a.IsVariadic)) {
				return
			}
		}
	}
}

// MemberNames yields the target names of the type's members in declaration
// order. A method with more than one arity yields its dispatcher name
// followed by one name per arity. Nested types are not descended into.
func (n *DefType) MemberNames(s Sanitizer) iter.Seq[string] {
	return memberNames(n.Members, s)
}

// MemberNames yields the target names of the instance's members. See
// DefType.MemberNames.
func (n *Reify) MemberNames(s Sanitizer) iter.Seq[string] {
	return memberNames(n.Members, s)
}

func memberNames(members []DefTypeMember, s Sanitizer) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, m := range members {
			if !yield(MemberName(s, m)) {
				return
			}
			meth, ok := m.(*DefTypeMethod)
			if !ok || len(meth.Arities) <= 1 {
				continue
			}
			for _, a := range meth.Arities {
				if !yield(a.TargetName(s)) {
					return
				}
			}
		}
	}
}

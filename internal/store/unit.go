package store

import (
	"errors"
	"iter"
	"slices"

	"github.com/roach88/lispir/internal/ir"
)

// ErrNotFound is returned when no unit has the requested id.
var ErrNotFound = errors.New("unit not found")

// Unit is one cached compilation unit.
type Unit struct {
	ID        string // ir.NodeID of the root
	Seq       int64
	NS        string
	File      string
	Kind      string
	Line      int // 0 when the root has no line
	Payload   string
	IRVersion string
	Names     []string
}

// Names returns the target names a unit root introduces into its
// namespace, sorted: the munged def or type name, then the arity names of
// a defined function or the member names of a type.
func Names(n ir.Node, s ir.Sanitizer) []string {
	if s == nil {
		s = ir.DefaultSanitizer
	}
	var names []string
	add := func(seq iter.Seq[string]) {
		for name := range seq {
			names = append(names, name)
		}
	}
	switch root := n.(type) {
	case *ir.Def:
		names = append(names, s(root.Name.Name))
		if fn, ok := root.Init.(*ir.Fn); ok && len(fn.Arities) > 1 {
			add(fn.ArityNames(s, root.Name.Name))
		}
	case *ir.DefType:
		names = append(names, s(root.Name))
		add(root.MemberNames(s))
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func unitOf(n ir.Node, payload string) Unit {
	env := n.Env()
	u := Unit{
		Kind:      n.Kind().String(),
		File:      env.File,
		Payload:   payload,
		IRVersion: ir.IRVersion,
	}
	if env.NS != nil {
		u.NS = env.NS.Name
	}
	if env.Line >= 1 {
		u.Line = env.Line
	}
	return u
}

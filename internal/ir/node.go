package ir

import (
	"fmt"
	"runtime"

	"github.com/roach88/lispir/internal/lang"
)

// Node is an immutable node of the analyzed syntax tree.
//
// The set of implementations is closed: every variant lives in this package
// and Kind identifies it. Fields of the variant structs are exported for
// reading; treat a node as frozen once it has been passed to New.
type Node interface {
	// Kind identifies the variant.
	Kind() Kind

	// Form is the reader form this node was analyzed from.
	Form() lang.Form

	// Env records namespace, file and source span.
	Env() NodeEnv

	// RawForms are the intermediate forms produced by macro expansion before
	// the final form, outermost first. Empty when no expansion occurred.
	RawForms() []lang.Form

	// TopLevel reports whether this node is the root of an independently
	// compiled unit.
	TopLevel() bool

	// Children names the fields holding child nodes, in visiting order.
	Children() []*lang.Keyword

	base() Base
	slots() []slot
	rebuild(b Base, c slotValues) Node
	check() error
	attrs() Object
}

// Base holds the fields every node carries. Build one with NewBase.
type Base struct {
	form     lang.Form
	env      NodeEnv
	rawForms []lang.Form
	topLevel bool
}

// NewBase creates the common part of a node.
func NewBase(form lang.Form, env NodeEnv, rawForms ...lang.Form) Base {
	return Base{form: form, env: env, rawForms: rawForms}
}

// Form implements Node.
func (b Base) Form() lang.Form { return b.form }

// Env implements Node.
func (b Base) Env() NodeEnv { return b.env }

// RawForms implements Node. The returned slice must not be modified.
func (b Base) RawForms() []lang.Form { return b.rawForms }

// TopLevel implements Node.
func (b Base) TopLevel() bool { return b.topLevel }

// AsTopLevel returns a copy of b marked as a top-level unit root.
func (b Base) AsTopLevel() Base {
	b.topLevel = true
	return b
}

func (b Base) base() Base { return b }

func (b Base) withEnv(env NodeEnv) Base {
	b.env = env
	return b
}

// slot is one (role tag, accessor) entry of a variant's static child table.
type slot struct {
	tag      *lang.Keyword
	plural   bool
	optional bool
	node     Node
	nodes    []Node
}

// declared reports whether the slot appears in Children. Optional slots are
// declared only when populated.
func (s slot) declared() bool {
	return !s.optional || s.node != nil
}

type slotValues map[*lang.Keyword]slot

func single(tag *lang.Keyword, n Node) slot {
	return slot{tag: tag, node: n}
}

func optional(tag *lang.Keyword, n Node) slot {
	return slot{tag: tag, node: n, optional: true}
}

func plural(tag *lang.Keyword, ns []Node) slot {
	return slot{tag: tag, plural: true, nodes: ns}
}

// ref converts a possibly-nil node pointer to a Node without producing a
// non-nil interface that wraps a nil pointer.
func ref[T any, P interface {
	*T
	Node
}](p P) Node {
	if p == nil {
		return nil
	}
	return p
}

func refs[T any, P interface {
	*T
	Node
}](ps []P) []Node {
	out := make([]Node, len(ps))
	for i, p := range ps {
		out[i] = ref(p)
	}
	return out
}

func ifaces[I Node](xs []I) []Node {
	out := make([]Node, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// one returns the replacement for a singular slot, or cur if c has none.
func one[T Node](c slotValues, tag *lang.Keyword, cur T) T {
	s, ok := c[tag]
	if !ok || s.node == nil {
		return cur
	}
	return s.node.(T)
}

// many returns the replacement for a plural slot, or cur if c has none.
func many[T Node](c slotValues, tag *lang.Keyword, cur []T) []T {
	s, ok := c[tag]
	if !ok {
		return cur
	}
	out := make([]T, len(s.nodes))
	for i, n := range s.nodes {
		if n != nil {
			out[i] = n.(T)
		}
	}
	return out
}

func tagsOf(slots []slot) []*lang.Keyword {
	tags := make([]*lang.Keyword, 0, len(slots))
	for _, s := range slots {
		if s.declared() {
			tags = append(tags, s.tag)
		}
	}
	return tags
}

// New validates a freshly built node and returns it.
//
// It fails with a *ContractError if a required field is missing or a
// declared child slot is empty. No partially valid node should escape the
// producer, so analyzers build every node through New or MustNew.
func New[T Node](n T) (T, error) {
	if err := n.check(); err != nil {
		var zero T
		return zero, err
	}
	for _, s := range n.slots() {
		if !s.declared() {
			continue
		}
		if err := checkSlot(n.Kind(), s); err != nil {
			var zero T
			return zero, err
		}
	}
	return n, nil
}

// MustNew is like New but panics on error.
func MustNew[T Node](n T) T {
	out, err := New(n)
	if err != nil {
		panic(err)
	}
	return out
}

func checkSlot(k Kind, s slot) error {
	if !s.plural {
		if s.node == nil {
			return missingChild(k, s.tag.Name())
		}
		return nil
	}
	for i, c := range s.nodes {
		if c == nil {
			return missingChild(k, fmt.Sprintf("%s[%d]", s.tag.Name(), i))
		}
	}
	return nil
}

// WithEnv returns a copy of n with env replaced. Children are shared.
func WithEnv[T Node](n T, env NodeEnv) T {
	return n.rebuild(n.base().withEnv(env), nil).(T)
}

// WithTopLevel returns a copy of n with the top-level flag set to top.
func WithTopLevel[T Node](n T, top bool) T {
	b := n.base()
	b.topLevel = top
	return n.rebuild(b, nil).(T)
}

// Replace returns a copy of n whose child slot tag holds children instead.
// A singular slot takes exactly one node, and every node must have the type
// the slot requires. The result is checked like New.
func Replace[T Node](n T, tag *lang.Keyword, children ...Node) (out T, err error) {
	for _, s := range n.slots() {
		if s.tag != tag {
			continue
		}
		repl := slot{tag: tag, plural: s.plural, optional: s.optional}
		if s.plural {
			if tag == KwKwargs && len(children) != len(s.nodes) {
				return out, fmt.Errorf("%s: kwargs take %d nodes, got %d", n.Kind(), len(s.nodes), len(children))
			}
			repl.nodes = children
		} else {
			if len(children) != 1 {
				return out, &ContractError{
					Err:     ErrMissingChild,
					Kind:    n.Kind(),
					Field:   tag.Name(),
					Message: fmt.Sprintf("singular slot takes 1 node, got %d", len(children)),
				}
			}
			repl.node = children[0]
		}
		if err := checkSlot(n.Kind(), repl); err != nil {
			return out, err
		}
		defer func() {
			if r := recover(); r != nil {
				te, ok := r.(*runtime.TypeAssertionError)
				if !ok {
					panic(r)
				}
				err = fmt.Errorf("%s: cannot place node in slot %s: %w", n.Kind(), tag, te)
			}
		}()
		return n.rebuild(n.base(), slotValues{tag: repl}).(T), nil
	}
	return out, fmt.Errorf("%s has no child slot %s", n.Kind(), tag)
}

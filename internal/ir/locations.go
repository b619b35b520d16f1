package ir

import "fmt"

// FixMissingLocations returns a copy of the tree rooted at n in which every
// node has a complete span.
//
// A node whose own span is complete keeps it, and that span becomes the
// fallback for its descendants. Any other node adopts fallback. The input
// tree is not modified.
//
// A nil fallback at a root without a complete span fails with
// ErrNoLocation. A declared child that holds nothing fails with
// ErrMissingChild.
func FixMissingLocations[T Node](n T, fallback *Span) (T, error) {
	out, err := fixLocations(n, fallback)
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

func fixLocations(n Node, fallback *Span) (Node, error) {
	env := n.Env()
	span, ok := env.Span()
	if !ok {
		if fallback == nil || !fallback.Complete() {
			return nil, noLocation(n.Kind())
		}
		span = *fallback
		env = env.WithSpan(span)
	}

	fixed := make(slotValues)
	for _, s := range n.slots() {
		if !s.declared() {
			continue
		}
		repl := slot{tag: s.tag, plural: s.plural, optional: s.optional}
		if !s.plural {
			if s.node == nil {
				return nil, missingChild(n.Kind(), s.tag.Name())
			}
			c, err := fixLocations(s.node, &span)
			if err != nil {
				return nil, err
			}
			repl.node = c
			fixed[s.tag] = repl
			continue
		}
		repl.nodes = make([]Node, len(s.nodes))
		for i, child := range s.nodes {
			if child == nil {
				return nil, missingChild(n.Kind(), fmt.Sprintf("%s[%d]", s.tag.Name(), i))
			}
			c, err := fixLocations(child, &span)
			if err != nil {
				return nil, err
			}
			repl.nodes[i] = c
		}
		fixed[s.tag] = repl
	}
	return n.rebuild(n.base().withEnv(env), fixed), nil
}

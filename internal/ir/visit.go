package ir

import (
	"fmt"
	"strings"
)

// Visit calls f once for each immediate child of n, in Children order.
// Plural slots are expanded in sequence order.
//
// Visit is shallow; recursive algorithms compose it with their own
// recursion. A declared slot that holds nothing means the tree is
// malformed, and Visit panics with a *ContractError wrapping
// ErrMissingChild.
func Visit(n Node, f func(Node)) {
	for _, s := range n.slots() {
		if !s.declared() {
			continue
		}
		if !s.plural {
			if s.node == nil {
				panic(missingChild(n.Kind(), s.tag.Name()))
			}
			f(s.node)
			continue
		}
		for i, c := range s.nodes {
			if c == nil {
				panic(missingChild(n.Kind(), fmt.Sprintf("%s[%d]", s.tag.Name(), i)))
			}
			f(c)
		}
	}
}

// Walk visits n and its descendants in pre-order. Returning false from f
// skips the children of the node just visited.
func Walk(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	Visit(n, func(c Node) { Walk(c, f) })
}

// ChildNodes returns the immediate children of n in visiting order.
func ChildNodes(n Node) []Node {
	var out []Node
	Visit(n, func(c Node) { out = append(out, c) })
	return out
}

// WalkPaths is Walk with the path of each node from n, in the form used by
// Validate: "." for n itself, then slot keys joined by dots with plural
// elements indexed, e.g. "arities[0].body.ret".
func WalkPaths(n Node, f func(path string, n Node) bool) {
	walkPaths(n, ".", f)
}

func walkPaths(n Node, path string, f func(string, Node) bool) {
	if !f(path, n) {
		return
	}
	for _, s := range n.slots() {
		if !s.declared() {
			continue
		}
		field := slotKey(s.tag)
		if !s.plural {
			if s.node == nil {
				panic(missingChild(n.Kind(), s.tag.Name()))
			}
			walkPaths(s.node, childPath(path, field), f)
			continue
		}
		for i, c := range s.nodes {
			if c == nil {
				panic(missingChild(n.Kind(), fmt.Sprintf("%s[%d]", s.tag.Name(), i)))
			}
			walkPaths(c, childPath(path, fmt.Sprintf("%s[%d]", field, i)), f)
		}
	}
}

// NodeAt returns the node at path below n, or nil if there is none. Paths
// are those reported by WalkPaths and Validate.
func NodeAt(n Node, path string) Node {
	var found Node
	WalkPaths(n, func(p string, c Node) bool {
		if found != nil {
			return false
		}
		if p == path {
			found = c
			return false
		}
		return p == "." || strings.HasPrefix(path, p+".")
	})
	return found
}

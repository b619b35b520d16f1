package lang

import (
	"fmt"
	"strings"
)

// Symbol is a reader symbol. Symbols are values, not interned.
type Symbol struct {
	Ns   string
	Name string
}

// Sym creates a symbol without namespace.
func Sym(name string) *Symbol {
	return &Symbol{Name: name}
}

// ParseSymbol splits "ns/name" into a namespaced symbol.
// A lone "/" is the division symbol and has no namespace.
func ParseSymbol(s string) *Symbol {
	if i := strings.Index(s, "/"); i > 0 && i < len(s)-1 {
		return &Symbol{Ns: s[:i], Name: s[i+1:]}
	}
	return &Symbol{Name: s}
}

func (s *Symbol) String() string {
	if s.Ns != "" {
		return s.Ns + "/" + s.Name
	}
	return s.Name
}

// Namespace is a read-only reference to a runtime namespace.
//
// The namespace registry itself belongs to the runtime. Nodes only hold a
// pointer so that code generation can resolve names; this package never
// mutates it.
type Namespace struct {
	Name string
}

// NewNamespace creates a namespace reference.
func NewNamespace(name string) *Namespace {
	return &Namespace{Name: name}
}

func (n *Namespace) String() string {
	if n == nil {
		return ""
	}
	return n.Name
}

// Var is a read-only reference to a namespace-qualified global variable.
type Var struct {
	NS      *Namespace
	Name    *Symbol
	Dynamic bool
}

// NewVar creates a var reference named name in ns.
func NewVar(ns *Namespace, name string) *Var {
	return &Var{NS: ns, Name: Sym(name)}
}

// String prints the var as the reader's var-quote form, e.g. #'user/inc.
func (v *Var) String() string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("#'%s/%s", v.NS.String(), v.Name.Name)
}

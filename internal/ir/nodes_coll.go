package ir

import "github.com/roach88/lispir/internal/lang"

// Map is a map literal with at least one evaluated key or value. Keys and
// Vals are parallel.
type Map struct {
	Base
	Keys []Node
	Vals []Node
}

func (*Map) Kind() Kind                  { return KindMap }
func (n *Map) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Map) check() error              { return checkPairs(KindMap, n.Keys, n.Vals) }
func (n *Map) attrs() Object             { return Object{} }
func (*Map) metaTarget()                 {}
func (*Map) meta()                       {}

func (n *Map) slots() []slot {
	return []slot{plural(KwKeys, n.Keys), plural(KwVals, n.Vals)}
}

func (n *Map) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Keys = many(c, KwKeys, m.Keys)
	m.Vals = many(c, KwVals, m.Vals)
	return &m
}

// HostDict is a host dictionary literal. Keys and Vals are parallel.
type HostDict struct {
	Base
	Keys []Node
	Vals []Node
}

func (*HostDict) Kind() Kind                  { return KindHostDict }
func (n *HostDict) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *HostDict) check() error              { return checkPairs(KindHostDict, n.Keys, n.Vals) }
func (n *HostDict) attrs() Object             { return Object{} }

func (n *HostDict) slots() []slot {
	return []slot{plural(KwKeys, n.Keys), plural(KwVals, n.Vals)}
}

func (n *HostDict) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Keys = many(c, KwKeys, m.Keys)
	m.Vals = many(c, KwVals, m.Vals)
	return &m
}

func checkPairs(k Kind, keys, vals []Node) error {
	if len(keys) != len(vals) {
		return &ContractError{
			Err:     ErrMissingChild,
			Kind:    k,
			Field:   "vals",
			Message: "keys and vals differ in length",
		}
	}
	return nil
}

// Set is a set literal.
type Set struct {
	Base
	Items []Node
}

func (*Set) Kind() Kind                  { return KindSet }
func (n *Set) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Set) slots() []slot             { return []slot{plural(KwItems, n.Items)} }
func (n *Set) check() error              { return nil }
func (n *Set) attrs() Object             { return Object{} }
func (*Set) metaTarget()                 {}

func (n *Set) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Items = many(c, KwItems, m.Items)
	return &m
}

// Vector is a vector literal.
type Vector struct {
	Base
	Items []Node
}

func (*Vector) Kind() Kind                  { return KindVector }
func (n *Vector) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Vector) slots() []slot             { return []slot{plural(KwItems, n.Items)} }
func (n *Vector) check() error              { return nil }
func (n *Vector) attrs() Object             { return Object{} }
func (*Vector) metaTarget()                 {}

func (n *Vector) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Items = many(c, KwItems, m.Items)
	return &m
}

// Queue is a persistent queue literal.
type Queue struct {
	Base
	Items []Node
}

func (*Queue) Kind() Kind                  { return KindQueue }
func (n *Queue) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Queue) slots() []slot             { return []slot{plural(KwItems, n.Items)} }
func (n *Queue) check() error              { return nil }
func (n *Queue) attrs() Object             { return Object{} }
func (*Queue) metaTarget()                 {}

func (n *Queue) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Items = many(c, KwItems, m.Items)
	return &m
}

// HostList is a host list literal.
type HostList struct {
	Base
	Items []Node
}

func (*HostList) Kind() Kind                  { return KindHostList }
func (n *HostList) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *HostList) slots() []slot             { return []slot{plural(KwItems, n.Items)} }
func (n *HostList) check() error              { return nil }
func (n *HostList) attrs() Object             { return Object{} }

func (n *HostList) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Items = many(c, KwItems, m.Items)
	return &m
}

// HostSet is a host set literal.
type HostSet struct {
	Base
	Items []Node
}

func (*HostSet) Kind() Kind                  { return KindHostSet }
func (n *HostSet) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *HostSet) slots() []slot             { return []slot{plural(KwItems, n.Items)} }
func (n *HostSet) check() error              { return nil }
func (n *HostSet) attrs() Object             { return Object{} }

func (n *HostSet) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Items = many(c, KwItems, m.Items)
	return &m
}

// HostTuple is a host tuple literal.
type HostTuple struct {
	Base
	Items []Node
}

func (*HostTuple) Kind() Kind                  { return KindHostTuple }
func (n *HostTuple) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *HostTuple) slots() []slot             { return []slot{plural(KwItems, n.Items)} }
func (n *HostTuple) check() error              { return nil }
func (n *HostTuple) attrs() Object             { return Object{} }

func (n *HostTuple) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Items = many(c, KwItems, m.Items)
	return &m
}

// WithMeta attaches evaluated metadata to the value of Expr.
type WithMeta struct {
	Base
	Meta Meta
	Expr MetaTarget
}

func (*WithMeta) Kind() Kind                  { return KindWithMeta }
func (n *WithMeta) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *WithMeta) check() error              { return nil }
func (n *WithMeta) attrs() Object             { return Object{} }

func (n *WithMeta) slots() []slot {
	return []slot{single(KwMeta, n.Meta), single(KwExpr, n.Expr)}
}

func (n *WithMeta) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Meta = one(c, KwMeta, m.Meta)
	m.Expr = one(c, KwExpr, m.Expr)
	return &m
}

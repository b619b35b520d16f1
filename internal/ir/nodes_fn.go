package ir

import "github.com/roach88/lispir/internal/lang"

// Fn is a function literal with one or more arities.
//
// Local is the binding of the function's own name, when it has one.
// InlineFn is an inlinable copy of a single-arity function, when the
// analyzer produced one.
type Fn struct {
	Base
	MaxFixedArity int
	Arities       []*FnArity
	Local         *Binding
	IsVariadic    bool
	IsAsync       bool
	KwargSupport  KeywordArgSupport
	InlineFn      *Fn
}

func (*Fn) Kind() Kind                  { return KindFn }
func (n *Fn) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Fn) check() error              { return nil }
func (*Fn) metaTarget()                 {}

func (n *Fn) slots() []slot {
	return []slot{
		optional(KwLocal, ref(n.Local)),
		plural(KwArities, refs(n.Arities)),
		optional(KwInlineFn, ref(n.InlineFn)),
	}
}

func (n *Fn) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Local = one(c, KwLocal, m.Local)
	m.Arities = many(c, KwArities, m.Arities)
	m.InlineFn = one(c, KwInlineFn, m.InlineFn)
	return &m
}

func (n *Fn) attrs() Object {
	return Object{
		"max_fixed_arity": Int(n.MaxFixedArity),
		"is_variadic":     Bool(n.IsVariadic),
		"is_async":        Bool(n.IsAsync),
		"kwarg_support":   optString(n.KwargSupport.String()),
	}
}

// FnArity is one arity of a Fn. It is also the recur target for LoopID.
type FnArity struct {
	Base
	LoopID     string
	Params     []*Binding
	FixedArity int
	Body       *Do
	Tag        Node
	IsVariadic bool
}

func (*FnArity) Kind() Kind                  { return KindFnArity }
func (n *FnArity) Children() []*lang.Keyword { return tagsOf(n.slots()) }

func (n *FnArity) slots() []slot {
	return []slot{
		plural(KwParams, refs(n.Params)),
		single(KwBody, ref(n.Body)),
		optional(KwTag, n.Tag),
	}
}

func (n *FnArity) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Params = many(c, KwParams, m.Params)
	m.Body = one(c, KwBody, m.Body)
	m.Tag = one(c, KwTag, m.Tag)
	return &m
}

func (n *FnArity) check() error {
	if n.LoopID == "" {
		return missingField(KindFnArity, "loop_id")
	}
	return nil
}

func (n *FnArity) attrs() Object {
	return Object{
		"loop_id":     String(n.LoopID),
		"fixed_arity": Int(n.FixedArity),
		"is_variadic": Bool(n.IsVariadic),
	}
}

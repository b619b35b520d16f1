package ir

import "github.com/roach88/lispir/internal/lang"

// DefTypeMember is a member of a deftype or reify body: a method, a class
// method, a static method or a property.
type DefTypeMember interface {
	Node

	// MemberName is the member's source name.
	MemberName() string

	defTypeMember()
}

var (
	_ DefTypeMember = (*DefTypeMethod)(nil)
	_ DefTypeMember = (*DefTypeClassMethod)(nil)
	_ DefTypeMember = (*DefTypeStaticMethod)(nil)
	_ DefTypeMember = (*DefTypeProperty)(nil)
)

// DefType defines a new host type with fields and members.
type DefType struct {
	Base
	Name                 string
	Interfaces           []TypeBase
	Fields               []*Binding
	Members              []DefTypeMember
	VerifiedAbstract     bool
	ArtificiallyAbstract []string
	IsFrozen             bool
	UseSlots             bool
	UseWeakrefSlot       bool
	Meta                 Meta
}

func (*DefType) Kind() Kind                  { return KindDefType }
func (n *DefType) Children() []*lang.Keyword { return tagsOf(n.slots()) }

func (n *DefType) slots() []slot {
	return []slot{
		plural(KwInterfaces, ifaces(n.Interfaces)),
		plural(KwFields, refs(n.Fields)),
		plural(KwMembers, ifaces(n.Members)),
		optional(KwMeta, n.Meta),
	}
}

func (n *DefType) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Interfaces = many(c, KwInterfaces, m.Interfaces)
	m.Fields = many(c, KwFields, m.Fields)
	m.Members = many(c, KwMembers, m.Members)
	m.Meta = one(c, KwMeta, m.Meta)
	return &m
}

func (n *DefType) check() error {
	if n.Name == "" {
		return missingField(KindDefType, "name")
	}
	return nil
}

func (n *DefType) attrs() Object {
	return Object{
		"name":                  String(n.Name),
		"verified_abstract":     Bool(n.VerifiedAbstract),
		"artificially_abstract": Strings(n.ArtificiallyAbstract...),
		"is_frozen":             Bool(n.IsFrozen),
		"use_slots":             Bool(n.UseSlots),
		"use_weakref_slot":      Bool(n.UseWeakrefSlot),
	}
}

// DefTypeMethod is an instance method with one or more arities.
type DefTypeMethod struct {
	Base
	Name          string
	MaxFixedArity int
	Arities       []*DefTypeMethodArity
	IsVariadic    bool
}

func (*DefTypeMethod) Kind() Kind                  { return KindDefTypeMethod }
func (n *DefTypeMethod) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *DefTypeMethod) MemberName() string        { return n.Name }
func (*DefTypeMethod) defTypeMember()              {}

func (n *DefTypeMethod) slots() []slot {
	return []slot{plural(KwArities, refs(n.Arities))}
}

func (n *DefTypeMethod) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Arities = many(c, KwArities, m.Arities)
	return &m
}

func (n *DefTypeMethod) check() error {
	if n.Name == "" {
		return missingField(KindDefTypeMethod, "name")
	}
	return nil
}

func (n *DefTypeMethod) attrs() Object {
	return Object{
		"name":            String(n.Name),
		"max_fixed_arity": Int(n.MaxFixedArity),
		"is_variadic":     Bool(n.IsVariadic),
	}
}

// DefTypeMethodArity is one arity of a DefTypeMethod.
type DefTypeMethodArity struct {
	Base
	Name         string
	ThisLocal    *Binding
	Params       []*Binding
	FixedArity   int
	Body         *Do
	LoopID       string
	IsVariadic   bool
	KwargSupport KeywordArgSupport
}

func (*DefTypeMethodArity) Kind() Kind                  { return KindDefTypeMethodArity }
func (n *DefTypeMethodArity) Children() []*lang.Keyword { return tagsOf(n.slots()) }

func (n *DefTypeMethodArity) slots() []slot {
	return []slot{
		single(KwThisLocal, ref(n.ThisLocal)),
		plural(KwParams, refs(n.Params)),
		single(KwBody, ref(n.Body)),
	}
}

func (n *DefTypeMethodArity) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.ThisLocal = one(c, KwThisLocal, m.ThisLocal)
	m.Params = many(c, KwParams, m.Params)
	m.Body = one(c, KwBody, m.Body)
	return &m
}

func (n *DefTypeMethodArity) check() error {
	if n.Name == "" {
		return missingField(KindDefTypeMethodArity, "name")
	}
	return nil
}

func (n *DefTypeMethodArity) attrs() Object {
	return Object{
		"name":          String(n.Name),
		"fixed_arity":   Int(n.FixedArity),
		"loop_id":       String(n.LoopID),
		"is_variadic":   Bool(n.IsVariadic),
		"kwarg_support": optString(n.KwargSupport.String()),
	}
}

// DefTypeClassMethod is a method bound to the type rather than an instance.
type DefTypeClassMethod struct {
	Base
	Name         string
	ClassLocal   *Binding
	Params       []*Binding
	FixedArity   int
	Body         *Do
	IsVariadic   bool
	KwargSupport KeywordArgSupport
}

func (*DefTypeClassMethod) Kind() Kind                  { return KindDefTypeClassMethod }
func (n *DefTypeClassMethod) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *DefTypeClassMethod) MemberName() string        { return n.Name }
func (*DefTypeClassMethod) defTypeMember()              {}

func (n *DefTypeClassMethod) slots() []slot {
	return []slot{
		single(KwClassLocal, ref(n.ClassLocal)),
		plural(KwParams, refs(n.Params)),
		single(KwBody, ref(n.Body)),
	}
}

func (n *DefTypeClassMethod) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.ClassLocal = one(c, KwClassLocal, m.ClassLocal)
	m.Params = many(c, KwParams, m.Params)
	m.Body = one(c, KwBody, m.Body)
	return &m
}

func (n *DefTypeClassMethod) check() error {
	if n.Name == "" {
		return missingField(KindDefTypeClassMethod, "name")
	}
	return nil
}

func (n *DefTypeClassMethod) attrs() Object {
	return Object{
		"name":          String(n.Name),
		"fixed_arity":   Int(n.FixedArity),
		"is_variadic":   Bool(n.IsVariadic),
		"kwarg_support": optString(n.KwargSupport.String()),
	}
}

// DefTypeStaticMethod is a method with neither an instance nor a class
// parameter.
type DefTypeStaticMethod struct {
	Base
	Name         string
	Params       []*Binding
	FixedArity   int
	Body         *Do
	IsVariadic   bool
	KwargSupport KeywordArgSupport
}

func (*DefTypeStaticMethod) Kind() Kind                  { return KindDefTypeStaticMethod }
func (n *DefTypeStaticMethod) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *DefTypeStaticMethod) MemberName() string        { return n.Name }
func (*DefTypeStaticMethod) defTypeMember()              {}

func (n *DefTypeStaticMethod) slots() []slot {
	return []slot{
		plural(KwParams, refs(n.Params)),
		single(KwBody, ref(n.Body)),
	}
}

func (n *DefTypeStaticMethod) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Params = many(c, KwParams, m.Params)
	m.Body = one(c, KwBody, m.Body)
	return &m
}

func (n *DefTypeStaticMethod) check() error {
	if n.Name == "" {
		return missingField(KindDefTypeStaticMethod, "name")
	}
	return nil
}

func (n *DefTypeStaticMethod) attrs() Object {
	return Object{
		"name":          String(n.Name),
		"fixed_arity":   Int(n.FixedArity),
		"is_variadic":   Bool(n.IsVariadic),
		"kwarg_support": optString(n.KwargSupport.String()),
	}
}

// DefTypeProperty is a computed, read-only attribute.
type DefTypeProperty struct {
	Base
	Name      string
	ThisLocal *Binding
	Params    []*Binding
	Body      *Do
}

func (*DefTypeProperty) Kind() Kind                  { return KindDefTypeProperty }
func (n *DefTypeProperty) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *DefTypeProperty) MemberName() string        { return n.Name }
func (*DefTypeProperty) defTypeMember()              {}

func (n *DefTypeProperty) slots() []slot {
	return []slot{
		single(KwThisLocal, ref(n.ThisLocal)),
		plural(KwParams, refs(n.Params)),
		single(KwBody, ref(n.Body)),
	}
}

func (n *DefTypeProperty) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.ThisLocal = one(c, KwThisLocal, m.ThisLocal)
	m.Params = many(c, KwParams, m.Params)
	m.Body = one(c, KwBody, m.Body)
	return &m
}

func (n *DefTypeProperty) check() error {
	if n.Name == "" {
		return missingField(KindDefTypeProperty, "name")
	}
	return nil
}

func (n *DefTypeProperty) attrs() Object {
	return Object{"name": String(n.Name)}
}

// Reify creates an anonymous instance implementing Interfaces.
type Reify struct {
	Base
	Interfaces           []TypeBase
	Members              []DefTypeMember
	VerifiedAbstract     bool
	ArtificiallyAbstract []string
	IsFrozen             bool
	UseWeakrefSlot       bool
	Meta                 Meta
}

func (*Reify) Kind() Kind                  { return KindReify }
func (n *Reify) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Reify) check() error              { return nil }
func (*Reify) metaTarget()                 {}

func (n *Reify) slots() []slot {
	return []slot{
		plural(KwInterfaces, ifaces(n.Interfaces)),
		plural(KwMembers, ifaces(n.Members)),
		optional(KwMeta, n.Meta),
	}
}

func (n *Reify) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Interfaces = many(c, KwInterfaces, m.Interfaces)
	m.Members = many(c, KwMembers, m.Members)
	m.Meta = one(c, KwMeta, m.Meta)
	return &m
}

func (n *Reify) attrs() Object {
	return Object{
		"verified_abstract":     Bool(n.VerifiedAbstract),
		"artificially_abstract": Strings(n.ArtificiallyAbstract...),
		"is_frozen":             Bool(n.IsFrozen),
		"use_weakref_slot":      Bool(n.UseWeakrefSlot),
	}
}

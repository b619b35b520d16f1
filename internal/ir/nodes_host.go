package ir

import "github.com/roach88/lispir/internal/lang"

// HostCall calls Method on Target.
type HostCall struct {
	Base
	Method string
	Target Node
	Args   []Node
	Kwargs []KeywordArg
}

func (*HostCall) Kind() Kind                  { return KindHostCall }
func (n *HostCall) Children() []*lang.Keyword { return tagsOf(n.slots()) }

func (n *HostCall) slots() []slot {
	return []slot{
		single(KwTarget, n.Target),
		plural(KwArgs, n.Args),
		plural(KwKwargs, kwargNodes(n.Kwargs)),
	}
}

func (n *HostCall) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Target = one(c, KwTarget, m.Target)
	m.Args = many(c, KwArgs, m.Args)
	m.Kwargs = replaceKwargs(c, m.Kwargs)
	return &m
}

func (n *HostCall) check() error {
	if n.Method == "" {
		return missingField(KindHostCall, "method")
	}
	return nil
}

func (n *HostCall) attrs() Object {
	return Object{
		"method":      String(n.Method),
		"kwarg_names": kwargNames(n.Kwargs),
	}
}

// HostField reads Field of Target.
type HostField struct {
	Base
	Field        string
	Target       Node
	IsAssignable bool
}

func (*HostField) Kind() Kind                  { return KindHostField }
func (n *HostField) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *HostField) Assignable() bool          { return n.IsAssignable }
func (n *HostField) slots() []slot             { return []slot{single(KwTarget, n.Target)} }

func (n *HostField) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Target = one(c, KwTarget, m.Target)
	return &m
}

func (n *HostField) check() error {
	if n.Field == "" {
		return missingField(KindHostField, "field")
	}
	return nil
}

func (n *HostField) attrs() Object {
	return Object{
		"field":         String(n.Field),
		"is_assignable": Bool(n.IsAssignable),
	}
}

// Import imports host modules.
type Import struct {
	Base
	Aliases  []*ImportAlias
	Refers   []string
	ReferAll bool
}

func (*Import) Kind() Kind                  { return KindImport }
func (n *Import) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Import) check() error              { return nil }
func (n *Import) slots() []slot             { return []slot{plural(KwAliases, refs(n.Aliases))} }

func (n *Import) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Aliases = many(c, KwAliases, m.Aliases)
	return &m
}

func (n *Import) attrs() Object {
	return Object{
		"refers":    Strings(n.Refers...),
		"refer_all": Bool(n.ReferAll),
	}
}

// ImportAlias is one module named by an Import. Alias is empty when the
// module is imported under its own name.
type ImportAlias struct {
	Base
	Name  string
	Alias string
}

func (*ImportAlias) Kind() Kind                  { return KindImportAlias }
func (n *ImportAlias) Children() []*lang.Keyword { return nil }
func (n *ImportAlias) slots() []slot             { return nil }

func (n *ImportAlias) rebuild(b Base, _ slotValues) Node {
	m := *n
	m.Base = b
	return &m
}

func (n *ImportAlias) check() error {
	if n.Name == "" {
		return missingField(KindImportAlias, "name")
	}
	return nil
}

func (n *ImportAlias) attrs() Object {
	return Object{"name": String(n.Name), "alias": optString(n.Alias)}
}

// MaybeClass is a bare symbol that may resolve to a host class.
type MaybeClass struct {
	Base
	Class string
}

func (*MaybeClass) Kind() Kind                  { return KindMaybeClass }
func (n *MaybeClass) Children() []*lang.Keyword { return nil }
func (n *MaybeClass) slots() []slot             { return nil }
func (n *MaybeClass) attrs() Object             { return Object{"class": String(n.Class)} }
func (*MaybeClass) typeBase()                   {}
func (*MaybeClass) classRef()                   {}

func (n *MaybeClass) rebuild(b Base, _ slotValues) Node {
	m := *n
	m.Base = b
	return &m
}

func (n *MaybeClass) check() error {
	if n.Class == "" {
		return missingField(KindMaybeClass, "class")
	}
	return nil
}

// MaybeHostForm is a namespaced symbol Class/Field that may resolve to a
// host attribute.
type MaybeHostForm struct {
	Base
	Class string
	Field string
}

func (*MaybeHostForm) Kind() Kind                  { return KindMaybeHostForm }
func (n *MaybeHostForm) Children() []*lang.Keyword { return nil }
func (n *MaybeHostForm) slots() []slot             { return nil }
func (*MaybeHostForm) typeBase()                   {}
func (*MaybeHostForm) classRef()                   {}

func (n *MaybeHostForm) rebuild(b Base, _ slotValues) Node {
	m := *n
	m.Base = b
	return &m
}

func (n *MaybeHostForm) check() error {
	if n.Class == "" {
		return missingField(KindMaybeHostForm, "class")
	}
	if n.Field == "" {
		return missingField(KindMaybeHostForm, "field")
	}
	return nil
}

func (n *MaybeHostForm) attrs() Object {
	return Object{"class": String(n.Class), "field": String(n.Field)}
}

// Require loads namespaces.
type Require struct {
	Base
	Aliases []*RequireAlias
}

func (*Require) Kind() Kind                  { return KindRequire }
func (n *Require) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Require) check() error              { return nil }
func (n *Require) attrs() Object             { return Object{} }
func (n *Require) slots() []slot             { return []slot{plural(KwAliases, refs(n.Aliases))} }

func (n *Require) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Aliases = many(c, KwAliases, m.Aliases)
	return &m
}

// RequireAlias is one namespace named by a Require.
type RequireAlias struct {
	Base
	Name  string
	Alias string
}

func (*RequireAlias) Kind() Kind                  { return KindRequireAlias }
func (n *RequireAlias) Children() []*lang.Keyword { return nil }
func (n *RequireAlias) slots() []slot             { return nil }

func (n *RequireAlias) rebuild(b Base, _ slotValues) Node {
	m := *n
	m.Base = b
	return &m
}

func (n *RequireAlias) check() error {
	if n.Name == "" {
		return missingField(KindRequireAlias, "name")
	}
	return nil
}

func (n *RequireAlias) attrs() Object {
	return Object{"name": String(n.Name), "alias": optString(n.Alias)}
}

package ir

import "github.com/roach88/lispir/internal/lang"

// Await suspends the enclosing async function until Expr completes.
type Await struct {
	Base
	Expr Node
}

func (*Await) Kind() Kind                    { return KindAwait }
func (n *Await) Children() []*lang.Keyword   { return tagsOf(n.slots()) }
func (n *Await) slots() []slot               { return []slot{single(KwExpr, n.Expr)} }
func (n *Await) check() error                { return nil }
func (n *Await) attrs() Object               { return Object{} }
func (n *Await) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Expr = one(c, KwExpr, m.Expr)
	return &m
}

// Binding introduces a name: a parameter, a let/loop/letfn local, a catch
// variable, a deftype field, an import alias, or a synthesized self/this.
//
// Later Local nodes refer to a Binding by name. That link is a lookup in
// the analyzer's scope, never a shared pointer.
type Binding struct {
	Base
	Name         string
	Local        LocalType
	ArgID        *int
	IsVariadic   bool
	IsAssignable bool
	Init         Node
	Tag          Node
	Meta         Meta
}

func (*Binding) Kind() Kind                  { return KindBinding }
func (n *Binding) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Binding) Assignable() bool          { return n.IsAssignable }

func (n *Binding) slots() []slot {
	return []slot{
		optional(KwInit, n.Init),
		optional(KwTag, n.Tag),
		optional(KwMeta, n.Meta),
	}
}

func (n *Binding) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Init = one(c, KwInit, m.Init)
	m.Tag = one(c, KwTag, m.Tag)
	m.Meta = one(c, KwMeta, m.Meta)
	return &m
}

func (n *Binding) check() error {
	if n.Name == "" {
		return missingField(KindBinding, "name")
	}
	if n.Local == 0 {
		return missingField(KindBinding, "local")
	}
	return nil
}

func (n *Binding) attrs() Object {
	return Object{
		"name":          String(n.Name),
		"local":         String(n.Local.String()),
		"arg_id":        optInt(n.ArgID),
		"is_variadic":   Bool(n.IsVariadic),
		"is_assignable": Bool(n.IsAssignable),
	}
}

// Catch is one catch clause of a Try.
type Catch struct {
	Base
	Class ClassRef
	Local *Binding
	Body  *Do
}

func (*Catch) Kind() Kind                  { return KindCatch }
func (n *Catch) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Catch) check() error              { return nil }
func (n *Catch) attrs() Object             { return Object{} }

func (n *Catch) slots() []slot {
	return []slot{
		single(KwClass, n.Class),
		single(KwLocal, ref(n.Local)),
		single(KwBody, ref(n.Body)),
	}
}

func (n *Catch) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Class = one(c, KwClass, m.Class)
	m.Local = one(c, KwLocal, m.Local)
	m.Body = one(c, KwBody, m.Body)
	return &m
}

// Const is a literal value, or a quoted form realized as a value.
//
// Val holds the realized value; its Go type follows Type:
//
//	nil       nil
//	bool      bool
//	number    int64 or float64
//	decimal   *apd.Decimal
//	fraction  *big.Rat
//	string    string
//	char      lang.Char
//	keyword   *lang.Keyword
//	symbol    *lang.Symbol
//	inst      time.Time
//	uuid      uuid.UUID
//	regex     *regexp.Regexp
//	bytes     []byte
//
// Collections and host values are kept as their lang.Form.
type Const struct {
	Base
	Type      ConstType
	Val       any
	IsLiteral bool
	Meta      Meta
}

func (*Const) Kind() Kind                  { return KindConst }
func (n *Const) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Const) slots() []slot             { return []slot{optional(KwMeta, n.Meta)} }
func (n *Const) check() error              { return nil }
func (*Const) meta()                       {}

func (n *Const) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Meta = one(c, KwMeta, m.Meta)
	return &m
}

func (n *Const) attrs() Object {
	return Object{
		"type":       String(n.Type.String()),
		"val":        constValue(n.Val),
		"is_literal": Bool(n.IsLiteral),
	}
}

// NilConst returns a nil literal, the value producers synthesize for an
// absent else branch or an empty body.
func NilConst(form lang.Form, env NodeEnv) *Const {
	return &Const{Base: NewBase(form, env), Type: ConstNil, IsLiteral: true}
}

// IsNilConst reports whether n is a nil constant.
func IsNilConst(n Node) bool {
	c, ok := n.(*Const)
	return ok && c.Type == ConstNil
}

// Def interns a global var and optionally binds it.
type Def struct {
	Base
	Name *lang.Symbol
	Var  *lang.Var
	Init Node
	Doc  string
	Tag  Node
	Meta Meta
}

func (*Def) Kind() Kind                  { return KindDef }
func (n *Def) Children() []*lang.Keyword { return tagsOf(n.slots()) }

func (n *Def) slots() []slot {
	return []slot{
		optional(KwInit, n.Init),
		optional(KwTag, n.Tag),
		optional(KwMeta, n.Meta),
	}
}

func (n *Def) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Init = one(c, KwInit, m.Init)
	m.Tag = one(c, KwTag, m.Tag)
	m.Meta = one(c, KwMeta, m.Meta)
	return &m
}

func (n *Def) check() error {
	if n.Name == nil {
		return missingField(KindDef, "name")
	}
	if n.Var == nil {
		return missingField(KindDef, "var")
	}
	return nil
}

func (n *Def) attrs() Object {
	return Object{
		"name": String(n.Name.String()),
		"var":  String(n.Var.String()),
		"doc":  optString(n.Doc),
	}
}

// Do evaluates Statements for effect and Ret for its value.
//
// Ret is always present. An empty body has a synthesized nil constant as
// Ret; see EmptyBody.
type Do struct {
	Base
	Statements        []Node
	Ret               Node
	IsBody            bool
	UseVarIndirection bool
}

func (*Do) Kind() Kind                  { return KindDo }
func (n *Do) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Do) check() error              { return nil }

func (n *Do) slots() []slot {
	return []slot{
		plural(KwStatements, n.Statements),
		single(KwRet, n.Ret),
	}
}

func (n *Do) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Statements = many(c, KwStatements, m.Statements)
	m.Ret = one(c, KwRet, m.Ret)
	return &m
}

func (n *Do) attrs() Object {
	return Object{
		"is_body":             Bool(n.IsBody),
		"use_var_indirection": Bool(n.UseVarIndirection),
	}
}

// EmptyBody returns a body with no statements and a nil result.
func EmptyBody(form lang.Form, env NodeEnv) *Do {
	return &Do{
		Base:   NewBase(form, env),
		Ret:    NilConst(form, env),
		IsBody: true,
	}
}

// IsEmpty reports whether evaluating the body has no effect and yields nil.
func (n *Do) IsEmpty() bool {
	return len(n.Statements) == 0 && IsNilConst(n.Ret)
}

// If is a conditional. It always has three children; producers synthesize
// a nil constant for a missing else branch.
type If struct {
	Base
	Test Node
	Then Node
	Else Node
}

func (*If) Kind() Kind                  { return KindIf }
func (n *If) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *If) check() error              { return nil }
func (n *If) attrs() Object             { return Object{} }

func (n *If) slots() []slot {
	return []slot{
		single(KwTest, n.Test),
		single(KwThen, n.Then),
		single(KwElse, n.Else),
	}
}

func (n *If) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Test = one(c, KwTest, m.Test)
	m.Then = one(c, KwThen, m.Then)
	m.Else = one(c, KwElse, m.Else)
	return &m
}

// KeywordArg is one host keyword argument of an Invoke or HostCall.
type KeywordArg struct {
	Name string
	Val  Node
}

func kwargNodes(args []KeywordArg) []Node {
	out := make([]Node, len(args))
	for i, a := range args {
		out[i] = a.Val
	}
	return out
}

func kwargNames(args []KeywordArg) Array {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.Name
	}
	return Strings(names...)
}

func replaceKwargs(c slotValues, cur []KeywordArg) []KeywordArg {
	s, ok := c[KwKwargs]
	if !ok {
		return cur
	}
	out := make([]KeywordArg, len(cur))
	for i, a := range cur {
		out[i] = KeywordArg{Name: a.Name, Val: s.nodes[i]}
	}
	return out
}

// Invoke calls Fn with positional Args and host keyword arguments.
type Invoke struct {
	Base
	Fn     Node
	Args   []Node
	Kwargs []KeywordArg
}

func (*Invoke) Kind() Kind                  { return KindInvoke }
func (n *Invoke) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Invoke) check() error              { return nil }

func (n *Invoke) slots() []slot {
	return []slot{
		single(KwFn, n.Fn),
		plural(KwArgs, n.Args),
		plural(KwKwargs, kwargNodes(n.Kwargs)),
	}
}

func (n *Invoke) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Fn = one(c, KwFn, m.Fn)
	m.Args = many(c, KwArgs, m.Args)
	m.Kwargs = replaceKwargs(c, m.Kwargs)
	return &m
}

func (n *Invoke) attrs() Object {
	return Object{"kwarg_names": kwargNames(n.Kwargs)}
}

// Let binds locals sequentially and evaluates Body in their scope.
type Let struct {
	Base
	Bindings []*Binding
	Body     *Do
}

func (*Let) Kind() Kind                  { return KindLet }
func (n *Let) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Let) check() error              { return nil }
func (n *Let) attrs() Object             { return Object{} }

func (n *Let) slots() []slot {
	return []slot{
		plural(KwBindings, refs(n.Bindings)),
		single(KwBody, ref(n.Body)),
	}
}

func (n *Let) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Bindings = many(c, KwBindings, m.Bindings)
	m.Body = one(c, KwBody, m.Body)
	return &m
}

// LetFn binds mutually recursive local functions.
type LetFn struct {
	Base
	Bindings []*Binding
	Body     *Do
}

func (*LetFn) Kind() Kind                  { return KindLetFn }
func (n *LetFn) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *LetFn) check() error              { return nil }
func (n *LetFn) attrs() Object             { return Object{} }

func (n *LetFn) slots() []slot {
	return []slot{
		plural(KwBindings, refs(n.Bindings)),
		single(KwBody, ref(n.Body)),
	}
}

func (n *LetFn) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Bindings = many(c, KwBindings, m.Bindings)
	m.Body = one(c, KwBody, m.Body)
	return &m
}

// Local is a reference to a name introduced by a Binding.
type Local struct {
	Base
	Name         string
	Local        LocalType
	IsAssignable bool
	ArgID        *int
	IsVariadic   bool
}

func (*Local) Kind() Kind                  { return KindLocal }
func (n *Local) Children() []*lang.Keyword { return nil }
func (n *Local) Assignable() bool          { return n.IsAssignable }
func (n *Local) slots() []slot             { return nil }

func (n *Local) rebuild(b Base, _ slotValues) Node {
	m := *n
	m.Base = b
	return &m
}

func (n *Local) check() error {
	if n.Name == "" {
		return missingField(KindLocal, "name")
	}
	if n.Local == 0 {
		return missingField(KindLocal, "local")
	}
	return nil
}

func (n *Local) attrs() Object {
	return Object{
		"name":          String(n.Name),
		"local":         String(n.Local.String()),
		"is_assignable": Bool(n.IsAssignable),
		"arg_id":        optInt(n.ArgID),
		"is_variadic":   Bool(n.IsVariadic),
	}
}

// Loop binds locals and marks a recur target identified by LoopID.
type Loop struct {
	Base
	Bindings []*Binding
	Body     *Do
	LoopID   string
}

func (*Loop) Kind() Kind                  { return KindLoop }
func (n *Loop) Children() []*lang.Keyword { return tagsOf(n.slots()) }

func (n *Loop) slots() []slot {
	return []slot{
		plural(KwBindings, refs(n.Bindings)),
		single(KwBody, ref(n.Body)),
	}
}

func (n *Loop) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Bindings = many(c, KwBindings, m.Bindings)
	m.Body = one(c, KwBody, m.Body)
	return &m
}

func (n *Loop) check() error {
	if n.LoopID == "" {
		return missingField(KindLoop, "loop_id")
	}
	return nil
}

func (n *Loop) attrs() Object {
	return Object{"loop_id": String(n.LoopID)}
}

// Quote is a quoted form; Expr holds its realized value.
type Quote struct {
	Base
	Expr      *Const
	IsLiteral bool
}

func (*Quote) Kind() Kind                  { return KindQuote }
func (n *Quote) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Quote) slots() []slot             { return []slot{single(KwExpr, ref(n.Expr))} }
func (n *Quote) check() error              { return nil }
func (n *Quote) attrs() Object             { return Object{"is_literal": Bool(n.IsLiteral)} }

func (n *Quote) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Expr = one(c, KwExpr, m.Expr)
	return &m
}

// Recur jumps back to the loop or arity identified by LoopID.
type Recur struct {
	Base
	Exprs  []Node
	LoopID string
}

func (*Recur) Kind() Kind                  { return KindRecur }
func (n *Recur) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Recur) slots() []slot             { return []slot{plural(KwExprs, n.Exprs)} }
func (n *Recur) attrs() Object             { return Object{"loop_id": String(n.LoopID)} }

func (n *Recur) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Exprs = many(c, KwExprs, m.Exprs)
	return &m
}

func (n *Recur) check() error {
	if n.LoopID == "" {
		return missingField(KindRecur, "loop_id")
	}
	return nil
}

// SetBang assigns Val to Target. Target should be Assignable with
// IsAssignable set; Validate reports targets that are not.
type SetBang struct {
	Base
	Target Node
	Val    Node
}

func (*SetBang) Kind() Kind                  { return KindSetBang }
func (n *SetBang) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *SetBang) check() error              { return nil }
func (n *SetBang) attrs() Object             { return Object{} }

func (n *SetBang) slots() []slot {
	return []slot{
		single(KwTarget, n.Target),
		single(KwVal, n.Val),
	}
}

func (n *SetBang) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Target = one(c, KwTarget, m.Target)
	m.Val = one(c, KwVal, m.Val)
	return &m
}

// Throw raises Exception, optionally chained from Cause.
type Throw struct {
	Base
	Exception Node
	Cause     Node
}

func (*Throw) Kind() Kind                  { return KindThrow }
func (n *Throw) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Throw) check() error              { return nil }
func (n *Throw) attrs() Object             { return Object{} }

func (n *Throw) slots() []slot {
	return []slot{
		single(KwException, n.Exception),
		optional(KwCause, n.Cause),
	}
}

func (n *Throw) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Exception = one(c, KwException, m.Exception)
	m.Cause = one(c, KwCause, m.Cause)
	return &m
}

// Try evaluates Body, dispatching exceptions to Catches and always running
// Finally.
//
// Finally is always present. A try without a finally clause carries an
// empty body (see EmptyBody and HasFinally), so the child slots of every
// Try are the same.
type Try struct {
	Base
	Body    *Do
	Catches []*Catch
	Finally *Do
}

func (*Try) Kind() Kind                  { return KindTry }
func (n *Try) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Try) check() error              { return nil }
func (n *Try) attrs() Object             { return Object{} }

func (n *Try) slots() []slot {
	return []slot{
		single(KwBody, ref(n.Body)),
		plural(KwCatches, refs(n.Catches)),
		single(KwFinally, ref(n.Finally)),
	}
}

func (n *Try) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Body = one(c, KwBody, m.Body)
	m.Catches = many(c, KwCatches, m.Catches)
	m.Finally = one(c, KwFinally, m.Finally)
	return &m
}

// HasFinally reports whether the finally clause does anything.
func (n *Try) HasFinally() bool {
	return n.Finally != nil && !n.Finally.IsEmpty()
}

// VarRef is a reference to a global var.
type VarRef struct {
	Base
	Var                   *lang.Var
	ReturnVar             bool
	IsAssignable          bool
	IsAllowVarIndirection bool
}

func (*VarRef) Kind() Kind                  { return KindVar }
func (n *VarRef) Children() []*lang.Keyword { return nil }
func (n *VarRef) Assignable() bool          { return n.IsAssignable }
func (n *VarRef) slots() []slot             { return nil }
func (*VarRef) typeBase()                   {}

func (n *VarRef) rebuild(b Base, _ slotValues) Node {
	m := *n
	m.Base = b
	return &m
}

func (n *VarRef) check() error {
	if n.Var == nil {
		return missingField(KindVar, "var")
	}
	return nil
}

func (n *VarRef) attrs() Object {
	return Object{
		"var":                      String(n.Var.String()),
		"return_var":               Bool(n.ReturnVar),
		"is_assignable":            Bool(n.IsAssignable),
		"is_allow_var_indirection": Bool(n.IsAllowVarIndirection),
	}
}

// Yield yields Expr from the enclosing generator, or yields nil when Expr
// is absent.
type Yield struct {
	Base
	Expr Node
}

func (*Yield) Kind() Kind                  { return KindYield }
func (n *Yield) Children() []*lang.Keyword { return tagsOf(n.slots()) }
func (n *Yield) slots() []slot             { return []slot{optional(KwExpr, n.Expr)} }
func (n *Yield) check() error              { return nil }
func (n *Yield) attrs() Object             { return Object{} }

func (n *Yield) rebuild(b Base, c slotValues) Node {
	m := *n
	m.Base = b
	m.Expr = one(c, KwExpr, m.Expr)
	return &m
}

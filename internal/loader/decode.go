package loader

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/lang"
)

// Decode builds a tree from its plain mapping, the shape produced by
// ir.ToPlain(ir.ToMap(n)). Every node is constructed through ir.New, so a
// mapping that describes a malformed tree is rejected.
//
// Forms are kept as lang.Text. Nodes in the same namespace share one
// *lang.Namespace.
func Decode(v any) (ir.Node, error) {
	d := &decoder{namespaces: make(map[string]*lang.Namespace)}
	n := d.node(v, "$")
	if d.err != nil {
		return nil, d.err
	}
	return n, nil
}

type decoder struct {
	namespaces map[string]*lang.Namespace
	err        error
}

func (d *decoder) fail(path, format string, args ...any) {
	if d.err == nil {
		d.err = &DecodeError{Path: path, Message: fmt.Sprintf(format, args...)}
	}
}

func (d *decoder) namespace(name string) *lang.Namespace {
	if ns, ok := d.namespaces[name]; ok {
		return ns
	}
	ns := lang.NewNamespace(name)
	d.namespaces[name] = ns
	return ns
}

// object reads the fields of one mapping. Errors are recorded on the
// decoder; after the first one every accessor returns zero values.
type object struct {
	d    *decoder
	path string
	m    map[string]any
}

func (o *object) at(key string) string {
	return o.path + "." + key
}

func (o *object) str(key string) string {
	switch v := o.m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		o.d.fail(o.at(key), "expected string, got %T", v)
		return ""
	}
}

func (o *object) boolean(key string) bool {
	switch v := o.m[key].(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		o.d.fail(o.at(key), "expected bool, got %T", v)
		return false
	}
}

func (o *object) integer(key string) int {
	if o.m[key] == nil {
		return 0
	}
	i, err := toInt64(o.m[key])
	if err != nil {
		o.d.fail(o.at(key), "%v", err)
	}
	return int(i)
}

func (o *object) optInt(key string) *int {
	if o.m[key] == nil {
		return nil
	}
	i := o.integer(key)
	return &i
}

func (o *object) strs(key string) []string {
	raw, ok := o.m[key].([]any)
	if !ok {
		if o.m[key] != nil {
			o.d.fail(o.at(key), "expected list of strings, got %T", o.m[key])
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			o.d.fail(fmt.Sprintf("%s[%d]", o.at(key), i), "expected string, got %T", item)
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (o *object) node(key string) ir.Node {
	if o.m[key] == nil {
		return nil
	}
	return o.d.node(o.m[key], o.at(key))
}

func (o *object) nodes(key string) []ir.Node {
	if o.m[key] == nil {
		return nil
	}
	raw, ok := o.m[key].([]any)
	if !ok {
		o.d.fail(o.at(key), "expected list of nodes, got %T", o.m[key])
		return nil
	}
	out := make([]ir.Node, len(raw))
	for i, item := range raw {
		out[i] = o.d.node(item, fmt.Sprintf("%s[%d]", o.at(key), i))
	}
	return out
}

// nodeAs decodes the node under key and checks that it has type T.
func nodeAs[T ir.Node](o *object, key string) T {
	var zero T
	n := o.node(key)
	if n == nil {
		return zero
	}
	t, ok := n.(T)
	if !ok {
		o.d.fail(o.at(key), "%s node is not allowed here", n.Kind())
		return zero
	}
	return t
}

func nodesAs[T ir.Node](o *object, key string) []T {
	ns := o.nodes(key)
	if ns == nil {
		return nil
	}
	out := make([]T, len(ns))
	for i, n := range ns {
		if n == nil {
			continue
		}
		t, ok := n.(T)
		if !ok {
			o.d.fail(fmt.Sprintf("%s[%d]", o.at(key), i), "%s node is not allowed here", n.Kind())
			return nil
		}
		out[i] = t
	}
	return out
}

func (o *object) kwargs() []ir.KeywordArg {
	names := o.strs("kwarg_names")
	vals := o.nodes("kwargs")
	if len(names) != len(vals) {
		o.d.fail(o.at("kwargs"), "%d kwarg names but %d values", len(names), len(vals))
		return nil
	}
	if len(vals) == 0 {
		return nil
	}
	out := make([]ir.KeywordArg, len(vals))
	for i := range vals {
		out[i] = ir.KeywordArg{Name: names[i], Val: vals[i]}
	}
	return out
}

func (o *object) localType(key string) ir.LocalType {
	s := o.str(key)
	lt, ok := ir.ParseLocalType(s)
	if !ok {
		o.d.fail(o.at(key), "unknown local type %q", s)
	}
	return lt
}

func (o *object) kwargSupport() ir.KeywordArgSupport {
	s := o.str("kwarg_support")
	k, ok := ir.ParseKeywordArgSupport(s)
	if !ok {
		o.d.fail(o.at("kwarg_support"), "unknown keyword argument support %q", s)
	}
	return k
}

func (o *object) variable(key string) *lang.Var {
	s := o.str(key)
	if s == "" {
		return nil
	}
	ns, name, ok := strings.Cut(strings.TrimPrefix(s, "#'"), "/")
	if !ok || name == "" {
		o.d.fail(o.at(key), "malformed var %q", s)
		return nil
	}
	return &lang.Var{NS: o.d.namespace(ns), Name: lang.Sym(name)}
}

func (o *object) symbol(key string) *lang.Symbol {
	s := o.str(key)
	if s == "" {
		return nil
	}
	return lang.ParseSymbol(s)
}

func (o *object) meta() ir.Meta {
	return nodeAs[ir.Meta](o, "meta")
}

func (d *decoder) env(v any, path string) ir.NodeEnv {
	m, ok := v.(map[string]any)
	if !ok {
		d.fail(path, "expected env mapping, got %T", v)
		return ir.NodeEnv{}
	}
	o := &object{d: d, path: path, m: m}
	env := ir.NewEnv(nil, o.str("file"))
	if ns := o.str("ns"); ns != "" {
		env.NS = d.namespace(ns)
	}
	coord := func(key string) int {
		if m[key] == nil {
			return ir.NoPos
		}
		return o.integer(key)
	}
	env.Line, env.Col = coord("line"), coord("col")
	env.EndLine, env.EndCol = coord("end_line"), coord("end_col")

	pos, ok := ir.ParseSyntacticPosition(o.str("pos"))
	if !ok {
		d.fail(o.at("pos"), "unknown syntactic position %q", o.str("pos"))
	}
	env.Pos = pos

	if fc, ok := m["func_ctx"].(map[string]any); ok {
		fo := &object{d: d, path: o.at("func_ctx"), m: fc}
		t, ok := ir.ParseFunctionContextType(fo.str("type"))
		if !ok {
			d.fail(fo.at("type"), "unknown function context %q", fo.str("type"))
		}
		env.FuncCtx = &ir.FunctionContext{Type: t, IsGenerator: fo.boolean("is_generator")}
	}
	return env
}

func (d *decoder) base(o *object) ir.Base {
	env := ir.NodeEnv{Line: ir.NoPos, Col: ir.NoPos, EndLine: ir.NoPos, EndCol: ir.NoPos}
	if o.m["env"] != nil {
		env = d.env(o.m["env"], o.at("env"))
	}
	var raw []lang.Form
	for _, s := range o.strs("raw_forms") {
		raw = append(raw, lang.Text(s))
	}
	var form lang.Form
	if f, ok := o.m["form"].(string); ok {
		form = lang.Text(f)
	}
	b := ir.NewBase(form, env, raw...)
	if o.boolean("top_level") {
		b = b.AsTopLevel()
	}
	return b
}

func (d *decoder) node(v any, path string) ir.Node {
	if d.err != nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.fail(path, "expected node mapping, got %T", v)
		return nil
	}
	o := &object{d: d, path: path, m: m}
	kindName := o.str("kind")
	kind, ok := ir.ParseKind(kindName)
	if !ok {
		d.fail(o.at("kind"), "unknown node kind %q", kindName)
		return nil
	}

	n := d.build(kind, o, d.base(o))
	if d.err != nil {
		return nil
	}
	built, err := ir.New(n)
	if err != nil {
		d.err = &DecodeError{Path: path, Message: "malformed " + kindName + " node", Err: err}
		return nil
	}
	return built
}

func (d *decoder) build(kind ir.Kind, o *object, b ir.Base) ir.Node {
	switch kind {
	case ir.KindAwait:
		return &ir.Await{Base: b, Expr: o.node("expr")}
	case ir.KindBinding:
		return &ir.Binding{
			Base:         b,
			Name:         o.str("name"),
			Local:        o.localType("local"),
			ArgID:        o.optInt("arg_id"),
			IsVariadic:   o.boolean("is_variadic"),
			IsAssignable: o.boolean("is_assignable"),
			Init:         o.node("init"),
			Tag:          o.node("tag"),
			Meta:         o.meta(),
		}
	case ir.KindCatch:
		return &ir.Catch{
			Base:  b,
			Class: nodeAs[ir.ClassRef](o, "class"),
			Local: nodeAs[*ir.Binding](o, "local"),
			Body:  nodeAs[*ir.Do](o, "body"),
		}
	case ir.KindConst:
		return d.constant(o, b)
	case ir.KindDef:
		return &ir.Def{
			Base: b,
			Name: o.symbol("name"),
			Var:  o.variable("var"),
			Init: o.node("init"),
			Doc:  o.str("doc"),
			Tag:  o.node("tag"),
			Meta: o.meta(),
		}
	case ir.KindDefType:
		return &ir.DefType{
			Base:                 b,
			Name:                 o.str("name"),
			Interfaces:           nodesAs[ir.TypeBase](o, "interfaces"),
			Fields:               nodesAs[*ir.Binding](o, "fields"),
			Members:              nodesAs[ir.DefTypeMember](o, "members"),
			VerifiedAbstract:     o.boolean("verified_abstract"),
			ArtificiallyAbstract: o.strs("artificially_abstract"),
			IsFrozen:             o.boolean("is_frozen"),
			UseSlots:             o.boolean("use_slots"),
			UseWeakrefSlot:       o.boolean("use_weakref_slot"),
			Meta:                 o.meta(),
		}
	case ir.KindDefTypeProperty:
		return &ir.DefTypeProperty{
			Base:      b,
			Name:      o.str("name"),
			ThisLocal: nodeAs[*ir.Binding](o, "this_local"),
			Params:    nodesAs[*ir.Binding](o, "params"),
			Body:      nodeAs[*ir.Do](o, "body"),
		}
	case ir.KindDefTypeMethod:
		return &ir.DefTypeMethod{
			Base:          b,
			Name:          o.str("name"),
			MaxFixedArity: o.integer("max_fixed_arity"),
			Arities:       nodesAs[*ir.DefTypeMethodArity](o, "arities"),
			IsVariadic:    o.boolean("is_variadic"),
		}
	case ir.KindDefTypeMethodArity:
		return &ir.DefTypeMethodArity{
			Base:         b,
			Name:         o.str("name"),
			ThisLocal:    nodeAs[*ir.Binding](o, "this_local"),
			Params:       nodesAs[*ir.Binding](o, "params"),
			FixedArity:   o.integer("fixed_arity"),
			Body:         nodeAs[*ir.Do](o, "body"),
			LoopID:       o.str("loop_id"),
			IsVariadic:   o.boolean("is_variadic"),
			KwargSupport: o.kwargSupport(),
		}
	case ir.KindDefTypeClassMethod:
		return &ir.DefTypeClassMethod{
			Base:         b,
			Name:         o.str("name"),
			ClassLocal:   nodeAs[*ir.Binding](o, "class_local"),
			Params:       nodesAs[*ir.Binding](o, "params"),
			FixedArity:   o.integer("fixed_arity"),
			Body:         nodeAs[*ir.Do](o, "body"),
			IsVariadic:   o.boolean("is_variadic"),
			KwargSupport: o.kwargSupport(),
		}
	case ir.KindDefTypeStaticMethod:
		return &ir.DefTypeStaticMethod{
			Base:         b,
			Name:         o.str("name"),
			Params:       nodesAs[*ir.Binding](o, "params"),
			FixedArity:   o.integer("fixed_arity"),
			Body:         nodeAs[*ir.Do](o, "body"),
			IsVariadic:   o.boolean("is_variadic"),
			KwargSupport: o.kwargSupport(),
		}
	case ir.KindDo:
		return &ir.Do{
			Base:              b,
			Statements:        o.nodes("statements"),
			Ret:               o.node("ret"),
			IsBody:            o.boolean("is_body"),
			UseVarIndirection: o.boolean("use_var_indirection"),
		}
	case ir.KindFn:
		return &ir.Fn{
			Base:          b,
			MaxFixedArity: o.integer("max_fixed_arity"),
			Arities:       nodesAs[*ir.FnArity](o, "arities"),
			Local:         nodeAs[*ir.Binding](o, "local"),
			IsVariadic:    o.boolean("is_variadic"),
			IsAsync:       o.boolean("is_async"),
			KwargSupport:  o.kwargSupport(),
			InlineFn:      nodeAs[*ir.Fn](o, "inline_fn"),
		}
	case ir.KindFnArity:
		return &ir.FnArity{
			Base:       b,
			LoopID:     o.str("loop_id"),
			Params:     nodesAs[*ir.Binding](o, "params"),
			FixedArity: o.integer("fixed_arity"),
			Body:       nodeAs[*ir.Do](o, "body"),
			Tag:        o.node("tag"),
			IsVariadic: o.boolean("is_variadic"),
		}
	case ir.KindHostCall:
		return &ir.HostCall{
			Base:   b,
			Method: o.str("method"),
			Target: o.node("target"),
			Args:   o.nodes("args"),
			Kwargs: o.kwargs(),
		}
	case ir.KindHostField:
		return &ir.HostField{
			Base:         b,
			Field:        o.str("field"),
			Target:       o.node("target"),
			IsAssignable: o.boolean("is_assignable"),
		}
	case ir.KindIf:
		return &ir.If{Base: b, Test: o.node("test"), Then: o.node("then"), Else: o.node("else")}
	case ir.KindImport:
		return &ir.Import{
			Base:     b,
			Aliases:  nodesAs[*ir.ImportAlias](o, "aliases"),
			Refers:   o.strs("refers"),
			ReferAll: o.boolean("refer_all"),
		}
	case ir.KindImportAlias:
		return &ir.ImportAlias{Base: b, Name: o.str("name"), Alias: o.str("alias")}
	case ir.KindInvoke:
		return &ir.Invoke{Base: b, Fn: o.node("fn"), Args: o.nodes("args"), Kwargs: o.kwargs()}
	case ir.KindLet:
		return &ir.Let{Base: b, Bindings: nodesAs[*ir.Binding](o, "bindings"), Body: nodeAs[*ir.Do](o, "body")}
	case ir.KindLetFn:
		return &ir.LetFn{Base: b, Bindings: nodesAs[*ir.Binding](o, "bindings"), Body: nodeAs[*ir.Do](o, "body")}
	case ir.KindLocal:
		return &ir.Local{
			Base:         b,
			Name:         o.str("name"),
			Local:        o.localType("local"),
			IsAssignable: o.boolean("is_assignable"),
			ArgID:        o.optInt("arg_id"),
			IsVariadic:   o.boolean("is_variadic"),
		}
	case ir.KindLoop:
		return &ir.Loop{
			Base:     b,
			Bindings: nodesAs[*ir.Binding](o, "bindings"),
			Body:     nodeAs[*ir.Do](o, "body"),
			LoopID:   o.str("loop_id"),
		}
	case ir.KindMap:
		return &ir.Map{Base: b, Keys: o.nodes("keys"), Vals: o.nodes("vals")}
	case ir.KindMaybeClass:
		return &ir.MaybeClass{Base: b, Class: o.str("class")}
	case ir.KindMaybeHostForm:
		return &ir.MaybeHostForm{Base: b, Class: o.str("class"), Field: o.str("field")}
	case ir.KindHostDict:
		return &ir.HostDict{Base: b, Keys: o.nodes("keys"), Vals: o.nodes("vals")}
	case ir.KindHostList:
		return &ir.HostList{Base: b, Items: o.nodes("items")}
	case ir.KindHostSet:
		return &ir.HostSet{Base: b, Items: o.nodes("items")}
	case ir.KindHostTuple:
		return &ir.HostTuple{Base: b, Items: o.nodes("items")}
	case ir.KindQueue:
		return &ir.Queue{Base: b, Items: o.nodes("items")}
	case ir.KindQuote:
		return &ir.Quote{Base: b, Expr: nodeAs[*ir.Const](o, "expr"), IsLiteral: o.boolean("is_literal")}
	case ir.KindRecur:
		return &ir.Recur{Base: b, Exprs: o.nodes("exprs"), LoopID: o.str("loop_id")}
	case ir.KindReify:
		return &ir.Reify{
			Base:                 b,
			Interfaces:           nodesAs[ir.TypeBase](o, "interfaces"),
			Members:              nodesAs[ir.DefTypeMember](o, "members"),
			VerifiedAbstract:     o.boolean("verified_abstract"),
			ArtificiallyAbstract: o.strs("artificially_abstract"),
			IsFrozen:             o.boolean("is_frozen"),
			UseWeakrefSlot:       o.boolean("use_weakref_slot"),
			Meta:                 o.meta(),
		}
	case ir.KindRequire:
		return &ir.Require{Base: b, Aliases: nodesAs[*ir.RequireAlias](o, "aliases")}
	case ir.KindRequireAlias:
		return &ir.RequireAlias{Base: b, Name: o.str("name"), Alias: o.str("alias")}
	case ir.KindSet:
		return &ir.Set{Base: b, Items: o.nodes("items")}
	case ir.KindSetBang:
		return &ir.SetBang{Base: b, Target: o.node("target"), Val: o.node("val")}
	case ir.KindThrow:
		return &ir.Throw{Base: b, Exception: o.node("exception"), Cause: o.node("cause")}
	case ir.KindTry:
		t := &ir.Try{
			Base:    b,
			Body:    nodeAs[*ir.Do](o, "body"),
			Catches: nodesAs[*ir.Catch](o, "catches"),
			Finally: nodeAs[*ir.Do](o, "finally"),
		}
		if t.Finally == nil && o.m["finally"] == nil {
			t.Finally = ir.EmptyBody(b.Form(), b.Env())
		}
		return t
	case ir.KindVar:
		return &ir.VarRef{
			Base:                  b,
			Var:                   o.variable("var"),
			ReturnVar:             o.boolean("return_var"),
			IsAssignable:          o.boolean("is_assignable"),
			IsAllowVarIndirection: o.boolean("is_allow_var_indirection"),
		}
	case ir.KindVector:
		return &ir.Vector{Base: b, Items: o.nodes("items")}
	case ir.KindWithMeta:
		return &ir.WithMeta{Base: b, Meta: o.meta(), Expr: nodeAs[ir.MetaTarget](o, "expr")}
	case ir.KindYield:
		return &ir.Yield{Base: b, Expr: o.node("expr")}
	}
	o.d.fail(o.at("kind"), "unsupported node kind %s", kind)
	return nil
}

func (d *decoder) constant(o *object, b ir.Base) ir.Node {
	typeName := o.str("type")
	ct, ok := ir.ParseConstType(typeName)
	if !ok {
		d.fail(o.at("type"), "unknown const type %q", typeName)
		return nil
	}
	val, err := constVal(ct, o.m["val"])
	if err != nil {
		d.err = &DecodeError{Path: o.at("val"), Message: "bad " + typeName + " value", Err: err}
		return nil
	}
	return &ir.Const{Base: b, Type: ct, Val: val, IsLiteral: o.boolean("is_literal"), Meta: o.meta()}
}

// constVal parses the mapped value of a constant back into its Go value.
func constVal(ct ir.ConstType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if ct == ir.ConstBool {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		return b, nil
	}
	if ct == ir.ConstNumber {
		switch n := v.(type) {
		case string:
			return strconv.ParseFloat(n, 64)
		case float64:
			if n != math.Trunc(n) {
				return n, nil
			}
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
			return n.Float64()
		}
		return toInt64(v)
	}

	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", v)
	}
	switch ct {
	case ir.ConstString:
		return s, nil
	case ir.ConstChar:
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError || size != len(s) {
			return nil, fmt.Errorf("char must be a single character, got %q", s)
		}
		return lang.Char(r), nil
	case ir.ConstDecimal:
		dec, _, err := apd.NewFromString(s)
		return dec, err
	case ir.ConstFraction:
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, fmt.Errorf("invalid fraction %q", s)
		}
		return r, nil
	case ir.ConstKeyword:
		return lang.ParseKeyword(s), nil
	case ir.ConstSymbol:
		return lang.ParseSymbol(s), nil
	case ir.ConstInst:
		return time.Parse(time.RFC3339Nano, s)
	case ir.ConstUUID:
		return uuid.Parse(s)
	case ir.ConstRegex:
		return regexp.Compile(s)
	case ir.ConstBytes:
		return base64.StdEncoding.DecodeString(s)
	default:
		return lang.Text(s), nil
	}
}

// toInt64 accepts the integer representations produced by the json, yaml
// and cue decoders.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d overflows int64", n)
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

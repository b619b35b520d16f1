package testutil

import (
	"math/big"
	"regexp"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/lang"
)

// NS is the namespace every tree built here lives in.
var NS = lang.NewNamespace("user")

// File is the source file recorded in every node env built here.
const File = "user.lpy"

// Env returns an env in NS with no location.
func Env() ir.NodeEnv {
	return ir.NewEnv(NS, File)
}

// EnvAt returns an env in NS located at the given span.
func EnvAt(line, col, endLine, endCol int) ir.NodeEnv {
	return Env().At(line, col, endLine, endCol)
}

// Int builds a literal integer constant.
func Int(v int64) *ir.Const {
	return ir.MustNew(&ir.Const{Base: ir.NewBase(v, Env()), Type: ir.ConstNumber, Val: v, IsLiteral: true})
}

// Kw builds a literal keyword constant.
func Kw(name string) *ir.Const {
	kw := lang.K(name)
	return ir.MustNew(&ir.Const{Base: ir.NewBase(kw, Env()), Type: ir.ConstKeyword, Val: kw, IsLiteral: true})
}

// Body builds a body that evaluates stmts and returns ret.
func Body(ret ir.Node, stmts ...ir.Node) *ir.Do {
	return ir.MustNew(&ir.Do{
		Base:       ir.NewBase(lang.List{lang.Sym("do")}, Env()),
		Statements: stmts,
		Ret:        ret,
		IsBody:     true,
	})
}

// Param builds the id-th positional parameter binding.
func Param(name string, id int) *ir.Binding {
	return ir.MustNew(&ir.Binding{Base: ir.NewBase(lang.Sym(name), Env()), Name: name, Local: ir.LocalArg, ArgID: &id})
}

// Local builds a reference to a local binding.
func Local(name string, lt ir.LocalType) *ir.Local {
	return ir.MustNew(&ir.Local{Base: ir.NewBase(lang.Sym(name), Env()), Name: name, Local: lt})
}

// VarRef builds a reference to the var name in NS.
func VarRef(name string) *ir.VarRef {
	return ir.MustNew(&ir.VarRef{Base: ir.NewBase(lang.Sym(name), Env()), Var: lang.NewVar(NS, name)})
}

// FnArity builds an arity with fixed positional parameters a, b, c... that
// returns ret.
func FnArity(loopID string, fixed int, variadic bool, ret ir.Node) *ir.FnArity {
	params := make([]*ir.Binding, fixed)
	for i := range params {
		params[i] = Param(string(rune('a'+i)), i)
	}
	if variadic {
		rest := len(params)
		params = append(params, ir.MustNew(&ir.Binding{
			Base:       ir.NewBase(lang.Sym("rest"), Env()),
			Name:       "rest",
			Local:      ir.LocalArg,
			ArgID:      &rest,
			IsVariadic: true,
		}))
	}
	return ir.MustNew(&ir.FnArity{
		Base:       ir.NewBase(lang.Vector{}, Env()),
		LoopID:     loopID,
		Params:     params,
		FixedArity: fixed,
		Body:       Body(ret),
		IsVariadic: variadic,
	})
}

// MethodArity builds a deftype method arity with fixed parameters.
func MethodArity(name string, fixed int, variadic bool) *ir.DefTypeMethodArity {
	params := make([]*ir.Binding, fixed)
	for i := range params {
		params[i] = Param(string(rune('a'+i)), i)
	}
	return ir.MustNew(&ir.DefTypeMethodArity{
		Base:       ir.NewBase(lang.List{lang.Sym(name)}, Env()),
		Name:       name,
		ThisLocal:  ir.MustNew(&ir.Binding{Base: ir.NewBase(lang.Sym("this"), Env()), Name: "this", Local: ir.LocalThis}),
		Params:     params,
		FixedArity: fixed,
		Body:       Body(Int(int64(fixed))),
		LoopID:     name + "_" + string(rune('0'+fixed)),
		IsVariadic: variadic,
	})
}

// Method groups arities into a deftype method.
func Method(name string, arities ...*ir.DefTypeMethodArity) *ir.DefTypeMethod {
	maxFixed := 0
	variadic := false
	for _, a := range arities {
		maxFixed = max(maxFixed, a.FixedArity)
		variadic = variadic || a.IsVariadic
	}
	return ir.MustNew(&ir.DefTypeMethod{
		Base:          ir.NewBase(lang.Sym(name), Env()),
		Name:          name,
		MaxFixedArity: maxFixed,
		Arities:       arities,
		IsVariadic:    variadic,
	})
}

// DefFn builds a top-level (def name (fn ...)) located at line 1 with a
// unary arity and a variadic arity. Only the def carries a span.
func DefFn(name string) *ir.Def {
	fn := ir.MustNew(&ir.Fn{
		Base:          ir.NewBase(lang.List{lang.Sym("fn*")}, Env()),
		MaxFixedArity: 1,
		Arities: []*ir.FnArity{
			FnArity(name+"_1", 1, false, Local("a", ir.LocalArg)),
			FnArity(name+"_rest", 1, true, Local("rest", ir.LocalArg)),
		},
		IsVariadic: true,
	})
	return ir.MustNew(&ir.Def{
		Base: ir.NewBase(lang.List{lang.Sym("def"), lang.Sym(name)}, EnvAt(1, 0, 3, 20)).AsTopLevel(),
		Name: lang.Sym(name),
		Var:  lang.NewVar(NS, name),
		Init: fn,
		Doc:  "Returns its argument.",
	})
}

// DefPoint builds a top-level deftype with a field, a two-arity method,
// a class method and a property.
func DefPoint() *ir.DefType {
	field := ir.MustNew(&ir.Binding{Base: ir.NewBase(lang.Sym("x"), Env()), Name: "x", Local: ir.LocalField})
	return ir.MustNew(&ir.DefType{
		Base:       ir.NewBase(lang.List{lang.Sym("deftype*"), lang.Sym("Point")}, EnvAt(5, 0, 9, 30)).AsTopLevel(),
		Name:       "Point",
		Interfaces: []ir.TypeBase{VarRef("Sized")},
		Fields:     []*ir.Binding{field},
		Members: []ir.DefTypeMember{
			Method("distance-to", MethodArity("distance-to", 0, false), MethodArity("distance-to", 1, false)),
			ir.MustNew(&ir.DefTypeClassMethod{
				Base:       ir.NewBase(lang.Sym("origin"), Env()),
				Name:       "origin",
				ClassLocal: ir.MustNew(&ir.Binding{Base: ir.NewBase(lang.Sym("cls"), Env()), Name: "cls", Local: ir.LocalThis}),
				Body:       Body(Int(0)),
			}),
			ir.MustNew(&ir.DefTypeProperty{
				Base:      ir.NewBase(lang.Sym("size?"), Env()),
				Name:      "size?",
				ThisLocal: ir.MustNew(&ir.Binding{Base: ir.NewBase(lang.Sym("this"), Env()), Name: "this", Local: ir.LocalThis}),
				Body:      Body(Int(1)),
			}),
		},
		IsFrozen: true,
	})
}

// CountDown builds a top-level loop that recurs until i reaches zero,
// wrapped in a try with a catch and a finally.
func CountDown() *ir.Try {
	loop := ir.MustNew(&ir.Loop{
		Base: ir.NewBase(lang.List{lang.Sym("loop*")}, EnvAt(12, 2, 14, 40)),
		Bindings: []*ir.Binding{ir.MustNew(&ir.Binding{
			Base:  ir.NewBase(lang.Sym("i"), Env()),
			Name:  "i",
			Local: ir.LocalLoop,
			Init:  Int(10),
		})},
		Body: Body(ir.MustNew(&ir.If{
			Base: ir.NewBase(lang.List{lang.Sym("if")}, Env()),
			Test: ir.MustNew(&ir.Invoke{
				Base: ir.NewBase(lang.List{lang.Sym("zero?")}, Env()),
				Fn:   VarRef("zero?"),
				Args: []ir.Node{Local("i", ir.LocalLoop)},
			}),
			Then: Kw("done"),
			Else: ir.MustNew(&ir.Recur{
				Base:   ir.NewBase(lang.List{lang.Sym("recur")}, Env()),
				Exprs:  []ir.Node{Local("i", ir.LocalLoop)},
				LoopID: "loop_12",
			}),
		})),
		LoopID: "loop_12",
	})
	catch := ir.MustNew(&ir.Catch{
		Base:  ir.NewBase(lang.List{lang.Sym("catch")}, Env()),
		Class: ir.MustNew(&ir.MaybeClass{Base: ir.NewBase(lang.Sym("Exception"), Env()), Class: "Exception"}),
		Local: ir.MustNew(&ir.Binding{Base: ir.NewBase(lang.Sym("e"), Env()), Name: "e", Local: ir.LocalCatch}),
		Body:  Body(Local("e", ir.LocalCatch)),
	})
	return ir.MustNew(&ir.Try{
		Base:    ir.NewBase(lang.List{lang.Sym("try")}, EnvAt(11, 0, 16, 10)).AsTopLevel(),
		Body:    Body(loop),
		Catches: []*ir.Catch{catch},
		Finally: Body(ir.MustNew(&ir.Invoke{
			Base: ir.NewBase(lang.List{lang.Sym("println")}, Env()),
			Fn:   VarRef("println"),
			Args: []ir.Node{Kw("bye")},
		})),
	})
}

// Constants builds a vector holding one constant of each scalar type.
func Constants() *ir.Vector {
	c := func(t ir.ConstType, v any) ir.Node {
		return ir.MustNew(&ir.Const{Base: ir.NewBase(lang.Text("c"), Env()), Type: t, Val: v, IsLiteral: true})
	}
	dec, _, _ := apd.NewFromString("3.14159")
	return ir.MustNew(&ir.Vector{
		Base: ir.NewBase(lang.Vector{}, EnvAt(20, 0, 20, 80)).AsTopLevel(),
		Items: []ir.Node{
			ir.NilConst(nil, Env()),
			c(ir.ConstBool, true),
			c(ir.ConstNumber, int64(42)),
			c(ir.ConstNumber, 2.5),
			c(ir.ConstString, "hello"),
			c(ir.ConstChar, lang.Char('λ')),
			c(ir.ConstDecimal, dec),
			c(ir.ConstFraction, big.NewRat(1, 3)),
			c(ir.ConstKeyword, lang.Intern("user", "k")),
			c(ir.ConstSymbol, lang.ParseSymbol("clojure.core/inc")),
			c(ir.ConstInst, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
			c(ir.ConstUUID, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")),
			c(ir.ConstRegex, regexp.MustCompile(`a+b*`)),
			c(ir.ConstBytes, []byte("bytes")),
			c(ir.ConstVector, lang.Vector{int64(1), int64(2)}),
		},
	})
}

// Units returns the top-level trees above in source order.
func Units() []ir.Node {
	return []ir.Node{DefFn("identity"), DefPoint(), CountDown(), Constants()}
}

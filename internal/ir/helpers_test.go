package ir

import "github.com/roach88/lispir/internal/lang"

var testNS = lang.NewNamespace("user")

func testEnv() NodeEnv {
	return NewEnv(testNS, "user.lpy")
}

func intConst(v int64) *Const {
	return MustNew(&Const{Base: NewBase(v, testEnv()), Type: ConstNumber, Val: v, IsLiteral: true})
}

func kwConst(name string) *Const {
	kw := lang.K(name)
	return MustNew(&Const{Base: NewBase(kw, testEnv()), Type: ConstKeyword, Val: kw, IsLiteral: true})
}

func body(ret Node, stmts ...Node) *Do {
	return MustNew(&Do{Base: NewBase(lang.List{lang.Sym("do")}, testEnv()), Statements: stmts, Ret: ret, IsBody: true})
}

func param(name string, id int) *Binding {
	return MustNew(&Binding{Base: NewBase(lang.Sym(name), testEnv()), Name: name, Local: LocalArg, ArgID: &id})
}

func this() *Binding {
	return MustNew(&Binding{Base: NewBase(lang.Sym("this"), testEnv()), Name: "this", Local: LocalThis})
}

func local(name string, lt LocalType) *Local {
	return MustNew(&Local{Base: NewBase(lang.Sym(name), testEnv()), Name: name, Local: lt})
}

func varRef(name string) *VarRef {
	return MustNew(&VarRef{Base: NewBase(lang.Sym(name), testEnv()), Var: lang.NewVar(testNS, name)})
}

func methodArity(name string, fixed int, variadic bool) *DefTypeMethodArity {
	params := make([]*Binding, fixed)
	for i := range params {
		params[i] = param(string(rune('a'+i)), i)
	}
	return MustNew(&DefTypeMethodArity{
		Base:       NewBase(lang.List{lang.Sym(name)}, testEnv()),
		Name:       name,
		ThisLocal:  this(),
		Params:     params,
		FixedArity: fixed,
		Body:       body(intConst(int64(fixed))),
		LoopID:     name + "_" + string(rune('0'+fixed)),
		IsVariadic: variadic,
	})
}

func method(name string, arities ...*DefTypeMethodArity) *DefTypeMethod {
	maxFixed := 0
	variadic := false
	for _, a := range arities {
		maxFixed = max(maxFixed, a.FixedArity)
		variadic = variadic || a.IsVariadic
	}
	return MustNew(&DefTypeMethod{
		Base:          NewBase(lang.Sym(name), testEnv()),
		Name:          name,
		MaxFixedArity: maxFixed,
		Arities:       arities,
		IsVariadic:    variadic,
	})
}

func fnArity(loopID string, fixed int, variadic bool, ret Node) *FnArity {
	params := make([]*Binding, fixed)
	for i := range params {
		params[i] = param(string(rune('a'+i)), i)
	}
	return MustNew(&FnArity{
		Base:       NewBase(lang.Vector{}, testEnv()),
		LoopID:     loopID,
		Params:     params,
		FixedArity: fixed,
		Body:       body(ret),
		IsVariadic: variadic,
	})
}

// sampleNodes returns one well formed node of every kind with every
// optional slot populated.
func sampleNodes() []Node {
	env := testEnv()
	b := func(f lang.Form) Base { return NewBase(f, env) }
	meta := MustNew(&Map{Base: b(lang.MapForm{}), Keys: []Node{kwConst("doc")}, Vals: []Node{intConst(1)}})
	tagged := MustNew(&Binding{
		Base:  b(lang.Sym("x")),
		Name:  "x",
		Local: LocalLet,
		Init:  intConst(1),
		Tag:   varRef("Long"),
		Meta:  kwConst("meta"),
	})
	fn := MustNew(&Fn{
		Base:          b(lang.List{lang.Sym("fn")}),
		MaxFixedArity: 1,
		Arities:       []*FnArity{fnArity("f_1", 1, false, local("a", LocalArg))},
		Local:         MustNew(&Binding{Base: b(lang.Sym("f")), Name: "f", Local: LocalFn}),
		InlineFn: MustNew(&Fn{
			Base:          b(lang.List{lang.Sym("fn")}),
			MaxFixedArity: 1,
			Arities:       []*FnArity{fnArity("f_inline", 1, false, local("a", LocalArg))},
		}),
	})
	tagArity := fnArity("g_0", 0, false, intConst(0))
	tagArity = MustNew(&FnArity{
		Base:       tagArity.Base,
		LoopID:     tagArity.LoopID,
		Params:     tagArity.Params,
		FixedArity: 0,
		Body:       tagArity.Body,
		Tag:        varRef("int"),
	})
	catchClass := MustNew(&MaybeClass{Base: b(lang.Sym("Exception")), Class: "Exception"})
	catch := MustNew(&Catch{
		Base:  b(lang.List{lang.Sym("catch")}),
		Class: catchClass,
		Local: MustNew(&Binding{Base: b(lang.Sym("e")), Name: "e", Local: LocalCatch}),
		Body:  body(local("e", LocalCatch)),
	})
	hostForm := MustNew(&MaybeHostForm{Base: b(lang.ParseSymbol("os/path")), Class: "os", Field: "path"})
	field := MustNew(&Binding{Base: b(lang.Sym("x")), Name: "x", Local: LocalField})
	prop := MustNew(&DefTypeProperty{
		Base:      b(lang.Sym("size")),
		Name:      "size",
		ThisLocal: this(),
		Body:      body(intConst(0)),
	})
	classMethod := MustNew(&DefTypeClassMethod{
		Base:       b(lang.Sym("create")),
		Name:       "create",
		ClassLocal: MustNew(&Binding{Base: b(lang.Sym("cls")), Name: "cls", Local: LocalThis}),
		Body:       body(intConst(0)),
	})
	staticMethod := MustNew(&DefTypeStaticMethod{
		Base: b(lang.Sym("helper")),
		Name: "helper",
		Body: body(intConst(0)),
	})
	arity := methodArity("bar", 0, false)
	meth := method("bar", arity)
	loopBinding := MustNew(&Binding{Base: b(lang.Sym("i")), Name: "i", Local: LocalLoop, Init: intConst(0)})
	importAlias := MustNew(&ImportAlias{Base: b(lang.Sym("os")), Name: "os", Alias: "o"})
	requireAlias := MustNew(&RequireAlias{Base: b(lang.Sym("clojure.set")), Name: "clojure.set", Alias: "set"})
	vec := MustNew(&Vector{Base: b(lang.Vector{}), Items: []Node{intConst(1)}})

	return []Node{
		MustNew(&Await{Base: b(lang.List{lang.Sym("await")}), Expr: intConst(1)}),
		tagged,
		catch,
		MustNew(&Const{Base: b(int64(1)), Type: ConstNumber, Val: int64(1), IsLiteral: true, Meta: meta}),
		MustNew(&Def{
			Base: b(lang.List{lang.Sym("def")}),
			Name: lang.Sym("x"),
			Var:  lang.NewVar(testNS, "x"),
			Init: intConst(1),
			Doc:  "the x",
			Tag:  varRef("int"),
			Meta: kwConst("private"),
		}),
		MustNew(&DefType{
			Base:       b(lang.List{lang.Sym("deftype*")}),
			Name:       "Point",
			Interfaces: []TypeBase{catchClass, hostForm, varRef("Sized")},
			Fields:     []*Binding{field},
			Members:    []DefTypeMember{meth, classMethod, staticMethod, prop},
			IsFrozen:   true,
			UseSlots:   true,
			Meta:       kwConst("m"),
		}),
		prop,
		meth,
		arity,
		classMethod,
		staticMethod,
		body(intConst(2), intConst(1)),
		fn,
		tagArity,
		MustNew(&HostCall{
			Base:   b(lang.List{lang.Sym(".join")}),
			Method: "join",
			Target: local("s", LocalLet),
			Args:   []Node{vec},
			Kwargs: []KeywordArg{{Name: "sep", Val: intConst(0)}},
		}),
		MustNew(&HostField{Base: b(lang.Sym(".-x")), Field: "x", Target: local("p", LocalLet), IsAssignable: true}),
		MustNew(&If{Base: b(lang.List{lang.Sym("if")}), Test: intConst(1), Then: intConst(2), Else: NilConst(nil, env)}),
		MustNew(&Import{Base: b(lang.List{lang.Sym("import*")}), Aliases: []*ImportAlias{importAlias}, Refers: []string{"path"}}),
		importAlias,
		MustNew(&Invoke{
			Base:   b(lang.List{lang.Sym("f")}),
			Fn:     varRef("f"),
			Args:   []Node{intConst(1)},
			Kwargs: []KeywordArg{{Name: "key", Val: kwConst("k")}},
		}),
		MustNew(&Let{Base: b(lang.List{lang.Sym("let*")}), Bindings: []*Binding{tagged}, Body: body(local("x", LocalLet))}),
		MustNew(&LetFn{
			Base:     b(lang.List{lang.Sym("letfn*")}),
			Bindings: []*Binding{MustNew(&Binding{Base: b(lang.Sym("g")), Name: "g", Local: LocalLetFn, Init: fn})},
			Body:     body(local("g", LocalLetFn)),
		}),
		local("x", LocalLet),
		MustNew(&Loop{
			Base:     b(lang.List{lang.Sym("loop*")}),
			Bindings: []*Binding{loopBinding},
			Body: body(MustNew(&Recur{
				Base:   b(lang.List{lang.Sym("recur")}),
				Exprs:  []Node{local("i", LocalLoop)},
				LoopID: "loop_1",
			})),
			LoopID: "loop_1",
		}),
		meta,
		catchClass,
		hostForm,
		MustNew(&HostDict{Base: b(lang.Text("#py {}")), Keys: []Node{intConst(1)}, Vals: []Node{intConst(2)}}),
		MustNew(&HostList{Base: b(lang.Text("#py []")), Items: []Node{intConst(1)}}),
		MustNew(&HostSet{Base: b(lang.Text("#py #{}")), Items: []Node{intConst(1)}}),
		MustNew(&HostTuple{Base: b(lang.Text("#py ()")), Items: []Node{intConst(1)}}),
		MustNew(&Queue{Base: b(lang.Text("#queue ()")), Items: []Node{intConst(1)}}),
		MustNew(&Quote{Base: b(lang.List{lang.Sym("quote")}), Expr: kwConst("q"), IsLiteral: true}),
		MustNew(&Recur{Base: b(lang.List{lang.Sym("recur")}), Exprs: []Node{intConst(1)}, LoopID: "loop_1"}),
		MustNew(&Reify{
			Base:       b(lang.List{lang.Sym("reify*")}),
			Interfaces: []TypeBase{varRef("Sized")},
			Members:    []DefTypeMember{method("bar", methodArity("bar", 0, false))},
			Meta:       kwConst("m"),
		}),
		MustNew(&Require{Base: b(lang.List{lang.Sym("require*")}), Aliases: []*RequireAlias{requireAlias}}),
		requireAlias,
		MustNew(&Set{Base: b(lang.SetForm{}), Items: []Node{intConst(1)}}),
		MustNew(&SetBang{
			Base:   b(lang.List{lang.Sym("set!")}),
			Target: MustNew(&VarRef{Base: b(lang.Sym("x")), Var: lang.NewVar(testNS, "x"), IsAssignable: true}),
			Val:    intConst(1),
		}),
		MustNew(&Throw{Base: b(lang.List{lang.Sym("throw")}), Exception: local("e", LocalCatch), Cause: local("c", LocalLet)}),
		MustNew(&Try{
			Base:    b(lang.List{lang.Sym("try")}),
			Body:    body(intConst(1)),
			Catches: []*Catch{catch},
			Finally: body(intConst(2), intConst(3)),
		}),
		varRef("x"),
		vec,
		MustNew(&WithMeta{Base: b(lang.Vector{}), Meta: meta, Expr: vec}),
		MustNew(&Yield{Base: b(lang.List{lang.Sym("yield")}), Expr: intConst(1)}),
	}
}

// collectKinds returns the kinds of every node in the tree in pre-order.
func collectKinds(n Node) []Kind {
	var kinds []Kind
	Walk(n, func(c Node) bool {
		kinds = append(kinds, c.Kind())
		return true
	})
	return kinds
}

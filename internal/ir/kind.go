package ir

import "github.com/roach88/lispir/internal/lang"

// Kind uniquely identifies the variant of a Node.
//
// Kind and the Go type of a node are always in sync. Consumers switch on
// Kind for dispatch instead of type-asserting every variant.
type Kind int

// Node kinds. The zero value is not a valid kind.
const (
	KindAwait Kind = iota + 1
	KindBinding
	KindCatch
	KindConst
	KindDef
	KindDefType
	KindDefTypeProperty
	KindDefTypeMethod
	KindDefTypeMethodArity
	KindDefTypeClassMethod
	KindDefTypeStaticMethod
	KindDo
	KindFn
	KindFnArity
	KindHostCall
	KindHostField
	KindIf
	KindImport
	KindImportAlias
	KindInvoke
	KindLet
	KindLetFn
	KindLocal
	KindLoop
	KindMap
	KindMaybeClass
	KindMaybeHostForm
	KindHostDict
	KindHostList
	KindHostSet
	KindHostTuple
	KindQueue
	KindQuote
	KindRecur
	KindReify
	KindRequire
	KindRequireAlias
	KindSet
	KindSetBang
	KindThrow
	KindTry
	KindVar
	KindVector
	KindWithMeta
	KindYield
)

var kindKeywords = map[Kind]*lang.Keyword{
	KindAwait:               lang.K("await"),
	KindBinding:             lang.K("binding"),
	KindCatch:               lang.K("catch"),
	KindConst:               lang.K("const"),
	KindDef:                 lang.K("def"),
	KindDefType:             lang.K("deftype"),
	KindDefTypeProperty:     lang.K("deftype-property"),
	KindDefTypeMethod:       lang.K("deftype-method"),
	KindDefTypeMethodArity:  lang.K("deftype-method-arity"),
	KindDefTypeClassMethod:  lang.K("deftype-classmethod"),
	KindDefTypeStaticMethod: lang.K("deftype-staticmethod"),
	KindDo:                  lang.K("do"),
	KindFn:                  lang.K("fn"),
	KindFnArity:             lang.K("fn-arity"),
	KindHostCall:            lang.K("host-call"),
	KindHostField:           lang.K("host-field"),
	KindIf:                  lang.K("if"),
	KindImport:              lang.K("import"),
	KindImportAlias:         lang.K("import-alias"),
	KindInvoke:              lang.K("invoke"),
	KindLet:                 lang.K("let"),
	KindLetFn:               lang.K("letfn"),
	KindLocal:               lang.K("local"),
	KindLoop:                lang.K("loop"),
	KindMap:                 lang.K("map"),
	KindMaybeClass:          lang.K("maybe-class"),
	KindMaybeHostForm:       lang.K("maybe-host-form"),
	KindHostDict:            lang.K("host-dict"),
	KindHostList:            lang.K("host-list"),
	KindHostSet:             lang.K("host-set"),
	KindHostTuple:           lang.K("host-tuple"),
	KindQueue:               lang.K("queue"),
	KindQuote:               lang.K("quote"),
	KindRecur:               lang.K("recur"),
	KindReify:               lang.K("reify"),
	KindRequire:             lang.K("require"),
	KindRequireAlias:        lang.K("require-alias"),
	KindSet:                 lang.K("set"),
	KindSetBang:             lang.K("set!"),
	KindThrow:               lang.K("throw"),
	KindTry:                 lang.K("try"),
	KindVar:                 lang.K("var"),
	KindVector:              lang.K("vector"),
	KindWithMeta:            lang.K("with-meta"),
	KindYield:               lang.K("yield"),
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindKeywords))
	for k, kw := range kindKeywords {
		m[kw.Name()] = k
	}
	return m
}()

// Keyword returns the interned keyword naming k, or nil for an invalid kind.
func (k Kind) Keyword() *lang.Keyword {
	return kindKeywords[k]
}

// String returns the keyword name of k, e.g. "deftype-method".
func (k Kind) String() string {
	if kw, ok := kindKeywords[k]; ok {
		return kw.Name()
	}
	return "invalid"
}

// ParseKind looks a kind up by its keyword name.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// AllKinds returns every valid kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(kindKeywords))
	for k := KindAwait; k <= KindYield; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

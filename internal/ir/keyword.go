package ir

import (
	"strings"

	"github.com/roach88/lispir/internal/lang"
)

// Child-slot role tags. A pluralized tag (see IsPlural) names a slot holding
// a sequence of nodes; every other tag names a slot holding exactly one node.
var (
	KwAliases      = lang.K("aliases")
	KwArgs         = lang.K("args")
	KwArities      = lang.K("arities")
	KwBindings     = lang.K("bindings")
	KwBody         = lang.K("body")
	KwCatches      = lang.K("catches")
	KwCause        = lang.K("cause")
	KwClass        = lang.K("class")
	KwClassLocal   = lang.K("class-local")
	KwElse         = lang.K("else")
	KwException    = lang.K("exception")
	KwExpr         = lang.K("expr")
	KwExprs        = lang.K("exprs")
	KwFields       = lang.K("fields")
	KwFinally      = lang.K("finally")
	KwFn           = lang.K("fn")
	KwInit         = lang.K("init")
	KwInlineFn     = lang.K("inline-fn")
	KwInterfaces   = lang.K("interfaces")
	KwItems        = lang.K("items")
	KwKeys         = lang.K("keys")
	KwKwargs       = lang.K("kwargs")
	KwLocal        = lang.K("local")
	KwMembers      = lang.K("members")
	KwMeta         = lang.K("meta")
	KwParams       = lang.K("params")
	KwRet          = lang.K("ret")
	KwStatements   = lang.K("statements")
	KwTag          = lang.K("tag")
	KwTarget       = lang.K("target")
	KwTest         = lang.K("test")
	KwThen         = lang.K("then")
	KwThisLocal    = lang.K("this-local")
	KwVal          = lang.K("val")
	KwVals         = lang.K("vals")
)

var pluralTags = map[*lang.Keyword]bool{
	KwAliases:    true,
	KwArgs:       true,
	KwArities:    true,
	KwBindings:   true,
	KwCatches:    true,
	KwExprs:      true,
	KwFields:     true,
	KwInterfaces: true,
	KwItems:      true,
	KwKeys:       true,
	KwKwargs:     true,
	KwMembers:    true,
	KwParams:     true,
	KwStatements: true,
	KwVals:       true,
}

// IsPlural reports whether tag names a sequence-of-children slot.
// "class" ends in s but is singular, so this is a fixed table rather than a
// suffix check.
func IsPlural(tag *lang.Keyword) bool {
	return pluralTags[tag]
}

// slotKey is the mapping key used for a role tag: "class-local" -> "class_local".
func slotKey(tag *lang.Keyword) string {
	return strings.ReplaceAll(tag.Name(), "-", "_")
}

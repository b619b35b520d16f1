package ir

// ConstType categorizes the realized value of a Const node.
type ConstType int

const (
	ConstUnknown ConstType = iota
	ConstNil
	ConstMap
	ConstQueue
	ConstSet
	ConstVector
	ConstBool
	ConstBytes
	ConstKeyword
	ConstSymbol
	ConstString
	ConstNumber
	ConstDecimal
	ConstFraction
	ConstRecord
	ConstTypeRef
	ConstSeq
	ConstChar
	ConstRegex
	ConstClass
	ConstInst
	ConstUUID
	ConstHostDict
	ConstHostList
	ConstHostSet
	ConstHostTuple
)

var constTypeNames = []string{
	ConstUnknown:   "unknown",
	ConstNil:       "nil",
	ConstMap:       "map",
	ConstQueue:     "queue",
	ConstSet:       "set",
	ConstVector:    "vector",
	ConstBool:      "bool",
	ConstBytes:     "bytes",
	ConstKeyword:   "keyword",
	ConstSymbol:    "symbol",
	ConstString:    "string",
	ConstNumber:    "number",
	ConstDecimal:   "decimal",
	ConstFraction:  "fraction",
	ConstRecord:    "record",
	ConstTypeRef:   "type",
	ConstSeq:       "seq",
	ConstChar:      "char",
	ConstRegex:     "regex",
	ConstClass:     "class",
	ConstInst:      "inst",
	ConstUUID:      "uuid",
	ConstHostDict:  "host-dict",
	ConstHostList:  "host-list",
	ConstHostSet:   "host-set",
	ConstHostTuple: "host-tuple",
}

func (t ConstType) String() string { return enumName(constTypeNames, int(t)) }

// ParseConstType looks a const type up by name.
func ParseConstType(s string) (ConstType, bool) { return parseEnum[ConstType](constTypeNames, s) }

// LocalType says which construct introduced a Binding or Local.
type LocalType int

const (
	LocalArg LocalType = iota + 1
	LocalCatch
	LocalDefType
	LocalField
	LocalFn
	LocalImport
	LocalLet
	LocalLetFn
	LocalLoop
	LocalThis
)

var localTypeNames = []string{
	LocalArg:     "arg",
	LocalCatch:   "catch",
	LocalDefType: "deftype",
	LocalField:   "field",
	LocalFn:      "fn",
	LocalImport:  "import",
	LocalLet:     "let",
	LocalLetFn:   "letfn",
	LocalLoop:    "loop",
	LocalThis:    "this",
}

func (t LocalType) String() string { return enumName(localTypeNames, int(t)) }

// ParseLocalType looks a local type up by name.
func ParseLocalType(s string) (LocalType, bool) { return parseEnum[LocalType](localTypeNames, s) }

// FunctionContextType describes the kind of callable enclosing a node.
type FunctionContextType int

const (
	FuncFunction FunctionContextType = iota + 1
	FuncAsyncFunction
	FuncMethod
	FuncClassMethod
	FuncStaticMethod
	FuncProperty
)

var funcTypeNames = []string{
	FuncFunction:      "function",
	FuncAsyncFunction: "async-function",
	FuncMethod:        "method",
	FuncClassMethod:   "classmethod",
	FuncStaticMethod:  "staticmethod",
	FuncProperty:      "property",
}

func (t FunctionContextType) String() string { return enumName(funcTypeNames, int(t)) }

// ParseFunctionContextType looks a function context type up by name.
func ParseFunctionContextType(s string) (FunctionContextType, bool) {
	return parseEnum[FunctionContextType](funcTypeNames, s)
}

// KeywordArgSupport says how a function accepts host keyword arguments.
// The zero value means keyword arguments are not supported.
type KeywordArgSupport int

const (
	KwargsNone KeywordArgSupport = iota
	KwargsApply
	KwargsCollect
)

var kwargSupportNames = []string{
	KwargsNone:    "",
	KwargsApply:   "apply",
	KwargsCollect: "collect",
}

func (k KeywordArgSupport) String() string { return enumName(kwargSupportNames, int(k)) }

// ParseKeywordArgSupport looks keyword-argument support up by name.
// The empty string parses as KwargsNone.
func ParseKeywordArgSupport(s string) (KeywordArgSupport, bool) {
	if s == "" {
		return KwargsNone, true
	}
	return parseEnum[KeywordArgSupport](kwargSupportNames, s)
}

// SyntacticPosition says whether a node is evaluated for effect or value.
// The zero value means the analyzer did not record a position.
type SyntacticPosition int

const (
	PosNone SyntacticPosition = iota
	PosStmt
	PosExpr
)

var posNames = []string{
	PosNone: "",
	PosStmt: "stmt",
	PosExpr: "expr",
}

func (p SyntacticPosition) String() string { return enumName(posNames, int(p)) }

// ParseSyntacticPosition looks a syntactic position up by name.
// The empty string parses as PosNone.
func ParseSyntacticPosition(s string) (SyntacticPosition, bool) {
	if s == "" {
		return PosNone, true
	}
	return parseEnum[SyntacticPosition](posNames, s)
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return "invalid"
	}
	return names[v]
}

func parseEnum[T ~int](names []string, s string) (T, bool) {
	for i, n := range names {
		if n != "" && n == s {
			return T(i), true
		}
	}
	return 0, false
}

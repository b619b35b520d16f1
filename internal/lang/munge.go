package lang

import (
	"fmt"
	"strings"
	"unicode"
)

// mungeReplacements maps reader-legal characters that are illegal in host
// identifiers to fixed escape sequences.
var mungeReplacements = map[rune]string{
	'-':  "_",
	'+':  "__PLUS__",
	'*':  "__STAR__",
	'/':  "__DIV__",
	'>':  "__GT__",
	'<':  "__LT__",
	'!':  "__BANG__",
	'=':  "__EQ__",
	'?':  "__Q__",
	'\\': "__IDIV__",
	'&':  "__AMP__",
	'$':  "__DOLLAR__",
	'%':  "__PCT__",
	'\'': "__PRIME__",
	'.':  "__DOT__",
}

// reserved host identifiers: Go keywords and predeclared identifiers.
var reserved = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,

	"any": true, "append": true, "bool": true, "byte": true, "cap": true,
	"clear": true, "close": true, "comparable": true, "complex": true,
	"complex64": true, "complex128": true, "copy": true, "delete": true,
	"error": true, "false": true, "float32": true, "float64": true, "imag": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"iota": true, "len": true, "make": true, "max": true, "min": true, "new": true,
	"nil": true, "panic": true, "print": true, "println": true, "real": true,
	"recover": true, "rune": true, "string": true, "true": true, "uint": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
}

// Munge converts a reader name into a legal host identifier.
//
// Characters with a fixed replacement are rewritten; any other rune that is
// not a letter, digit or underscore becomes __U<HEX>__. A leading digit gets
// an underscore prefix, and reserved host identifiers get a trailing
// underscore. Munge is total and deterministic.
func Munge(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i, r := range name {
		if rep, ok := mungeReplacements[r]; ok {
			b.WriteString(rep)
			continue
		}
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "__U%04X__", r)
		}
	}
	out := b.String()
	if reserved[out] {
		return out + "_"
	}
	return out
}

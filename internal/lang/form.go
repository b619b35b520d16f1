package lang

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Form is a reader-level form: the source expression a node was analyzed
// from. The IR stores forms for diagnostics and never interprets them.
//
// Concrete forms are nil, bool, integers, float64, string, Char, *Keyword,
// *Symbol, List, Vector, MapForm, SetForm, Text, or any host value that
// prints itself through fmt.Stringer.
type Form any

// Char is a character literal.
type Char rune

// List is a list form, e.g. (if x 1 2).
type List []Form

// Vector is a vector form, e.g. [a b].
type Vector []Form

// SetForm is a set form, e.g. #{a b}.
type SetForm []Form

// MapForm is a map form with entries kept in reader order. Keys and Vals
// are parallel; a key without a value prints with nil.
type MapForm struct {
	Keys []Form
	Vals []Form
}

// Text is a form known only by its printed representation.
// Trees loaded from files carry their forms as Text.
type Text string

// Print renders a form deterministically in reader syntax.
func Print(f Form) string {
	var b strings.Builder
	printForm(&b, f)
	return b.String()
}

func printForm(b *strings.Builder, f Form) {
	switch v := f.(type) {
	case nil:
		b.WriteString("nil")
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case int:
		b.WriteString(strconv.Itoa(v))
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		b.WriteString(strconv.Quote(v))
	case Char:
		b.WriteString(printChar(rune(v)))
	case *Keyword:
		b.WriteString(v.String())
	case *Symbol:
		b.WriteString(v.String())
	case Text:
		b.WriteString(string(v))
	case List:
		printSeq(b, "(", []Form(v), ")")
	case Vector:
		printSeq(b, "[", []Form(v), "]")
	case SetForm:
		printSeq(b, "#{", []Form(v), "}")
	case MapForm:
		b.WriteByte('{')
		for i := range v.Keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			printForm(b, v.Keys[i])
			b.WriteByte(' ')
			if i < len(v.Vals) {
				printForm(b, v.Vals[i])
			} else {
				b.WriteString("nil")
			}
		}
		b.WriteByte('}')
	case []byte:
		b.WriteString("#b ")
		b.WriteString(strconv.Quote(string(v)))
	case time.Time:
		b.WriteString(`#inst "`)
		b.WriteString(v.UTC().Format(time.RFC3339Nano))
		b.WriteByte('"')
	case fmt.Stringer:
		b.WriteString(v.String())
	default:
		fmt.Fprint(b, v)
	}
}

func printSeq(b *strings.Builder, opener string, items []Form, closer string) {
	b.WriteString(opener)
	for i, item := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		printForm(b, item)
	}
	b.WriteString(closer)
}

var charNames = map[rune]string{
	' ':  "space",
	'\n': "newline",
	'\t': "tab",
	'\r': "return",
	'\b': "backspace",
	'\f': "formfeed",
}

func printChar(r rune) string {
	if name, ok := charNames[r]; ok {
		return `\` + name
	}
	return `\` + string(r)
}

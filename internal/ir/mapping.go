package ir

import (
	"encoding/base64"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/roach88/lispir/internal/lang"
)

// ToMap converts n and its subtree into a plain nested mapping.
//
// The mapping is built from the same slot table that drives Visit, so every
// kind is covered without kind-specific code here. Keys:
//
//	kind       keyword name of the kind
//	form       the form in reader syntax
//	env        see NodeEnv
//	raw_forms  macroexpansion history, in reader syntax
//	top_level  whether n is a unit root
//	children   names of the declared child slots
//
// plus one key per child slot (role tag with "-" replaced by "_") and one
// per variant attribute. Absent optional values map to Null. Declared slots
// that hold nothing also map to Null, so malformed trees can be inspected.
func ToMap(n Node) Object {
	raw := make(Array, len(n.RawForms()))
	for i, f := range n.RawForms() {
		raw[i] = String(lang.Print(f))
	}
	obj := Object{
		"kind":      String(n.Kind().String()),
		"form":      String(lang.Print(n.Form())),
		"env":       envToMap(n.Env()),
		"raw_forms": raw,
		"top_level": Bool(n.TopLevel()),
	}

	children := Array{}
	for _, s := range n.slots() {
		if s.declared() {
			children = append(children, String(s.tag.Name()))
		}
		obj[slotKey(s.tag)] = slotToValue(s)
	}
	obj["children"] = children

	for k, v := range n.attrs() {
		obj[k] = v
	}
	return obj
}

func slotToValue(s slot) Value {
	if !s.plural {
		if s.node == nil {
			return Null{}
		}
		return ToMap(s.node)
	}
	arr := make(Array, len(s.nodes))
	for i, c := range s.nodes {
		if c == nil {
			arr[i] = Null{}
			continue
		}
		arr[i] = ToMap(c)
	}
	return arr
}

func optInt(p *int) Value {
	if p == nil {
		return Null{}
	}
	return Int(*p)
}

func optString(s string) Value {
	if s == "" {
		return Null{}
	}
	return String(s)
}

// constValue renders the realized value of a Const. Only null, booleans and
// integers keep their own JSON type; everything else, floats included, is
// rendered as a string that the loader parses back according to the
// constant's type.
func constValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int64:
		return Int(x)
	case float64:
		return String(strconv.FormatFloat(x, 'g', -1, 64))
	case string:
		return String(x)
	case lang.Char:
		return String(string(rune(x)))
	case *apd.Decimal:
		return String(x.String())
	case *big.Rat:
		return String(x.RatString())
	case *lang.Keyword:
		return String(x.String())
	case *lang.Symbol:
		return String(x.String())
	case time.Time:
		return String(x.UTC().Format(time.RFC3339Nano))
	case uuid.UUID:
		return String(x.String())
	case *regexp.Regexp:
		return String(x.String())
	case []byte:
		return String(base64.StdEncoding.EncodeToString(x))
	default:
		return String(lang.Print(x))
	}
}

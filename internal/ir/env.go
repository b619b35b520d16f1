package ir

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/roach88/lispir/internal/lang"
)

// NoPos marks an absent line or column in a NodeEnv.
const NoPos = -1

// Span is a source location: start line, start column, end line, end column.
// Lines are 1-based and columns 0-based.
type Span struct {
	Line    int
	Col     int
	EndLine int
	EndCol  int
}

// Complete reports whether every coordinate of s is present.
func (s Span) Complete() bool {
	return s.Line >= 1 && s.Col >= 0 && s.EndLine >= 1 && s.EndCol >= 0
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Line, s.Col, s.EndLine, s.EndCol)
}

var spanPattern = regexp.MustCompile(`^(\d+):(\d+)[-:](\d+):(\d+)$`)

// ParseSpan parses a span written as "line:col-endLine:endCol" (the
// String form) or "line:col:endLine:endCol". The result must be complete.
func ParseSpan(s string) (Span, error) {
	m := spanPattern.FindStringSubmatch(s)
	if m == nil {
		return Span{}, fmt.Errorf("span %q: want line:col-endLine:endCol", s)
	}
	var v [4]int
	for i, p := range m[1:] {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Span{}, fmt.Errorf("span %q: %w", s, err)
		}
		v[i] = n
	}
	span := Span{Line: v[0], Col: v[1], EndLine: v[2], EndCol: v[3]}
	if !span.Complete() {
		return Span{}, fmt.Errorf("span %q is incomplete", s)
	}
	return span, nil
}

// FunctionContext describes the callable that encloses a node.
type FunctionContext struct {
	Type        FunctionContextType
	IsGenerator bool
}

// NodeEnv records where a node came from.
//
// NS is a read-only reference into the runtime namespace registry. A line
// below 1 or a column below 0 is absent; use NoPos to say so explicitly.
type NodeEnv struct {
	NS      *lang.Namespace
	File    string
	Line    int
	Col     int
	EndLine int
	EndCol  int
	Pos     SyntacticPosition
	FuncCtx *FunctionContext
}

// NewEnv returns an environment in ns and file with no location.
func NewEnv(ns *lang.Namespace, file string) NodeEnv {
	return NodeEnv{NS: ns, File: file, Line: NoPos, Col: NoPos, EndLine: NoPos, EndCol: NoPos}
}

// Span returns the location of e and whether all four coordinates are present.
func (e NodeEnv) Span() (Span, bool) {
	s := Span{Line: e.Line, Col: e.Col, EndLine: e.EndLine, EndCol: e.EndCol}
	return s, s.Complete()
}

// WithSpan returns a copy of e located at s.
func (e NodeEnv) WithSpan(s Span) NodeEnv {
	e.Line, e.Col, e.EndLine, e.EndCol = s.Line, s.Col, s.EndLine, s.EndCol
	return e
}

// At is shorthand for WithSpan.
func (e NodeEnv) At(line, col, endLine, endCol int) NodeEnv {
	return e.WithSpan(Span{Line: line, Col: col, EndLine: endLine, EndCol: endCol})
}

func coord(v, floor int) Value {
	if v < floor {
		return Null{}
	}
	return Int(v)
}

// envToMap renders e as a plain mapping. Absent coordinates are null.
func envToMap(e NodeEnv) Object {
	obj := Object{
		"ns":       Null{},
		"file":     String(e.File),
		"line":     coord(e.Line, 1),
		"col":      coord(e.Col, 0),
		"end_line": coord(e.EndLine, 1),
		"end_col":  coord(e.EndCol, 0),
		"pos":      Null{},
		"func_ctx": Null{},
	}
	if e.NS != nil {
		obj["ns"] = String(e.NS.Name)
	}
	if e.Pos != PosNone {
		obj["pos"] = String(e.Pos.String())
	}
	if e.FuncCtx != nil {
		obj["func_ctx"] = Object{
			"type":         String(e.FuncCtx.Type.String()),
			"is_generator": Bool(e.FuncCtx.IsGenerator),
		}
	}
	return obj
}

package ir

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Validation error codes (E200-E299)
const (
	// Structure (E201-E202)
	ErrCodeMissingChild = "E201" // declared child slot holds nothing
	ErrCodeMissingField = "E202" // required field is empty

	// Analyzer contracts (E203-E210)
	ErrCodeNotAssignable      = "E203" // set! target cannot be assigned
	ErrCodeDuplicateArity     = "E204" // two arities with the same fixed arity
	ErrCodeMultipleVariadic   = "E205" // more than one variadic arity
	ErrCodeFixedAboveVariadic = "E206" // fixed arity above the variadic arity
	ErrCodeMaxFixedArity      = "E207" // max fixed arity does not match arities
	ErrCodeRecurTarget        = "E208" // recur does not target the innermost loop
	ErrCodeUnpairedEntries    = "E209" // map keys and vals differ in length
	ErrCodeArgIDNotArg        = "E210" // arg id on a non-argument binding
)

// ValidationError describes one problem found by Validate.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks the whole tree rooted at n against the contracts an
// analyzer must uphold. It never panics on malformed trees and returns every
// problem found.
//
// Field is the path of the offending node from the root, e.g.
// "arities[1].body.ret"; the root itself is ".".
func Validate(n Node) []ValidationError {
	v := &validator{}
	v.node(n, ".")
	return v.errs
}

type validator struct {
	errs  []ValidationError
	loops []string
}

func (v *validator) add(n Node, field, code, format string, args ...any) {
	line := 0
	if n != nil && n.Env().Line > 0 {
		line = n.Env().Line
	}
	v.errs = append(v.errs, ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
		Line:    line,
	})
}

func childPath(parent, field string) string {
	if parent == "." {
		return field
	}
	return parent + "." + field
}

func (v *validator) node(n Node, path string) {
	if err := n.check(); err != nil {
		var ce *ContractError
		if errors.As(err, &ce) && errors.Is(err, ErrMissingField) {
			v.add(n, childPath(path, ce.Field), ErrCodeMissingField, "%s requires %s", n.Kind(), ce.Field)
		}
	}
	v.rules(n, path)

	pushed := false
	switch x := n.(type) {
	case *Loop:
		v.loops = append(v.loops, x.LoopID)
		pushed = true
	case *FnArity:
		v.loops = append(v.loops, x.LoopID)
		pushed = true
	case *DefTypeMethodArity:
		v.loops = append(v.loops, x.LoopID)
		pushed = true
	case *Fn, *DefType, *Reify:
		// Recur never crosses a function or type boundary.
		saved := v.loops
		v.loops = nil
		defer func() { v.loops = saved }()
	}
	if pushed {
		defer func() { v.loops = v.loops[:len(v.loops)-1] }()
	}

	for _, s := range n.slots() {
		if !s.declared() {
			continue
		}
		field := slotKey(s.tag)
		if !s.plural {
			p := childPath(path, field)
			if s.node == nil {
				v.add(n, p, ErrCodeMissingChild, "%s declares %s but it is empty", n.Kind(), s.tag.Name())
				continue
			}
			v.node(s.node, p)
			continue
		}
		for i, c := range s.nodes {
			p := childPath(path, fmt.Sprintf("%s[%d]", field, i))
			if c == nil {
				v.add(n, p, ErrCodeMissingChild, "%s declares %s but element %d is empty", n.Kind(), s.tag.Name(), i)
				continue
			}
			v.node(c, p)
		}
	}
}

func (v *validator) rules(n Node, path string) {
	switch x := n.(type) {
	case *SetBang:
		if x.Target == nil {
			return
		}
		a, ok := x.Target.(Assignable)
		if !ok {
			v.add(n, childPath(path, "target"), ErrCodeNotAssignable, "%s cannot be the target of set!", x.Target.Kind())
		} else if !a.Assignable() {
			v.add(n, childPath(path, "target"), ErrCodeNotAssignable, "%s is not assignable", x.Target.Kind())
		}
	case *Fn:
		shapes := make([]arityShape, 0, len(x.Arities))
		for _, a := range x.Arities {
			if a != nil {
				shapes = append(shapes, arityShape{a.FixedArity, a.IsVariadic})
			}
		}
		v.arities(n, path, shapes, x.MaxFixedArity)
	case *DefTypeMethod:
		shapes := make([]arityShape, 0, len(x.Arities))
		for _, a := range x.Arities {
			if a != nil {
				shapes = append(shapes, arityShape{a.FixedArity, a.IsVariadic})
			}
		}
		v.arities(n, path, shapes, x.MaxFixedArity)
	case *Recur:
		if x.LoopID == "" {
			return
		}
		if len(v.loops) == 0 {
			v.add(n, childPath(path, "loop_id"), ErrCodeRecurTarget, "recur to %q outside any loop", x.LoopID)
		} else if inner := v.loops[len(v.loops)-1]; inner != x.LoopID {
			v.add(n, childPath(path, "loop_id"), ErrCodeRecurTarget, "recur to %q inside loop %q", x.LoopID, inner)
		}
	case *Map:
		v.pairs(n, path, x.Keys, x.Vals)
	case *HostDict:
		v.pairs(n, path, x.Keys, x.Vals)
	case *Binding:
		if x.ArgID != nil && x.Local != LocalArg {
			v.add(n, childPath(path, "arg_id"), ErrCodeArgIDNotArg, "arg id %d on %s binding %q", *x.ArgID, x.Local, x.Name)
		}
	}
}

type arityShape struct {
	fixed    int
	variadic bool
}

func (v *validator) arities(n Node, path string, shapes []arityShape, maxFixed int) {
	field := childPath(path, "arities")
	seen := make(map[int]bool)
	variadic := -1
	highest := 0
	for _, s := range shapes {
		if s.fixed > highest {
			highest = s.fixed
		}
		if s.variadic {
			if variadic >= 0 {
				v.add(n, field, ErrCodeMultipleVariadic, "%s has more than one variadic arity", n.Kind())
			}
			variadic = s.fixed
			continue
		}
		if seen[s.fixed] {
			v.add(n, field, ErrCodeDuplicateArity, "%s has two arities taking %d arguments", n.Kind(), s.fixed)
		}
		seen[s.fixed] = true
	}
	if variadic >= 0 {
		for _, fixed := range slices.Sorted(maps.Keys(seen)) {
			if fixed > variadic {
				v.add(n, field, ErrCodeFixedAboveVariadic,
					"fixed arity %d exceeds the %d fixed arguments of the variadic arity", fixed, variadic)
			}
		}
	}
	if len(shapes) > 0 && highest != maxFixed {
		v.add(n, childPath(path, "max_fixed_arity"), ErrCodeMaxFixedArity,
			"max fixed arity is %d but the arities allow %d", maxFixed, highest)
	}
}

func (v *validator) pairs(n Node, path string, keys, vals []Node) {
	if len(keys) != len(vals) {
		v.add(n, childPath(path, "vals"), ErrCodeUnpairedEntries,
			"%d keys but %d vals", len(keys), len(vals))
	}
}

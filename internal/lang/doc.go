// Package lang provides the reader-level values that analyzed nodes refer to.
//
// The analyzed tree never interprets these values. It stores them for
// diagnostics (the original form of a node), for dispatch (interned
// keywords used as kind and role tags), and for naming (the identifier
// sanitizer used to derive host-level names).
//
// lang imports nothing internal. internal/ir builds on top of it.
package lang

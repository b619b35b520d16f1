// Package loader reads and writes trees in their plain-mapping form.
//
// A tree file holds the mapping produced by ir.ToMap, serialized as JSON,
// YAML or CUE. Decoding goes back through ir.New, so the construction
// contract is enforced on every node read from disk. Forms survive the
// trip as reader text (lang.Text).
package loader

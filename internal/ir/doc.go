// Package ir provides the analyzed syntax tree for the compiler front end.
//
// The analyzer produces ir nodes from reader forms; the code generator
// consumes them. ir defines the node taxonomy and the operations every
// consumer relies on. All other internal packages import ir; ir imports only
// internal/lang.
//
// Key design constraints:
//   - Nodes are immutable once built. Rewrites copy (see FixMissingLocations,
//     WithEnv, Replace) and never mutate shared state, so one tree can be
//     read by any number of goroutines.
//   - Every node lists its child slots through Children. Visit and every
//     recursive algorithm in this package walk those slots, never struct
//     shape, so new node kinds need no changes to generic code.
//   - Contract violations (missing children, missing spans) are producer
//     defects. They fail loudly with *ContractError and are never patched.
//   - The plain mapping (ToMap) contains no floats, so canonical JSON and
//     NodeID are stable across platforms.
package ir

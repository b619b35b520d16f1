// Package harness runs tree scenarios: conformance tests for the location,
// naming and validation contracts of the IR.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	tree: trees/def_inc.yaml    # relative to the scenario file
//	fallback: "1:0-1:30"        # optional span for location repair
//	assertions:
//	  - type: kinds
//	    path: init.arities[0]
//	    kinds: [fn-arity, binding, do, local]
//	  - type: span
//	    path: init
//	    span: "1:0-1:30"
//	  - type: names
//	    path: init
//	    name: inc
//	    names: [_inc_arity1]
//	  - type: diagnostics
//	    codes: [E208]
//	  - type: count
//	    kind: local
//	    count: 2
//	  - type: fix_error
//	    error: no location information
//
// # Execution
//
// Run loads the tree, repairs its locations, validates it and caches it in
// a fresh in-memory store with a deterministic clock. The cached unit is
// read back and must hash to the same id. Assertions are then evaluated
// against the repaired tree.
//
// # Golden Files
//
// RunWithGolden compares an outline of the repaired tree (one line per
// node with its path, kind and span) and the diagnostics against
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness

// Package store provides a SQLite-backed cache of compilation units.
//
// A unit is a top-level tree stored as the canonical JSON of its plain
// mapping, keyed by ir.NodeID. Writing the same tree twice is a no-op, so
// the cache can be filled from any number of compiler runs.
//
// # Ordering
//
// Units carry a seq from a monotonic logical clock. Listings are ordered by
// seq ASC, id ASC COLLATE BINARY so results are identical across runs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store

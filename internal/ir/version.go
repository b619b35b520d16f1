package ir

// Version constants for the IR schema.
const (
	// IRVersion is the schema version of the plain mapping produced by ToMap.
	// Bump it whenever a key is renamed or a node kind changes shape.
	IRVersion = "1"
)

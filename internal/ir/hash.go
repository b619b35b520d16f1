package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows a future change of algorithm or mapping shape.
const (
	DomainNode = "lispir/node/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// NodeID computes the content-addressed identity of a node and its subtree.
//
// Two trees with equal plain mappings (see ToMap) have equal IDs, regardless
// of pointer identity. The ID covers env and raw forms, so the same code at
// a different location is a different unit.
func NodeID(n Node) (string, error) {
	canonical, err := MarshalCanonical(ToMap(n))
	if err != nil {
		return "", fmt.Errorf("NodeID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainNode, canonical), nil
}

// MustNodeID is like NodeID but panics on error.
// Use only in tests or when the tree is known to be well formed.
func MustNodeID(n Node) string {
	id, err := NodeID(n)
	if err != nil {
		panic(err)
	}
	return id
}

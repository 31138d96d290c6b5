// Package idgen generates short, URL-safe identifiers backed by nanoid.
// They tag outgoing API requests and export snapshots so a single
// dashboard action can be traced through the gateway, the cafe API and
// the event bus.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	RequestPrefix  = "req-"
	SnapshotPrefix = "snap-"
)

// Alphabet is the character set used for the random portion of an ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters (excluding the prefix).
var Length = 12

// RequestID returns a new X-Request-ID value.
func RequestID() string {
	id, err := GenerateWithPrefix(RequestPrefix)
	if err != nil {
		// crypto/rand only fails on a broken system; fall back to a fixed tag
		// so the request still goes out.
		return RequestPrefix + "unknown"
	}
	return id
}

// SnapshotID returns a new identifier for an exported page snapshot.
func SnapshotID() (string, error) {
	return GenerateWithPrefix(SnapshotPrefix)
}

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

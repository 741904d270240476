// Package idempotency issues the per-attempt keys attached to every
// charge-creating backend call.
package idempotency

import "github.com/google/uuid"

// Key is an opaque token minted once per submission attempt. The same key is
// never reused across two distinct charge attempts.
type Key string

func (k Key) String() string {
	return string(k)
}

// Issuer produces a fresh key per call.
type Issuer interface {
	Issue() Key
}

// Generator is the default Issuer, backed by UUID v4.
type Generator struct{}

var _ Issuer = Generator{}

func NewGenerator() Generator {
	return Generator{}
}

func (Generator) Issue() Key {
	return Key(uuid.NewString())
}

// Package identity is a read-only fact source for who is using the
// registration surface. Session state is owned elsewhere; nothing in this
// package mutates it.
package identity

import "context"

type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Handicap  *float64
}

type Identity struct {
	LoggedIn bool
	Profile  *Profile
}

type Resolver interface {
	CurrentIdentity(ctx context.Context) (Identity, error)
}

// StaticResolver always reports the same identity. Anonymous is the zero
// value.
type StaticResolver struct {
	identity Identity
}

var _ Resolver = StaticResolver{}

func NewStaticResolver(identity Identity) StaticResolver {
	return StaticResolver{identity: identity}
}

func (r StaticResolver) CurrentIdentity(ctx context.Context) (Identity, error) {
	return r.identity, nil
}

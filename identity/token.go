package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource returns the current session ID token, if any. It is supplied by
// the session collaborator that owns auth.
type TokenSource func(ctx context.Context) (string, bool)

// TokenResolver derives the member profile from the session ID token's
// claims. The token is parsed without signature verification: the session
// collaborator validated it at login, and this core only reads it as a
// display/prefill fact, never as an authorization decision.
type TokenResolver struct {
	source TokenSource
	logger *slog.Logger
}

var _ Resolver = &TokenResolver{}

func NewTokenResolver(source TokenSource, logger *slog.Logger) *TokenResolver {
	return &TokenResolver{
		source: source,
		logger: logger,
	}
}

type profileClaims struct {
	jwt.RegisteredClaims
	GivenName   string   `json:"given_name"`
	FamilyName  string   `json:"family_name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Handicap    *float64 `json:"handicap"`
}

func (r *TokenResolver) CurrentIdentity(ctx context.Context) (Identity, error) {
	raw, ok := r.source(ctx)
	if !ok || raw == "" {
		return Identity{}, nil
	}

	var claims profileClaims
	_, _, err := jwt.NewParser().ParseUnverified(raw, &claims)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to parse session token claims: %w", err)
	}

	r.logger.Debug("Resolved member identity", slog.String("email", claims.Email))

	return Identity{
		LoggedIn: true,
		Profile: &Profile{
			FirstName: claims.GivenName,
			LastName:  claims.FamilyName,
			Email:     claims.Email,
			Phone:     claims.PhoneNumber,
			Handicap:  claims.Handicap,
		},
	}, nil
}

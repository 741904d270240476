package identity

import (
	"context"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return raw
}

func TestTokenResolver(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("no session token means anonymous", func(t *testing.T) {
		resolver := NewTokenResolver(func(ctx context.Context) (string, bool) {
			return "", false
		}, logger)

		ident, err := resolver.CurrentIdentity(context.Background())
		assert.NoError(t, err)
		assert.False(t, ident.LoggedIn)
		assert.Nil(t, ident.Profile)
	})

	t.Run("profile is read from claims", func(t *testing.T) {
		raw := signedToken(t, jwt.MapClaims{
			"given_name":   "Dana",
			"family_name":  "Whitfield",
			"email":        "dana@example.com",
			"phone_number": "555-0134",
			"handicap":     12.4,
		})
		resolver := NewTokenResolver(func(ctx context.Context) (string, bool) {
			return raw, true
		}, logger)

		ident, err := resolver.CurrentIdentity(context.Background())
		assert.NoError(t, err)
		assert.True(t, ident.LoggedIn)

		handicap := 12.4
		want := &Profile{
			FirstName: "Dana",
			LastName:  "Whitfield",
			Email:     "dana@example.com",
			Phone:     "555-0134",
			Handicap:  &handicap,
		}
		assert.Empty(t, cmp.Diff(want, ident.Profile))
	})

	t.Run("malformed token is an error", func(t *testing.T) {
		resolver := NewTokenResolver(func(ctx context.Context) (string, bool) {
			return "not-a-jwt", true
		}, logger)

		_, err := resolver.CurrentIdentity(context.Background())
		assert.Error(t, err)
	})
}

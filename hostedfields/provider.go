package hostedfields

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Field names one of the three isolated card-entry containers.
type Field string

const (
	FIELD_CARD_NUMBER Field = "cardNumber"
	FIELD_EXPIRY      Field = "expirationDate"
	FIELD_CVV         Field = "cvv"
)

// Callbacks are the four lifecycle hooks the third-party field group fires.
// Tokenization has no synchronous result: exactly one of OnToken or OnTimeout
// fires per outstanding request.
type Callbacks struct {
	OnFieldsAvailable func()
	OnValidation      func(field Field, valid bool, message string)
	OnToken           func(token string)
	OnTimeout         func()
}

// Provider abstracts the third-party script global. Load injects the external
// resource and hands back the field group; raw card data never crosses this
// boundary.
type Provider interface {
	Load(ctx context.Context, credential string) (Fields, error)
}

// Fields is the loaded third-party field group.
type Fields interface {
	Mount(containers map[Field]string, cb Callbacks) error
	Tokenize() error
}

// RetryingProvider retries transient script-load failures with capped
// exponential backoff before giving up. CDN blips are common enough that one
// failed fetch should not condemn the whole payment surface.
type RetryingProvider struct {
	inner      Provider
	maxElapsed time.Duration
}

var _ Provider = &RetryingProvider{}

func NewRetryingProvider(inner Provider, maxElapsed time.Duration) *RetryingProvider {
	return &RetryingProvider{
		inner:      inner,
		maxElapsed: maxElapsed,
	}
}

func (p *RetryingProvider) Load(ctx context.Context, credential string) (Fields, error) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = p.maxElapsed

	return backoff.RetryWithData(func() (Fields, error) {
		return p.inner.Load(ctx, credential)
	}, backoff.WithContext(b, ctx))
}

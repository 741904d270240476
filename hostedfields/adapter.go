// Package hostedfields wraps the third-party iframe-isolated card-entry
// widget. The rest of the system only ever sees a tokenized result.
package hostedfields

import (
	"context"
	"log/slog"
	"sync"
)

// Adapter owns the lifecycle of the hosted field group:
// UNLOADED -> LOADING -> READY -> (TOKENIZING -> READY)*, with LOAD_ERROR as
// the terminal failure. The third-party global is loaded at most once; a
// second Initialize on a ready adapter is a no-op.
type Adapter struct {
	provider Provider
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	fields     Fields
	configured bool
	loading    chan struct{}
	loadErr    error
}

func NewAdapter(provider Provider, logger *slog.Logger) *Adapter {
	return &Adapter{
		provider: provider,
		logger:   logger,
		state:    UNLOADED,
	}
}

func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Initialize loads the third-party script. Idempotent: readiness is checked
// before loading, so a second surface reusing the adapter does not reload the
// script.
func (a *Adapter) Initialize(ctx context.Context, credential string) error {
	if credential == "" {
		return NewMissingCredentialError("no tokenization credential is configured")
	}

	a.mu.Lock()
	switch a.state {
	case READY, TOKENIZING:
		a.mu.Unlock()
		return nil
	case LOADING:
		// another caller is loading the script; wait for it to settle
		done := a.loading
		a.mu.Unlock()
		<-done

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.state == READY || a.state == TOKENIZING {
			return nil
		}
		return NewScriptLoadFailedError("failed to load hosted fields script", a.loadErr)
	}
	a.state = LOADING
	a.loading = make(chan struct{})
	a.mu.Unlock()

	fields, err := a.provider.Load(ctx, credential)

	a.mu.Lock()
	defer a.mu.Unlock()
	defer close(a.loading)

	if err != nil {
		a.state = LOAD_ERROR
		a.loadErr = err
		a.logger.Error("Failed to load hosted fields script", slog.String("error", err.Error()))
		return NewScriptLoadFailedError("failed to load hosted fields script", err)
	}

	a.fields = fields
	a.state = READY

	a.logger.Info("Hosted fields script loaded")

	return nil
}

// Configure binds the three field containers and registers the caller's
// callbacks. Calling before the adapter is READY is a caller error; the
// caller must defer until Initialize has completed.
func (a *Adapter) Configure(containers map[Field]string, cb Callbacks) error {
	a.mu.Lock()
	if a.state != READY {
		a.mu.Unlock()
		return NewNotReadyError("adapter must be ready before configuring fields")
	}
	fields := a.fields
	a.mu.Unlock()

	err := fields.Mount(containers, Callbacks{
		OnFieldsAvailable: func() {
			if cb.OnFieldsAvailable != nil {
				cb.OnFieldsAvailable()
			}
		},
		OnValidation: func(field Field, valid bool, message string) {
			if cb.OnValidation != nil {
				cb.OnValidation(field, valid, message)
			}
		},
		OnToken: func(token string) {
			a.settleTokenization()
			if cb.OnToken != nil {
				cb.OnToken(token)
			}
		},
		OnTimeout: func() {
			a.settleTokenization()
			if cb.OnTimeout != nil {
				cb.OnTimeout()
			}
		},
	})
	if err != nil {
		return NewScriptLoadFailedError("failed to mount hosted field containers", err)
	}

	a.mu.Lock()
	a.configured = true
	a.mu.Unlock()

	return nil
}

// RequestToken triggers tokenization of the currently entered field data.
// There is no synchronous result: resolution arrives via the OnToken or
// OnTimeout callback, and only one request may be outstanding at a time.
func (a *Adapter) RequestToken() error {
	a.mu.Lock()

	if a.state == TOKENIZING {
		a.mu.Unlock()
		return NewTokenizeInFlightError("a tokenization request is already outstanding")
	}
	if a.state != READY {
		a.mu.Unlock()
		return NewNotReadyError("adapter is not ready to tokenize")
	}
	if !a.configured {
		a.mu.Unlock()
		return NewNotConfiguredError("fields must be configured before tokenizing")
	}

	a.state = TOKENIZING
	fields := a.fields
	a.mu.Unlock()

	err := fields.Tokenize()
	if err != nil {
		a.settleTokenization()
		return NewTokenizationFailedError("failed to start tokenization", err)
	}

	return nil
}

func (a *Adapter) settleTokenization() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == TOKENIZING {
		a.state = READY
	}
}

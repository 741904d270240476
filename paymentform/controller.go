// Package paymentform is the single payment surface every paying flow uses:
// it collects card input through the hosted field adapter and hands back one
// single-use token.
package paymentform

import (
	"log/slog"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/lakeside-golf-association/registration-checkout/hostedfields"
)

// Adapter is the slice of the hosted field adapter the controller needs.
type Adapter interface {
	Configure(containers map[hostedfields.Field]string, cb hostedfields.Callbacks) error
	RequestToken() error
	State() hostedfields.State
}

// ViewState is what one render of the payment form shows.
type ViewState struct {
	AmountDisplay  string
	SubmitLabel    string
	SubmitDisabled bool
	FieldErrors    map[hostedfields.Field]string
	ExternalError  string
}

// Controller aggregates per-field validation state and exposes a single
// Submit. It forwards each token exactly once and never retains it.
type Controller struct {
	adapter Adapter
	onToken func(token string)
	onError func(message string)
	logger  *slog.Logger

	mu              sync.Mutex
	fieldsAvailable bool
	tokenizing      bool
	fieldErrors     map[hostedfields.Field]string
}

// NewController binds the field containers and registers the controller's
// callbacks on the adapter. onToken and onError are the caller's only way to
// hear back; tokens are forwarded, never stored.
func NewController(adapter Adapter, containers map[hostedfields.Field]string, onToken func(token string), onError func(message string), logger *slog.Logger) (*Controller, error) {
	c := &Controller{
		adapter:     adapter,
		onToken:     onToken,
		onError:     onError,
		logger:      logger,
		fieldErrors: map[hostedfields.Field]string{},
	}

	err := adapter.Configure(containers, hostedfields.Callbacks{
		OnFieldsAvailable: c.handleFieldsAvailable,
		OnValidation:      c.handleValidation,
		OnToken:           c.handleToken,
		OnTimeout:         c.handleTimeout,
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Render computes the current view. externalError is display-only, injected
// by the caller (a prior decline reason); the controller never originates it.
func (c *Controller) Render(amount *money.Money, submitLabel string, externalError string) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	amountDisplay := ""
	if amount != nil {
		amountDisplay = amount.Display()
	}

	fieldErrors := map[hostedfields.Field]string{}
	for field, message := range c.fieldErrors {
		fieldErrors[field] = message
	}

	return ViewState{
		AmountDisplay:  amountDisplay,
		SubmitLabel:    submitLabel,
		SubmitDisabled: c.submitDisabledLocked(),
		FieldErrors:    fieldErrors,
		ExternalError:  externalError,
	}
}

// HasValidationErrors is the OR of all field error states, recomputed on
// every validation event.
func (c *Controller) HasValidationErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fieldErrors) > 0
}

// Submit requests tokenization. Refused while the SDK is not ready, a
// tokenization is already in flight, or any field is invalid. Resolution
// arrives via onToken or onError.
func (c *Controller) Submit() error {
	c.mu.Lock()
	if c.submitDisabledLocked() {
		c.mu.Unlock()
		return hostedfields.NewNotReadyError("payment form is not ready to submit")
	}
	c.tokenizing = true
	c.mu.Unlock()

	err := c.adapter.RequestToken()
	if err != nil {
		c.mu.Lock()
		c.tokenizing = false
		c.mu.Unlock()

		c.logger.Warn("Tokenization request failed", slog.String("error", err.Error()))
		c.onError("We couldn't process your card details. Please check them and try again.")
	}

	return nil
}

func (c *Controller) submitDisabledLocked() bool {
	if !c.fieldsAvailable || c.tokenizing || len(c.fieldErrors) > 0 {
		return true
	}
	return c.adapter.State() != hostedfields.READY
}

func (c *Controller) handleFieldsAvailable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fieldsAvailable = true
}

func (c *Controller) handleValidation(field hostedfields.Field, valid bool, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if valid {
		delete(c.fieldErrors, field)
	} else {
		c.fieldErrors[field] = message
	}
}

func (c *Controller) handleToken(token string) {
	c.mu.Lock()
	c.tokenizing = false
	c.mu.Unlock()

	c.onToken(token)
}

func (c *Controller) handleTimeout() {
	c.mu.Lock()
	c.tokenizing = false
	c.mu.Unlock()

	c.logger.Warn("Tokenization timed out")
	c.onError("The payment service did not respond. Please try again.")
}

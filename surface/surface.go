// Package surface wires one registration surface together: hosted field
// adapter, payment form controller, and orchestrator. A surface owns its
// intent and flow state exclusively; nothing here is shared between two open
// surfaces except the adapter's underlying script global.
package surface

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lakeside-golf-association/registration-checkout/checkout"
	"github.com/lakeside-golf-association/registration-checkout/hostedfields"
	"github.com/lakeside-golf-association/registration-checkout/idempotency"
	"github.com/lakeside-golf-association/registration-checkout/identity"
	"github.com/lakeside-golf-association/registration-checkout/paymentform"
)

type Config struct {
	Intent     checkout.Intent
	Client     checkout.Client
	Resolver   identity.Resolver
	Provider   hostedfields.Provider
	Credential string
	Containers map[hostedfields.Field]string
	Logger     *slog.Logger

	// OnOutcome fires once per attempt that reaches a terminal or
	// semi-terminal state.
	OnOutcome func(outcome checkout.Outcome)
}

type Surface struct {
	ctx          context.Context
	orchestrator *checkout.Orchestrator
	form         *paymentform.Controller
	logger       *slog.Logger
	onOutcome    func(outcome checkout.Outcome)

	formError string
}

// Open mounts a registration surface. The payment form is only brought up
// when the intent actually has an amount due; free registrations never touch
// the hosted fields at all.
func Open(ctx context.Context, cfg Config) (*Surface, error) {
	orchestrator, err := checkout.NewOrchestrator(ctx, cfg.Intent, cfg.Client, cfg.Resolver, idempotency.NewGenerator(), cfg.Logger)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		ctx:          ctx,
		orchestrator: orchestrator,
		logger:       cfg.Logger,
		onOutcome:    cfg.OnOutcome,
	}

	if !cfg.Intent.RequiresPayment() {
		return s, nil
	}

	adapter := hostedfields.NewAdapter(cfg.Provider, cfg.Logger)
	err = adapter.Initialize(ctx, cfg.Credential)
	if err != nil {
		return nil, err
	}

	form, err := paymentform.NewController(adapter, cfg.Containers, s.handleToken, s.handleFormError, cfg.Logger)
	if err != nil {
		return nil, err
	}
	s.form = form

	return s, nil
}

func (s *Surface) State() checkout.FlowState {
	return s.orchestrator.State()
}

func (s *Surface) Outcome() checkout.Outcome {
	return s.orchestrator.Outcome()
}

// Form returns the payment form controller, nil on free flows.
func (s *Surface) Form() *paymentform.Controller {
	return s.form
}

// Submit starts one attempt. Free intents go straight to the backend; paying
// intents hand off to the payment form, and the attempt resolves through the
// token or error callback.
func (s *Surface) Submit() error {
	if s.form == nil {
		outcome, err := s.orchestrator.SubmitFree(s.ctx)
		if err != nil {
			return err
		}
		s.settle(outcome)
		return nil
	}

	err := s.orchestrator.BeginTokenizing()
	if err != nil {
		return err
	}

	err = s.form.Submit()
	if err != nil {
		s.orchestrator.TokenizationFailed()
		return err
	}

	return nil
}

// Retry re-opens the form after a decline, keeping the failed registration
// id so the next attempt settles the existing record.
func (s *Surface) Retry() error {
	s.formError = ""
	return s.orchestrator.Retry()
}

// FormError is the display-only message carried into the next render: a
// tokenization failure or the last decline reason.
func (s *Surface) FormError() string {
	if declined, ok := s.orchestrator.Outcome().(checkout.Declined); ok {
		return declined.Reason
	}
	return s.formError
}

func (s *Surface) handleToken(token string) {
	outcome, err := s.orchestrator.SubmitToken(s.ctx, token)
	if err != nil {
		s.logger.Error("Failed to submit payment token", slog.String("error", err.Error()))
		s.orchestrator.TokenizationFailed()

		var checkoutErr *checkout.Error
		if errors.As(err, &checkoutErr) {
			s.formError = checkoutErr.Message
		} else {
			s.formError = "Something went wrong. Please try again."
		}
		return
	}
	s.settle(outcome)
}

func (s *Surface) handleFormError(message string) {
	s.orchestrator.TokenizationFailed()
	s.formError = message
}

func (s *Surface) settle(outcome checkout.Outcome) {
	if s.onOutcome != nil {
		s.onOutcome(outcome)
	}
}

// Package checkout turns a user's intent to register for an event or buy a
// membership into a confirmed, exactly-once-charged record. It owns the flow
// state machine, decides which backend operation to call, and attaches the
// idempotency key to every charge attempt.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lakeside-golf-association/registration-checkout/idempotency"
	"github.com/lakeside-golf-association/registration-checkout/identity"
)

// Orchestrator drives one registration surface. It is owned exclusively by
// that surface; no two surfaces share an instance.
//
// Transitions: STATE_FORM -> STATE_TOKENIZING -> STATE_SUBMITTING ->
// {STATE_CONFIRMED | STATE_DECLINED | STATE_DATA_ERROR}, with
// STATE_DECLINED -> STATE_FORM (retry) as the only cycle.
type Orchestrator struct {
	intent Intent
	ident  identity.Identity
	client Client
	issuer idempotency.Issuer
	logger *slog.Logger

	mu                   sync.Mutex
	state                FlowState
	failedRegistrationID *int64
	outcome              Outcome
}

// NewOrchestrator resolves the current identity once for the lifetime of the
// surface. Member flows get their contact pre-filled from the profile; the
// intent's own contact is ignored for them.
func NewOrchestrator(ctx context.Context, intent Intent, client Client, resolver identity.Resolver, issuer idempotency.Issuer, logger *slog.Logger) (*Orchestrator, error) {
	ident, err := resolver.CurrentIdentity(ctx)
	if err != nil {
		return nil, NewIdentityRequiredError("failed to resolve current identity", err)
	}

	if intent.Kind == MEMBER_EVENT_REGISTRATION && !ident.LoggedIn {
		return nil, NewIdentityRequiredError("member registration requires a logged-in member", nil)
	}

	if ident.LoggedIn && ident.Profile != nil && intent.Kind != MEMBERSHIP_PURCHASE {
		intent.Contact = Contact{
			FirstName: ident.Profile.FirstName,
			LastName:  ident.Profile.LastName,
			Email:     ident.Profile.Email,
			Phone:     ident.Profile.Phone,
			Handicap:  ident.Profile.Handicap,
		}
	}

	return &Orchestrator{
		intent: intent,
		ident:  ident,
		client: client,
		issuer: issuer,
		logger: logger,
		state:  STATE_FORM,
	}, nil
}

func (o *Orchestrator) State() FlowState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Outcome() Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.outcome
}

func (o *Orchestrator) Intent() Intent {
	return o.intent
}

func (o *Orchestrator) FailedRegistrationID() *int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.failedRegistrationID
}

// BeginTokenizing marks the hand-off to the payment form. Only valid from
// the form state.
func (o *Orchestrator) BeginTokenizing() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != STATE_FORM {
		return NewInvalidFlowStateError("can only start tokenizing from the form")
	}
	o.state = STATE_TOKENIZING
	return nil
}

// TokenizationFailed returns the surface to the form after a tokenization
// timeout or synchronous failure. No registration record is involved.
func (o *Orchestrator) TokenizationFailed() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == STATE_TOKENIZING {
		o.state = STATE_FORM
	}
}

// SubmitFree registers without a payment token. Legal only when the intent
// carries no amount due.
func (o *Orchestrator) SubmitFree(ctx context.Context) (Outcome, error) {
	if o.intent.RequiresPayment() {
		return nil, NewPaymentRequiredError("this registration has an amount due and needs a payment token")
	}
	return o.submit(ctx, "")
}

// SubmitToken submits the single-use payment token with a freshly minted
// idempotency key. The token is discarded after this call, success or
// failure.
func (o *Orchestrator) SubmitToken(ctx context.Context, token string) (Outcome, error) {
	if token == "" {
		return nil, NewMissingTokenError("a payment token is required")
	}
	return o.submit(ctx, token)
}

// Retry re-enters the form after a decline. The failed registration id is
// kept so the next submission settles payment on the existing record; the
// spent token and key are already gone.
func (o *Orchestrator) Retry() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != STATE_DECLINED {
		return NewInvalidFlowStateError("retry is only available after a decline")
	}
	o.state = STATE_FORM
	o.outcome = nil
	return nil
}

func (o *Orchestrator) submit(ctx context.Context, token string) (Outcome, error) {
	o.mu.Lock()
	if o.state == STATE_SUBMITTING {
		o.mu.Unlock()
		return nil, NewSubmissionInFlightError("a submission is already in flight")
	}
	if o.state != STATE_FORM && o.state != STATE_TOKENIZING {
		o.mu.Unlock()
		return nil, NewInvalidFlowStateError("cannot submit from state " + o.state.String())
	}

	if err := o.validate(); err != nil {
		// a validation rejection must not wedge a tokenizing surface
		if o.state == STATE_TOKENIZING {
			o.state = STATE_FORM
		}
		o.mu.Unlock()
		return nil, err
	}

	o.state = STATE_SUBMITTING
	failedID := o.failedRegistrationID
	o.mu.Unlock()

	key := o.issuer.Issue()

	o.logger.Info("Submitting registration",
		slog.String("flowKind", o.intent.Kind.String()),
		slog.String("subjectId", o.intent.SubjectID.String()),
		slog.Bool("isRetry", failedID != nil),
	)

	result, err := o.dispatch(ctx, token, key, failedID)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		return o.settleFailure(err), nil
	}

	o.state = STATE_CONFIRMED
	o.outcome = Confirmed{
		ConfirmationID: result.ConfirmationID,
		AmountCharged:  result.AmountCharged,
	}
	return o.outcome, nil
}

// validate runs the client-side checks that must block before any network
// call. Caller holds the lock.
func (o *Orchestrator) validate() error {
	if err := validateHandicap(o.intent.Contact.Handicap); err != nil {
		return err
	}

	if o.intent.Kind == GUEST_EVENT_REGISTRATION && !o.ident.LoggedIn {
		c := o.intent.Contact
		if c.FirstName == "" || c.LastName == "" || c.Email == "" {
			return NewMissingContactError("guest registration requires name and email")
		}
	}

	return nil
}

// dispatch picks the backend operation, in priority order: settle a failed
// record, then the flow the intent asked for.
func (o *Orchestrator) dispatch(ctx context.Context, token string, key idempotency.Key, failedID *int64) (SubmissionResult, error) {
	if failedID != nil {
		return o.client.RetryPayment(ctx, PaymentRetry{
			RegistrationID: *failedID,
			PaymentToken:   token,
			IdempotencyKey: key,
		})
	}

	switch o.intent.Kind {
	case MEMBERSHIP_PURCHASE:
		return o.client.PurchaseMembership(ctx, MembershipPurchase{
			TierID:         o.intent.SubjectID,
			PaymentToken:   token,
			IdempotencyKey: key,
		})
	default:
		if o.ident.LoggedIn {
			return o.client.RegisterMember(ctx, MemberRegistration{
				EventID:        o.intent.SubjectID,
				Handicap:       o.intent.Contact.Handicap,
				PaymentToken:   token,
				IdempotencyKey: key,
			})
		}

		return o.client.RegisterGuest(ctx, GuestRegistration{
			EventID:        o.intent.SubjectID,
			FirstName:      o.intent.Contact.FirstName,
			LastName:       o.intent.Contact.LastName,
			Email:          o.intent.Contact.Email,
			Phone:          o.intent.Contact.Phone,
			Handicap:       o.intent.Contact.Handicap,
			PaymentToken:   token,
			IdempotencyKey: key,
		})
	}
}

// settleFailure maps a backend error onto the declined or data-error state.
// Caller holds the lock.
func (o *Orchestrator) settleFailure(err error) Outcome {
	var checkoutErr *Error
	if errors.As(err, &checkoutErr) &&
		checkoutErr.Reason == REASON_PAYMENT_DECLINED &&
		checkoutErr.RegistrationID != nil &&
		o.intent.Kind != MEMBERSHIP_PURCHASE {
		o.logger.Warn("Payment declined",
			slog.Int64("registrationId", *checkoutErr.RegistrationID),
			slog.String("reason", checkoutErr.Message),
		)

		o.failedRegistrationID = checkoutErr.RegistrationID
		o.state = STATE_DECLINED
		o.outcome = Declined{
			FailedRegistrationID: checkoutErr.RegistrationID,
			Reason:               checkoutErr.Message,
		}
		return o.outcome
	}

	o.logger.Error("Registration submission failed", slog.String("error", err.Error()))

	reason := "Something went wrong submitting your registration. Please try again."
	if checkoutErr != nil && checkoutErr.Reason == REASON_PAYMENT_DECLINED {
		reason = checkoutErr.Message
	}

	o.state = STATE_DATA_ERROR
	o.outcome = DataError{Reason: reason}
	return o.outcome
}

package checkout

import (
	"context"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/lakeside-golf-association/registration-checkout/idempotency"
)

// Client is the backend boundary the orchestrator submits against. Declines
// and failures come back as *Error values so the orchestrator only has to
// distinguish "has a registration id" from "does not".
type Client interface {
	RegisterMember(ctx context.Context, req MemberRegistration) (SubmissionResult, error)
	RegisterGuest(ctx context.Context, req GuestRegistration) (SubmissionResult, error)
	RetryPayment(ctx context.Context, req PaymentRetry) (SubmissionResult, error)
	PurchaseMembership(ctx context.Context, req MembershipPurchase) (SubmissionResult, error)
}

type SubmissionResult struct {
	ConfirmationID string
	AmountCharged  *money.Money
}

// MemberRegistration registers the logged-in member for an event.
// PaymentToken is empty on the free-event path.
type MemberRegistration struct {
	EventID        uuid.UUID
	Handicap       *float64
	PaymentToken   string
	IdempotencyKey idempotency.Key
}

type GuestRegistration struct {
	EventID        uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Handicap       *float64
	PaymentToken   string
	IdempotencyKey idempotency.Key
}

// PaymentRetry settles payment on a registration record that already exists.
type PaymentRetry struct {
	RegistrationID int64
	PaymentToken   string
	IdempotencyKey idempotency.Key
}

type MembershipPurchase struct {
	TierID         uuid.UUID
	PaymentToken   string
	IdempotencyKey idempotency.Key
}

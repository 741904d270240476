package surface

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/lakeside-golf-association/registration-checkout/checkout"
	"github.com/lakeside-golf-association/registration-checkout/hostedfields"
	"github.com/lakeside-golf-association/registration-checkout/identity"
	"github.com/lakeside-golf-association/registration-checkout/ptr"
	"github.com/stretchr/testify/assert"
)

type fakeFields struct {
	cb hostedfields.Callbacks
}

func (f *fakeFields) Mount(containers map[hostedfields.Field]string, cb hostedfields.Callbacks) error {
	f.cb = cb
	return nil
}

func (f *fakeFields) Tokenize() error {
	return nil
}

type fakeProvider struct {
	fields *fakeFields
}

func (p *fakeProvider) Load(ctx context.Context, credential string) (hostedfields.Fields, error) {
	return p.fields, nil
}

var _ checkout.Client = &scriptedClient{}

type scriptedClient struct {
	RegisterGuestFunc func(ctx context.Context, req checkout.GuestRegistration) (checkout.SubmissionResult, error)
	RetryPaymentFunc  func(ctx context.Context, req checkout.PaymentRetry) (checkout.SubmissionResult, error)

	memberCalls int
}

func (c *scriptedClient) RegisterMember(ctx context.Context, req checkout.MemberRegistration) (checkout.SubmissionResult, error) {
	c.memberCalls++
	return checkout.SubmissionResult{ConfirmationID: "FREE1"}, nil
}

func (c *scriptedClient) RegisterGuest(ctx context.Context, req checkout.GuestRegistration) (checkout.SubmissionResult, error) {
	return c.RegisterGuestFunc(ctx, req)
}

func (c *scriptedClient) RetryPayment(ctx context.Context, req checkout.PaymentRetry) (checkout.SubmissionResult, error) {
	return c.RetryPaymentFunc(ctx, req)
}

func (c *scriptedClient) PurchaseMembership(ctx context.Context, req checkout.MembershipPurchase) (checkout.SubmissionResult, error) {
	return checkout.SubmissionResult{}, errors.New("unexpected PurchaseMembership call")
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestFreeFlowNeverTouchesHostedFields(t *testing.T) {
	client := &scriptedClient{}
	var outcomes []checkout.Outcome

	// no provider or credential at all: a free intent must not need them
	s, err := Open(context.Background(), Config{
		Intent: checkout.Intent{
			Kind:      checkout.MEMBER_EVENT_REGISTRATION,
			SubjectID: uuid.New(),
		},
		Client: client,
		Resolver: identity.NewStaticResolver(identity.Identity{
			LoggedIn: true,
			Profile:  &identity.Profile{Email: "dana@example.com"},
		}),
		Logger: testLogger(),
		OnOutcome: func(outcome checkout.Outcome) {
			outcomes = append(outcomes, outcome)
		},
	})
	assert.NoError(t, err)
	assert.Nil(t, s.Form())

	assert.NoError(t, s.Submit())
	assert.Equal(t, checkout.STATE_CONFIRMED, s.State())
	assert.Equal(t, 1, client.memberCalls)
	assert.Len(t, outcomes, 1)
}

func TestGuestDeclineRetryFlow(t *testing.T) {
	fields := &fakeFields{}
	retried := false
	client := &scriptedClient{
		RegisterGuestFunc: func(ctx context.Context, req checkout.GuestRegistration) (checkout.SubmissionResult, error) {
			assert.Equal(t, "tok_a", req.PaymentToken)
			return checkout.SubmissionResult{}, checkout.NewPaymentDeclinedError("declined", ptr.Int64(42))
		},
		RetryPaymentFunc: func(ctx context.Context, req checkout.PaymentRetry) (checkout.SubmissionResult, error) {
			retried = true
			assert.Equal(t, int64(42), req.RegistrationID)
			assert.Equal(t, "tok_b", req.PaymentToken)
			return checkout.SubmissionResult{ConfirmationID: "CONF456", AmountCharged: money.New(8500, "USD")}, nil
		},
	}

	s, err := Open(context.Background(), Config{
		Intent: checkout.Intent{
			Kind:      checkout.GUEST_EVENT_REGISTRATION,
			SubjectID: uuid.New(),
			Contact: checkout.Contact{
				FirstName: "Riley",
				LastName:  "Park",
				Email:     "riley@example.com",
			},
			AmountDue: money.New(8500, "USD"),
		},
		Client:     client,
		Resolver:   identity.NewStaticResolver(identity.Identity{}),
		Provider:   &fakeProvider{fields: fields},
		Credential: "tokenization-key",
		Containers: map[hostedfields.Field]string{
			hostedfields.FIELD_CARD_NUMBER: "#card-number",
			hostedfields.FIELD_EXPIRY:      "#expiry",
			hostedfields.FIELD_CVV:         "#cvv",
		},
		Logger: testLogger(),
	})
	assert.NoError(t, err)
	assert.NotNil(t, s.Form())

	fields.cb.OnFieldsAvailable()

	assert.NoError(t, s.Submit())
	fields.cb.OnToken("tok_a")

	assert.Equal(t, checkout.STATE_DECLINED, s.State())
	assert.Equal(t, "declined", s.FormError())

	assert.NoError(t, s.Retry())
	assert.Equal(t, checkout.STATE_FORM, s.State())

	assert.NoError(t, s.Submit())
	fields.cb.OnToken("tok_b")

	assert.True(t, retried)
	assert.Equal(t, checkout.STATE_CONFIRMED, s.State())

	confirmed, ok := s.Outcome().(checkout.Confirmed)
	assert.True(t, ok)
	assert.Equal(t, "CONF456", confirmed.ConfirmationID)
}

func TestRejectedFormDataReturnsToForm(t *testing.T) {
	fields := &fakeFields{}
	client := &scriptedClient{
		RegisterGuestFunc: func(ctx context.Context, req checkout.GuestRegistration) (checkout.SubmissionResult, error) {
			return checkout.SubmissionResult{}, errors.New("unexpected RegisterGuest call")
		},
	}
	s, err := Open(context.Background(), Config{
		Intent: checkout.Intent{
			Kind:      checkout.GUEST_EVENT_REGISTRATION,
			SubjectID: uuid.New(),
			Contact: checkout.Contact{
				FirstName: "Riley",
				LastName:  "Park",
				Email:     "riley@example.com",
				Handicap:  ptr.Float64(30.1),
			},
			AmountDue: money.New(8500, "USD"),
		},
		Client:     client,
		Resolver:   identity.NewStaticResolver(identity.Identity{}),
		Provider:   &fakeProvider{fields: fields},
		Credential: "tokenization-key",
		Containers: map[hostedfields.Field]string{},
		Logger:     testLogger(),
	})
	assert.NoError(t, err)

	fields.cb.OnFieldsAvailable()

	assert.NoError(t, s.Submit())
	fields.cb.OnToken("tok_a")

	assert.Equal(t, checkout.STATE_FORM, s.State())
	assert.Contains(t, s.FormError(), "Handicap")

	// a corrected form must be able to go again
	assert.NoError(t, s.Submit())
	fields.cb.OnTimeout()
	assert.Equal(t, checkout.STATE_FORM, s.State())
}

func TestTokenizationTimeoutReturnsToForm(t *testing.T) {
	fields := &fakeFields{}
	s, err := Open(context.Background(), Config{
		Intent: checkout.Intent{
			Kind:      checkout.GUEST_EVENT_REGISTRATION,
			SubjectID: uuid.New(),
			Contact: checkout.Contact{
				FirstName: "Riley",
				LastName:  "Park",
				Email:     "riley@example.com",
			},
			AmountDue: money.New(8500, "USD"),
		},
		Client:     &scriptedClient{},
		Resolver:   identity.NewStaticResolver(identity.Identity{}),
		Provider:   &fakeProvider{fields: fields},
		Credential: "tokenization-key",
		Containers: map[hostedfields.Field]string{},
		Logger:     testLogger(),
	})
	assert.NoError(t, err)

	fields.cb.OnFieldsAvailable()

	assert.NoError(t, s.Submit())
	assert.Equal(t, checkout.STATE_TOKENIZING, s.State())

	fields.cb.OnTimeout()
	assert.Equal(t, checkout.STATE_FORM, s.State())
	assert.NotEmpty(t, s.FormError())

	// surface is recoverable: a second attempt can start
	assert.NoError(t, s.Submit())
}

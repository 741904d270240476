// Package backend is the REST client for the association backend's
// registration and membership endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/lakeside-golf-association/registration-checkout/checkout"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/lakeside-golf-association/registration-checkout/backend"
	maxResponseSize = 65536
	defaultCurrency = "USD"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
}

var _ checkout.Client = &Client{}

// NewClient builds a client for the backend at baseURL. Pass a nil httpClient
// to get a default with a 30 second timeout; request timeouts surface to the
// orchestrator as data errors.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: NewLoggingTransport(nil, logger),
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

type memberRegistrationRequest struct {
	EventID        string   `json:"event_id"`
	Handicap       *float64 `json:"handicap,omitempty"`
	PaymentToken   *string  `json:"payment_token,omitempty"`
	IdempotencyKey string   `json:"idempotency_key"`
}

type guestRegistrationRequest struct {
	EventID        string   `json:"event_id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Handicap       *float64 `json:"handicap,omitempty"`
	PaymentToken   *string  `json:"payment_token,omitempty"`
	IdempotencyKey string   `json:"idempotency_key"`
}

type retryPaymentRequest struct {
	PaymentToken   string `json:"payment_token"`
	IdempotencyKey string `json:"idempotency_key"`
}

type membershipPayRequest struct {
	TierID         string `json:"tier_id"`
	PaymentToken   string `json:"payment_token"`
	IdempotencyKey string `json:"idempotency_key"`
}

type submissionResponse struct {
	ConfirmationID string `json:"confirmation_id"`
	Amount         *int64 `json:"amount,omitempty"`
	Currency       string `json:"currency,omitempty"`
}

type errorResponse struct {
	Detail         string `json:"detail"`
	RegistrationID *int64 `json:"registration_id,omitempty"`
}

func (c *Client) RegisterMember(ctx context.Context, req checkout.MemberRegistration) (checkout.SubmissionResult, error) {
	return c.post(ctx, "RegisterMember", "/registrations", memberRegistrationRequest{
		EventID:        req.EventID.String(),
		Handicap:       req.Handicap,
		PaymentToken:   optionalToken(req.PaymentToken),
		IdempotencyKey: req.IdempotencyKey.String(),
	})
}

func (c *Client) RegisterGuest(ctx context.Context, req checkout.GuestRegistration) (checkout.SubmissionResult, error) {
	return c.post(ctx, "RegisterGuest", "/registrations/guest", guestRegistrationRequest{
		EventID:        req.EventID.String(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Handicap:       req.Handicap,
		PaymentToken:   optionalToken(req.PaymentToken),
		IdempotencyKey: req.IdempotencyKey.String(),
	})
}

func (c *Client) RetryPayment(ctx context.Context, req checkout.PaymentRetry) (checkout.SubmissionResult, error) {
	return c.post(ctx, "RetryPayment", fmt.Sprintf("/registrations/%d/retry-payment", req.RegistrationID), retryPaymentRequest{
		PaymentToken:   req.PaymentToken,
		IdempotencyKey: req.IdempotencyKey.String(),
	})
}

func (c *Client) PurchaseMembership(ctx context.Context, req checkout.MembershipPurchase) (checkout.SubmissionResult, error) {
	return c.post(ctx, "PurchaseMembership", "/memberships/pay", membershipPayRequest{
		TierID:         req.TierID.String(),
		PaymentToken:   req.PaymentToken,
		IdempotencyKey: req.IdempotencyKey.String(),
	})
}

func (c *Client) post(ctx context.Context, operation string, path string, body any) (checkout.SubmissionResult, error) {
	ctx, span := c.tracer.Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	payload, err := json.Marshal(body)
	if err != nil {
		return checkout.SubmissionResult{}, checkout.NewBackendFailureError("failed to encode request body", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return checkout.SubmissionResult{}, checkout.NewBackendFailureError("failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return checkout.SubmissionResult{}, checkout.NewBackendFailureError("failed to reach registration backend", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return checkout.SubmissionResult{}, checkout.NewInvalidResponseError("failed to read response body", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var out submissionResponse
		err := json.Unmarshal(respBody, &out)
		if err != nil {
			return checkout.SubmissionResult{}, checkout.NewInvalidResponseError("failed to decode response body", err)
		}

		return checkout.SubmissionResult{
			ConfirmationID: out.ConfirmationID,
			AmountCharged:  amountToMoney(out),
		}, nil
	}

	return checkout.SubmissionResult{}, c.mapErrorResponse(resp.StatusCode, respBody)
}

// mapErrorResponse distinguishes exactly two failure shapes: an error that
// carries a registration id (the record exists, payment did not settle) and
// everything else.
func (c *Client) mapErrorResponse(statusCode int, body []byte) error {
	var errResp errorResponse
	err := json.Unmarshal(body, &errResp)
	if err != nil {
		c.logger.Warn("Backend error response was not decodable", slog.Int("status-code", statusCode))
		return checkout.NewBackendFailureError(fmt.Sprintf("backend returned status %d", statusCode), err)
	}

	// the registration id decides the shape; detail is display only and may
	// be missing
	if errResp.RegistrationID != nil {
		detail := errResp.Detail
		if detail == "" {
			detail = "Payment was declined"
		}
		return checkout.NewPaymentDeclinedError(detail, errResp.RegistrationID)
	}

	if errResp.Detail == "" {
		c.logger.Warn("Backend error response had no detail", slog.Int("status-code", statusCode))
		return checkout.NewBackendFailureError(fmt.Sprintf("backend returned status %d", statusCode), nil)
	}

	return checkout.NewBackendFailureError(errResp.Detail, nil)
}

func amountToMoney(resp submissionResponse) *money.Money {
	if resp.Amount == nil {
		return nil
	}

	currency := resp.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return money.New(*resp.Amount, currency)
}

func optionalToken(token string) *string {
	if token == "" {
		return nil
	}
	return &token
}

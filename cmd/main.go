// Smoke tool for the registration flow: drives one registration attempt
// against an env-configured backend. Paying flows expect a pre-acquired
// payment token, since card entry lives in the hosted fields surface.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/lakeside-golf-association/registration-checkout/backend"
	"github.com/lakeside-golf-association/registration-checkout/checkout"
	"github.com/lakeside-golf-association/registration-checkout/idempotency"
	"github.com/lakeside-golf-association/registration-checkout/identity"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	settings, err := getSettingsFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %s\n", err)
		os.Exit(1)
	}

	client := backend.NewClient(settings.BackendURL, nil, logger)

	resolver := identity.NewTokenResolver(func(ctx context.Context) (string, bool) {
		return settings.SessionToken, settings.SessionToken != ""
	}, logger)

	intent := checkout.Intent{
		Kind:      settings.FlowKind,
		SubjectID: settings.SubjectID,
		Contact: checkout.Contact{
			FirstName: getEnvOrDefault("GUEST_FIRST_NAME", ""),
			LastName:  getEnvOrDefault("GUEST_LAST_NAME", ""),
			Email:     getEnvOrDefault("GUEST_EMAIL", ""),
			Phone:     getEnvOrDefault("GUEST_PHONE", ""),
		},
		AmountDue: settings.AmountDue,
	}

	ctx := context.Background()

	orchestrator, err := checkout.NewOrchestrator(ctx, intent, client, resolver, idempotency.NewGenerator(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open registration flow: %s\n", err)
		os.Exit(1)
	}

	var outcome checkout.Outcome
	if settings.PaymentToken != "" {
		outcome, err = orchestrator.SubmitToken(ctx, settings.PaymentToken)
	} else {
		outcome, err = orchestrator.SubmitFree(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Submission refused: %s\n", err)
		os.Exit(1)
	}

	switch o := outcome.(type) {
	case checkout.Confirmed:
		fmt.Printf("Confirmed: %s\n", o.ConfirmationID)
	case checkout.Declined:
		fmt.Printf("Declined (registration %d): %s\n", *o.FailedRegistrationID, o.Reason)
		os.Exit(1)
	case checkout.DataError:
		fmt.Printf("Failed: %s\n", o.Reason)
		os.Exit(1)
	}
}

type Settings struct {
	BackendURL   string
	SessionToken string
	PaymentToken string
	FlowKind     checkout.FlowKind
	SubjectID    uuid.UUID
	AmountDue    *money.Money
}

func getSettingsFromEnv() (Settings, error) {
	subjectID, err := uuid.Parse(os.Getenv("SUBJECT_ID"))
	if err != nil {
		return Settings{}, fmt.Errorf("SUBJECT_ID must be a UUID: %w", err)
	}

	kind, err := parseFlowKind(getEnvOrDefault("FLOW_KIND", "member"))
	if err != nil {
		return Settings{}, err
	}

	var amount *money.Money
	if raw := os.Getenv("AMOUNT_DUE_CENTS"); raw != "" {
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Settings{}, fmt.Errorf("AMOUNT_DUE_CENTS must be an integer: %w", err)
		}
		amount = money.New(cents, getEnvOrDefault("CURRENCY", "USD"))
	}

	return Settings{
		BackendURL:   getEnvOrDefault("BACKEND_URL", "http://localhost:8080"),
		SessionToken: os.Getenv("SESSION_TOKEN"),
		PaymentToken: os.Getenv("PAYMENT_TOKEN"),
		FlowKind:     kind,
		SubjectID:    subjectID,
		AmountDue:    amount,
	}, nil
}

func parseFlowKind(raw string) (checkout.FlowKind, error) {
	switch raw {
	case "member":
		return checkout.MEMBER_EVENT_REGISTRATION, nil
	case "guest":
		return checkout.GUEST_EVENT_REGISTRATION, nil
	case "membership":
		return checkout.MEMBERSHIP_PURCHASE, nil
	default:
		return checkout.FlowKind(0), fmt.Errorf("unknown flow kind: %q", raw)
	}
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return defaultVal
}

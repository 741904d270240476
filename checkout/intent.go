//go:generate go tool stringer -type=FlowKind

package checkout

import (
	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

type FlowKind int

const (
	MEMBER_EVENT_REGISTRATION FlowKind = iota
	GUEST_EVENT_REGISTRATION
	MEMBERSHIP_PURCHASE
)

// Declared handicaps outside this inclusive range are rejected client-side
// before any network call.
const (
	MinHandicap float64 = -10
	MaxHandicap float64 = 30
)

type Contact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Handicap  *float64
}

// Intent is the user's declared desire to register or pay. It lives exactly
// as long as one registration surface: created on open, gone on close or on
// reaching a terminal state.
type Intent struct {
	Kind      FlowKind
	SubjectID uuid.UUID
	Contact   Contact
	AmountDue *money.Money
}

// RequiresPayment reports whether this intent needs the payment surface at
// all. A nil or zero amount is the legitimate free-event path, not an error.
func (i Intent) RequiresPayment() bool {
	return i.AmountDue != nil && i.AmountDue.IsPositive()
}

func validateHandicap(handicap *float64) error {
	if handicap == nil {
		return nil
	}
	if *handicap < MinHandicap || *handicap > MaxHandicap {
		return NewHandicapOutOfRangeError(*handicap)
	}
	return nil
}

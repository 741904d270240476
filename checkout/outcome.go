package checkout

import "github.com/Rhymond/go-money"

// Outcome is the terminal result of one submission attempt: Confirmed,
// Declined, or DataError.
type Outcome interface {
	outcome()
}

type Confirmed struct {
	ConfirmationID string
	AmountCharged  *money.Money
}

// Declined means the backend rejected the charge but already created a
// registration record. FailedRegistrationID must be supplied on the next
// retry so the backend updates that record instead of duplicating it.
type Declined struct {
	FailedRegistrationID *int64
	Reason               string
}

// DataError is a network failure, malformed response, or backend error with
// no registration record. Recovery is a full restart from the form.
type DataError struct {
	Reason string
}

func (Confirmed) outcome() {}
func (Declined) outcome()  {}
func (DataError) outcome() {}

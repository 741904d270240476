//go:generate go tool stringer -type=FlowState

package checkout

// FlowState is the orchestrator's own state. STATE_CONFIRMED is terminal;
// STATE_DECLINED is semi-terminal, holding the failed registration id until
// the user retries.
type FlowState int

const (
	STATE_FORM FlowState = iota
	STATE_TOKENIZING
	STATE_SUBMITTING
	STATE_CONFIRMED
	STATE_DECLINED
	STATE_DATA_ERROR
)

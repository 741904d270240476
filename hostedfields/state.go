//go:generate go tool stringer -type=State

package hostedfields

type State int

const (
	UNLOADED State = iota
	LOADING
	READY
	TOKENIZING
	LOAD_ERROR
)

package engine

// State is the lifecycle phase of an Engine.
type State int32

const (
	// StateUninitialized means Configure has not succeeded yet; Process
	// outputs silence.
	StateUninitialized State = iota
	// StateReady means the engine is configured and idle.
	StateReady
	// StateProcessing means a Process call is running.
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

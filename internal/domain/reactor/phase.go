package reactor

// Phase is the facility's operating phase. Exactly one value is active per
// facility at any time; setPhase is the sole mutator.
type Phase string

const (
	// PhaseInitial indicates the facility is pre-operational
	PhaseInitial Phase = "INITIAL"

	// PhaseProcess indicates the facility is actively irradiating a full core
	PhaseProcess Phase = "PROCESS"

	// PhaseWaiting indicates the core is incomplete or cooling down after an
	// unload, awaiting refuel
	PhaseWaiting Phase = "WAITING"
)

// String returns the human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initialization"
	case PhaseProcess:
		return "processing batch(es)"
	case PhaseWaiting:
		return "waiting for fuel"
	default:
		return "unknown"
	}
}

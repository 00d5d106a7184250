package engine

// Phase is the controller's position in the topic lifecycle.
type Phase int

const (
	PhaseIdle         Phase = iota // no topic loaded
	PhaseTierSelect                // topic loaded, no tier active
	PhaseInTier                    // answering items in a tier
	PhaseTierComplete              // last item scored, result not yet dismissed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTierSelect:
		return "tier-select"
	case PhaseInTier:
		return "in-tier"
	case PhaseTierComplete:
		return "tier-complete"
	default:
		return "unknown"
	}
}

package dictation

// Phase is the coordinator's lifecycle phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRecording
	PhaseTranscribing
	PhaseInserting
	PhaseError
)

// String returns the phase name for logs and observers.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRecording:
		return "recording"
	case PhaseTranscribing:
		return "transcribing"
	case PhaseInserting:
		return "inserting"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the published coordinator state. Err is set only in PhaseError
// and carries a short human-readable message.
type State struct {
	Phase Phase  `json:"phase"`
	Err   string `json:"error,omitempty"`
}

package finallist

// State is the merge lifecycle state.
type State int

const (
	// StateIdle means no merge has run or the last one finished and its
	// result was consumed.
	StateIdle State = iota
	// StateScanning means source files are being extracted.
	StateScanning
	// StateMerging means the output workbook is being rendered and saved.
	StateMerging
	// StateDone means the last merge completed successfully.
	StateDone
	// StateError means the last merge failed.
	StateError
)

// String returns a short human-readable form of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateMerging:
		return "merging"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// busy reports whether a merge is in flight in this state.
func (s State) busy() bool {
	return s == StateScanning || s == StateMerging
}

package momir

// Phase is where the app is in a fetch-and-display cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseDisplaying
	PhasePrinterDispatched
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseDisplaying:
		return "displaying"
	case PhasePrinterDispatched:
		return "printer-dispatched"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of everything the page renders
type State struct {
	Mode        PrintMode
	Card        CardImage
	CardVisible bool
	History     []CardImage
	Phase       Phase

	LoadingMessage string
	ErrorMessage   string

	// PrintSuppressed marks every region except the card as hidden from print output
	PrintSuppressed bool
}

// Loading reports whether controls should be disabled
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// HasError reports whether the error banner is shown
func (s State) HasError() bool {
	return s.ErrorMessage != ""
}

// Effects are browser side effects an action asks for
type Effects struct {
	PrintDialog bool
	LaunchURL   string
}

// Notify receives intermediate states while an action runs
type Notify func(State)

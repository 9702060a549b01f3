package workflow

// State is a step of the submission state machine.
type State string

const (
	StateIdle             State = "idle"
	StateConfirming       State = "confirming"
	StateSubmitting       State = "submitting"
	StateSucceeded        State = "succeeded"
	StateFailedValidation State = "failed_validation"
	StateFailedRequest    State = "failed_request"
)

func (s State) String() string {
	return string(s)
}

// Decision is the user's answer to the confirmation prompt.
type Decision int

const (
	Cancel Decision = iota
	Accept
	Reject
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "cancel"
	}
}

// ParseDecision maps "accept", "reject" and "cancel" to a Decision.
func ParseDecision(s string) (Decision, bool) {
	switch s {
	case "accept":
		return Accept, true
	case "reject":
		return Reject, true
	case "cancel":
		return Cancel, true
	}
	return Cancel, false
}

// Outcome is how one call to Submit ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeRejected  Outcome = "rejected"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeFailed    Outcome = "failed"
)

func (o Outcome) String() string {
	return string(o)
}

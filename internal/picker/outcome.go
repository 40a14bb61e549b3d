package picker

// Outcome is the terminal state of one selection session.
type Outcome interface {
	isOutcome()
}

// Accepted holds the chosen candidates in the order the user finalized them.
// Items is never empty.
type Accepted struct {
	Items []string
}

func (Accepted) isOutcome() {}

// Aborted indicates the user left the picker without choosing.
type Aborted struct{}

func (Aborted) isOutcome() {}

package domain

// Sentinel step identifiers. StepResult is the terminal state; StepAIConfirm
// is the synthetic state awaiting yes/no confirmation of a classifier guess.
const (
	StepResult    = "result"
	StepAIConfirm = "ai_confirm"
)

// PendingTarget captures a classifier guess awaiting user confirmation in
// the ai_confirm state.
type PendingTarget struct {
	StepID       string `json:"step_id"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
}

// Session is the mutable accumulator of a single estimation run.
//
// Category is set once and never overwritten. Base must be non-nil by the
// time the terminal step is reached; the navigator maintains that invariant.
type Session struct {
	Category      string           `json:"category,omitempty"`
	CurrentStepID string           `json:"current_step_id"`
	Base          *Selection       `json:"base,omitempty"`
	Options       []Selection      `json:"options,omitempty"`
	Common        CommonSelections `json:"common"`
	Scale         ScaleSelections  `json:"scale"`

	// Completed is set when the terminal step is reached; the session is
	// read-only from then on.
	Completed bool      `json:"completed"`
	Result    *Estimate `json:"result,omitempty"`

	// Pending holds the classifier guess while CurrentStepID == StepAIConfirm.
	Pending *PendingTarget `json:"pending,omitempty"`

	// Generation is bumped on restart. Hosts compare it before applying the
	// outcome of a navigation that raced a restart, so a stale
	// classification is discarded rather than applied to a fresh session.
	Generation uint64 `json:"generation"`

	// history is the append-only stack of value-semantics snapshots backing
	// one-step undo. Snapshots never share memory with the live session.
	history []Session
}

// NewSession creates a clean session positioned at the given entry step.
func NewSession(entryStepID string) *Session {
	return &Session{CurrentStepID: entryStepID}
}

// snapshot returns a deep value copy of the session core, excluding the
// history stack itself.
func (s *Session) snapshot() Session {
	snap := *s
	snap.history = nil
	snap.Options = append([]Selection(nil), s.Options...)
	if s.Base != nil {
		base := *s.Base
		snap.Base = &base
	}
	if s.Common.ExternalLink != nil {
		v := *s.Common.ExternalLink
		snap.Common.ExternalLink = &v
	}
	if s.Common.DataMigration != nil {
		v := *s.Common.DataMigration
		snap.Common.DataMigration = &v
	}
	if s.Result != nil {
		v := *s.Result
		snap.Result = &v
	}
	if s.Pending != nil {
		v := *s.Pending
		snap.Pending = &v
	}
	return snap
}

// PushHistory records the current session core on the undo stack. Called by
// the navigator immediately before applying a user transition.
func (s *Session) PushHistory() {
	s.history = append(s.history, s.snapshot())
}

// Undo restores the most recent snapshot verbatim, discarding every
// selection made after it. It reports false (and leaves the session
// untouched) when no history exists.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	rest := s.history[:len(s.history)-1]
	*s = last
	s.history = rest
	return true
}

// HistoryDepth reports how many undo steps are available. Hosts use it to
// disable the back control when the stack is empty.
func (s *Session) HistoryDepth() int {
	return len(s.history)
}

// Clone returns a deep copy of the session, including its history stack.
// Stores copy on write and read so callers can never mutate shared state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := s.snapshot()
	c.history = make([]Session, len(s.history))
	copy(c.history, s.history)
	return &c
}

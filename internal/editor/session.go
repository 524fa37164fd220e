package editor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"philcali.me/barmanager/internal/api"
)

var ErrSessionClosed = errors.New("session already submitted")

type SessionState int

const (
	Idle SessionState = iota
	Editing
	Validating
	Invalid
	Submitting
	Succeeded
	SubmitFailed
)

var sessionStateNames = map[SessionState]string{
	Idle:         "Idle",
	Editing:      "Editing",
	Validating:   "Validating",
	Invalid:      "Invalid",
	Submitting:   "Submitting",
	Succeeded:    "Succeeded",
	SubmitFailed: "Failed",
}

func (s SessionState) String() string {
	if name, ok := sessionStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SessionState(%d)", s)
}

// Session drives one draft from first edit to a successful submission.
// It is owned by a single caller and is not safe for concurrent use.
type Session struct {
	Draft     *RecipeDraft
	Submitter *Submitter
	Logger    *zap.Logger

	state  SessionState
	report ErrorReport
}

func NewSession(draft *RecipeDraft, submitter *Submitter, logger *zap.Logger) *Session {
	if draft == nil {
		draft = NewDraft()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{Draft: draft, Submitter: submitter, Logger: logger}
}

func (s *Session) State() SessionState {
	return s.state
}

// Report is the outcome of the last validation.
func (s *Session) Report() ErrorReport {
	return s.report
}

func (s *Session) transition(next SessionState) {
	s.Logger.Debug("Session transition",
		zap.Stringer("from", s.state),
		zap.Stringer("to", next),
		zap.String("draft", s.Draft.ID))
	s.state = next
}

// Edit applies fn to the draft. Any error from fn is returned and the
// session still counts as editing.
func (s *Session) Edit(fn func(d *RecipeDraft) error) error {
	if s.state == Succeeded {
		return ErrSessionClosed
	}
	if s.state != Editing {
		s.transition(Editing)
	}
	return fn(s.Draft)
}

func (s *Session) Submit(ctx context.Context) (*api.Cocktail, error) {
	switch s.state {
	case Succeeded:
		return nil, ErrSessionClosed
	case Submitting:
		return nil, ErrSubmitInFlight
	}
	s.transition(Validating)
	s.report = Validate(s.Draft)
	if !s.report.Valid() {
		s.transition(Invalid)
		s.transition(Editing)
		return nil, &ValidationError{Report: s.report}
	}
	s.transition(Submitting)
	cocktail, err := s.Submitter.Submit(ctx, s.Draft)
	if err != nil {
		s.transition(SubmitFailed)
		s.transition(Editing)
		return nil, err
	}
	s.transition(Succeeded)
	return cocktail, nil
}

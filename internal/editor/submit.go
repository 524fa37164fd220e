package editor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/client"
	"philcali.me/barmanager/internal/notifications"
)

var ErrSubmitInFlight = errors.New("a submission is already in flight")

// Persister creates a record when the input has no id and updates it
// otherwise. The API client satisfies it.
type Persister interface {
	SaveCocktail(ctx context.Context, input api.CocktailInput) (*api.Cocktail, error)
	SaveGarnish(ctx context.Context, input api.GarnishInput) (*api.Garnish, error)
}

type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

type Submitter struct {
	Persister Persister
	Notifier  notifications.Notifier
	Navigator Navigator
	Logger    *zap.Logger

	inFlight atomic.Bool
}

func (s *Submitter) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// FailureMessage is what the notifier shows for a failed save: the status
// code and text for an API rejection, the error otherwise.
func FailureMessage(err error) string {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("%d %s", statusErr.StatusCode, statusErr.StatusText())
	}
	return err.Error()
}

func (s *Submitter) acquire() error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	return nil
}

func (s *Submitter) release() {
	s.inFlight.Store(false)
}

func (s *Submitter) InFlight() bool {
	return s.inFlight.Load()
}

func (s *Submitter) fail(ctx context.Context, err error) {
	s.logger().Warn("Submission failed", zap.Error(err))
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, notifications.Error(FailureMessage(err)))
	}
}

func (s *Submitter) succeed(path string) {
	if s.Navigator != nil {
		s.Navigator.Navigate(path)
	}
}

// Submit validates the draft, then creates or updates the cocktail. On
// success the navigator is sent to the cocktail listing; on failure the
// notifier gets the reason and the draft stays as it was.
func (s *Submitter) Submit(ctx context.Context, d *RecipeDraft) (*api.Cocktail, error) {
	if report := Validate(d); !report.Valid() {
		return nil, &ValidationError{Report: report}
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	payload := BuildPayload(d)
	s.logger().Debug("Submitting cocktail",
		zap.Bool("create", payload.Id == nil),
		zap.Int("steps", len(*payload.Steps)))
	cocktail, err := s.Persister.SaveCocktail(ctx, payload)
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}
	s.succeed(CocktailListing)
	return cocktail, nil
}

func (s *Submitter) SubmitGarnish(ctx context.Context, d *GarnishDraft) (*api.Garnish, error) {
	if report := ValidateGarnish(d); !report.Valid() {
		return nil, &GarnishValidationError{Report: report}
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	garnish, err := s.Persister.SaveGarnish(ctx, BuildGarnishPayload(d))
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}
	s.succeed(GarnishListing)
	return garnish, nil
}

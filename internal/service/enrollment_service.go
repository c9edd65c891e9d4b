// Package service holds the policy layers above the repositories: the
// enrollment reconciler and authentication.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/repository"
)

// Outcome is the result of a join or leave transition.
type Outcome struct {
	// State is the resulting enrollment state for the (user, event) pair.
	State domain.EnrollmentState
	// AlreadyEnrolled is set when the server rejected a join as a
	// duplicate. The client's view was stale; the user is enrolled, so
	// this is success-equivalent, not an error.
	AlreadyEnrolled bool
	// Events is the resynchronized event collection, nil when the
	// post-transition re-fetch failed (Resynced false).
	Events   []domain.Event
	Resynced bool
}

// EnrollmentService decides whether a join or leave is valid before any
// network call, submits it, and re-derives authoritative state from the
// repository afterwards. It never trusts a purely local mutation as
// final truth.
type EnrollmentService struct {
	repo repository.EventRepository
	log  *zap.Logger
}

// NewEnrollmentService creates an EnrollmentService.
func NewEnrollmentService(repo repository.EventRepository, log *zap.Logger) *EnrollmentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, log: log}
}

// Join transitions the user from NotEnrolled to Enrolled on ev.
//
// Local pre-checks reject without any network call: an event the current
// view already marks enrolled, and an event with no spots left. The
// pre-checks are advisory; the server re-checks and is authoritative, so
// a race where the event fills (or the user was enrolled elsewhere)
// between check and commit surfaces as a server-side rejection. A
// duplicate rejection resolves to the Enrolled state rather than an
// error.
func (s *EnrollmentService) Join(ctx context.Context, ev domain.Event) (*Outcome, error) {
	if ev.IsEnrolled {
		return nil, domain.ErrAlreadyEnrolled
	}
	if ev.IsFull() {
		return nil, domain.ErrEventFull
	}

	outcome := &Outcome{State: domain.Enrolled}
	if err := s.repo.JoinEvent(ctx, ev.ID); err != nil {
		if errors.Is(err, domain.ErrAlreadyEnrolled) {
			// The server already holds the target state.
			s.log.Info("join rejected as duplicate, resolving to enrolled",
				zap.String("event_id", ev.ID))
			outcome.AlreadyEnrolled = true
		} else {
			return nil, err
		}
	}

	s.resynchronize(ctx, outcome)
	return outcome, nil
}

// Leave transitions the user from Enrolled to NotEnrolled on ev. It is
// permitted unconditionally once enrolled; attempting it while not
// enrolled is rejected locally without a network call.
func (s *EnrollmentService) Leave(ctx context.Context, ev domain.Event) (*Outcome, error) {
	if !ev.IsEnrolled {
		return nil, domain.ErrNotEnrolled
	}

	if err := s.repo.LeaveEvent(ctx, ev.ID); err != nil {
		return nil, err
	}

	outcome := &Outcome{State: domain.NotEnrolled}
	s.resynchronize(ctx, outcome)
	return outcome, nil
}

// Resynchronize re-derives the authoritative event collection from the
// repository. Exposed so callers can refresh outside a transition.
func (s *EnrollmentService) Resynchronize(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}

// resynchronize runs strictly after the mutating call has completed;
// issuing it concurrently could observe a state where the mutation has
// not yet committed server-side. A refresh failure does not undo the
// transition: the state stands, the caller just keeps its stale listing.
func (s *EnrollmentService) resynchronize(ctx context.Context, outcome *Outcome) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		s.log.Warn("resynchronize after transition failed", zap.Error(err))
		return
	}
	outcome.Events = events
	outcome.Resynced = true
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/dto"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/normalize"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/retry"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/session"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/transport"
)

// duplicateHints detect an enrollment-duplicate rejection from the
// server's human-readable message. Deprecated fallback only: the 409
// status is the primary signal, and these go away once the backend
// contract guarantees status codes.
var duplicateHints = []string{"already", "duplicate", "inscrito", "duplicado", "ya existe", "exists"}

// fullHints detect a capacity-exhausted rejection the same way.
var fullHints = []string{"completo", "full", "sin plazas"}

// HTTPEventRepository implements EventRepository against the live REST
// backend. The session is re-read from the store at the start of every
// operation; login and logout can happen between calls.
type HTTPEventRepository struct {
	client    *transport.Client
	sessions  session.Store
	normalize *normalize.Normalizer
	retrier   *retry.Retrier
	log       *zap.Logger
}

// NewHTTPEventRepository creates a live repository. retrier may be nil
// to disable read retries.
func NewHTTPEventRepository(client *transport.Client, sessions session.Store, n *normalize.Normalizer, retrier *retry.Retrier, log *zap.Logger) *HTTPEventRepository {
	if log == nil {
		log = zap.NewNop()
	}
	if retrier == nil {
		retrier = retry.New(&retry.Config{MaxRetries: 0})
	}
	return &HTTPEventRepository{
		client:    client,
		sessions:  sessions,
		normalize: n,
		retrier:   retrier,
		log:       log,
	}
}

func (r *HTTPEventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	sess, err := r.sessions.Current()
	if err != nil {
		return nil, err
	}

	var raws []dto.EventRecord
	if err := r.get(ctx, "/events", sess, &raws); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	events := r.normalize.Events(raws)
	if sess != nil {
		r.annotateEnrollment(ctx, sess, events)
	}
	sortByStartDate(events)
	return events, nil
}

// annotateEnrollment reconciles the two enrollment signals: membership
// in the participant list and membership in the separately fetched
// my-events id set. A failure fetching the second signal degrades to the
// first one instead of failing the listing.
func (r *HTTPEventRepository) annotateEnrollment(ctx context.Context, sess *domain.Session, events []domain.Event) {
	enrolled, err := r.myEventIDs(ctx, sess)
	if err != nil {
		r.log.Warn("could not fetch enrolled-event ids, falling back to participant lists",
			zap.Error(err))
		enrolled = nil
	}
	for i := range events {
		if events[i].HasParticipant(sess.UserID) {
			events[i].IsEnrolled = true
		}
		if _, ok := enrolled[events[i].ID]; ok {
			events[i].IsEnrolled = true
		}
	}
}

func (r *HTTPEventRepository) myEventIDs(ctx context.Context, sess *domain.Session) (map[string]struct{}, error) {
	var raws []dto.EventRecord
	if err := r.get(ctx, "/events/my-events", sess, &raws); err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		ids[raw.ID.String()] = struct{}{}
	}
	return ids, nil
}

func (r *HTTPEventRepository) ListMyEvents(ctx context.Context) ([]domain.Event, error) {
	sess, err := r.requireSession()
	if err != nil {
		return nil, err
	}

	var raws []dto.EventRecord
	if err := r.get(ctx, "/events/my-events", sess, &raws); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	events := r.normalize.Events(raws)
	for i := range events {
		events[i].IsEnrolled = true
	}
	sortByStartDate(events)
	return events, nil
}

func (r *HTTPEventRepository) ListCreatedEvents(ctx context.Context) ([]domain.Event, error) {
	sess, err := r.requireSession()
	if err != nil {
		return nil, err
	}

	var raws []dto.EventRecord
	if err := r.get(ctx, "/events/my-created-events", sess, &raws); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	events := r.normalize.Events(raws)
	sortByStartDate(events)
	return events, nil
}

func (r *HTTPEventRepository) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventRecord, error) {
	sess, err := r.requireSession()
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	creatorID, err := strconv.ParseInt(sess.UserID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: session user id %q is not numeric", domain.ErrAuthRequired, sess.UserID)
	}
	req.IDCreador = creatorID

	var created dto.EventRecord
	if err := r.client.Post(ctx, "/events", sess, req, &created); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCreateFailed, err)
	}
	return &created, nil
}

func (r *HTTPEventRepository) JoinEvent(ctx context.Context, eventID string) error {
	if strings.TrimSpace(eventID) == "" {
		return domain.ErrInvalidEventID
	}
	sess, err := r.requireSession()
	if err != nil {
		return err
	}

	body := dto.JoinEventRequest{IDEvento: eventID, IDParticipante: sess.UserID}
	if err := r.client.Post(ctx, "/events/join", sess, body, nil); err != nil {
		return classifyJoinError(err)
	}
	return nil
}

func (r *HTTPEventRepository) LeaveEvent(ctx context.Context, eventID string) error {
	if strings.TrimSpace(eventID) == "" {
		return domain.ErrInvalidEventID
	}
	sess, err := r.requireSession()
	if err != nil {
		return err
	}

	body := dto.LeaveEventRequest{IDEvento: eventID, IDParticipante: sess.UserID}
	if err := r.client.Post(ctx, "/events/leave", sess, body, nil); err != nil {
		var httpErr *transport.HTTPError
		if errors.As(err, &httpErr) {
			return fmt.Errorf("%w: %w", domain.ErrLeaveFailed, httpErr)
		}
		return err
	}
	return nil
}

// classifyJoinError maps a transport failure to the enrollment error
// taxonomy. 409 is the primary duplicate signal; message heuristics are
// the deprecated fallback.
func classifyJoinError(err error) error {
	var httpErr *transport.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	msg := strings.ToLower(httpErr.Message)
	// Capacity exhaustion also arrives as 409 on some backends, so the
	// full-event hints take precedence over the bare status code.
	if containsAny(msg, fullHints) {
		return fmt.Errorf("%w: %w", domain.ErrEventFull, httpErr)
	}
	if httpErr.Status == 409 || containsAny(msg, duplicateHints) {
		return fmt.Errorf("%w: %w", domain.ErrAlreadyEnrolled, httpErr)
	}
	return fmt.Errorf("%w: %w", domain.ErrJoinFailed, httpErr)
}

func containsAny(s string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}

// get performs an idempotent read through the retrier. Network failures
// and 5xx responses are retried; everything else is permanent.
func (r *HTTPEventRepository) get(ctx context.Context, path string, sess *domain.Session, out any) error {
	return r.retrier.Do(ctx, func(ctx context.Context) error {
		err := r.client.Get(ctx, path, sess, out)
		if err == nil {
			return nil
		}
		var netErr *transport.NetworkError
		if errors.As(err, &netErr) {
			return err
		}
		var httpErr *transport.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status >= 500 {
			return err
		}
		return retry.Permanent(err)
	})
}

func (r *HTTPEventRepository) requireSession() (*domain.Session, error) {
	sess, err := r.sessions.Current()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrAuthRequired
	}
	return sess, nil
}

func sortByStartDate(events []domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
}

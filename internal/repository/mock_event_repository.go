package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/dto"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/mocks"
)

// MockEventRepository implements EventRepository over the static mock
// dataset. Reads mirror the live ordering semantics; join and leave are
// acknowledged no-ops that do not mutate the dataset. Mock mode is
// read-mostly by design.
type MockEventRepository struct {
	mu     sync.RWMutex
	events []domain.Event
}

// NewMockEventRepository creates a mock repository seeded with the
// bundled dataset.
func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{events: mocks.Events()}
}

func (r *MockEventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := cloneEvents(r.events)
	sortByStartDate(events)
	return events, nil
}

func (r *MockEventRepository) ListMyEvents(ctx context.Context) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var mine []domain.Event
	for _, ev := range r.events {
		if ev.HasParticipant(mocks.UserID) {
			ev.IsEnrolled = true
			mine = append(mine, cloneEvent(ev))
		}
	}
	sortByStartDate(mine)
	return mine, nil
}

func (r *MockEventRepository) ListCreatedEvents(ctx context.Context) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var created []domain.Event
	for _, ev := range r.events {
		if ev.CreatorID == mocks.UserID {
			created = append(created, cloneEvent(ev))
		}
	}
	sortByStartDate(created)
	return created, nil
}

func (r *MockEventRepository) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	// Echo the draft back the way the backend would, under a fresh id.
	return &dto.EventRecord{
		ID:          dto.FlexString(uuid.New().String()),
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Fecha:       req.Fecha,
		Hora:        req.Hora,
		Lugar:       req.Lugar,
		Tags:        req.Tags,
	}, nil
}

// JoinEvent reports success without mutating the mock set.
func (r *MockEventRepository) JoinEvent(ctx context.Context, eventID string) error {
	if eventID == "" {
		return domain.ErrInvalidEventID
	}
	return nil
}

// LeaveEvent reports success without mutating the mock set.
func (r *MockEventRepository) LeaveEvent(ctx context.Context, eventID string) error {
	if eventID == "" {
		return domain.ErrInvalidEventID
	}
	return nil
}

func cloneEvents(events []domain.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	for i, ev := range events {
		out[i] = cloneEvent(ev)
	}
	return out
}

func cloneEvent(ev domain.Event) domain.Event {
	ev.Participants = append([]string(nil), ev.Participants...)
	ev.Languages = append([]string(nil), ev.Languages...)
	ev.Tags = append([]string(nil), ev.Tags...)
	return ev
}

package repository_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/dto"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/images"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/mockapi"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/normalize"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/repository"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/service"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/session"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/transport"
)

// harness wires the full client stack against an in-process backend.
type harness struct {
	auth       *service.AuthService
	enrollment *service.EnrollmentService
	events     *repository.HTTPEventRepository
	sessions   *session.MemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	srv := httptest.NewServer(mockapi.Router(mockapi.NewServer("integration-secret")))
	t.Cleanup(srv.Close)

	sessions := session.NewMemoryStore()
	client := transport.New(srv.URL+"/api", 2*time.Second, nil)
	normalizer := normalize.New(images.StaticResolver("https://cdn.example.cat/x.jpg"), nil)
	events := repository.NewHTTPEventRepository(client, sessions, normalizer, nil, nil)

	return &harness{
		auth:       service.NewAuthService(client, sessions, nil),
		enrollment: service.NewEnrollmentService(events, nil),
		events:     events,
		sessions:   sessions,
	}
}

func (h *harness) signup(t *testing.T, username string) {
	t.Helper()
	resp, err := h.auth.Signup(context.Background(), dto.SignupRequest{
		Username: username,
		Email:    username + "@example.cat",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token, "the backend logs new accounts in directly")
}

func findEvent(t *testing.T, events []domain.Event, name string) domain.Event {
	t.Helper()
	for _, ev := range events {
		if ev.Name == name {
			return ev
		}
	}
	t.Fatalf("event %q not in listing", name)
	return domain.Event{}
}

func TestAnonymousListingIsNormalizedAndSorted(t *testing.T) {
	h := newHarness(t)

	events, err := h.events.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].StartDate.Before(events[i-1].StartDate),
			"listing must be in ascending start order")
	}
	for _, ev := range events {
		assert.False(t, ev.IsEnrolled)
		assert.NotEmpty(t, ev.ImageURL)
		assert.NotEmpty(t, ev.Languages)
	}

	surf := findEvent(t, events, "Surf day en Ericeira")
	assert.Equal(t, 8, surf.Capacity)
	assert.Equal(t, []string{"es", "pt"}, surf.Languages)
	assert.Contains(t, surf.Restrictions, "16")
}

func TestEnrollmentLifecycleAgainstBackend(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "marta")
	ctx := context.Background()

	events, err := h.events.ListEvents(ctx)
	require.NoError(t, err)
	tour := findEvent(t, events, "Free Walking Tour - Lisboa")
	require.False(t, tour.IsEnrolled)

	// Join and verify through the resynchronized listing.
	outcome, err := h.enrollment.Join(ctx, tour)
	require.NoError(t, err)
	assert.Equal(t, domain.Enrolled, outcome.State)
	assert.False(t, outcome.AlreadyEnrolled)
	require.True(t, outcome.Resynced)
	assert.True(t, findEvent(t, outcome.Events, tour.Name).IsEnrolled)

	mine, err := h.events.ListMyEvents(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, tour.Name, mine[0].Name)

	// A join with a stale not-enrolled view resolves to enrolled.
	outcome, err = h.enrollment.Join(ctx, tour)
	require.NoError(t, err)
	assert.True(t, outcome.AlreadyEnrolled)

	// Leave and verify the reversal.
	enrolled := findEvent(t, outcome.Events, tour.Name)
	outcome, err = h.enrollment.Leave(ctx, enrolled)
	require.NoError(t, err)
	assert.Equal(t, domain.NotEnrolled, outcome.State)
	assert.False(t, findEvent(t, outcome.Events, tour.Name).IsEnrolled)

	mine, err = h.events.ListMyEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestJoiningFullEventIsRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Two other accounts exhaust the two-person event.
	for _, name := range []string{"pau", "nuria"} {
		h.signup(t, name)
		events, err := h.events.ListEvents(ctx)
		require.NoError(t, err)
		sunset := findEvent(t, events, "Atardecer en Cabo da Roca")
		_, err = h.enrollment.Join(ctx, sunset)
		require.NoError(t, err)
	}

	h.signup(t, "tarde")
	events, err := h.events.ListEvents(ctx)
	require.NoError(t, err)
	sunset := findEvent(t, events, "Atardecer en Cabo da Roca")

	// The fresh listing already shows it full, so the rejection is local.
	assert.True(t, sunset.IsFull())
	_, err = h.enrollment.Join(ctx, sunset)
	assert.ErrorIs(t, err, domain.ErrEventFull)

	// A stale view that still shows room gets the server's rejection.
	sunset.Participants = sunset.Participants[:1]
	_, err = h.enrollment.Join(ctx, sunset)
	assert.ErrorIs(t, err, domain.ErrEventFull)
}

func TestCreateEventAppearsInCreatedListing(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "marta")
	ctx := context.Background()

	created, err := h.events.CreateEvent(ctx, &dto.CreateEventRequest{
		Titulo:        "Cata de vinos",
		Descripcion:   "Bodega centenaria junto al Duero.",
		Fecha:         "2025-12-01",
		Hora:          "19:00",
		Lugar:         "Oporto",
		Tags:          []string{"food"},
		Restricciones: map[string]string{"edadMinima": "18"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID.String())

	mine, err := h.events.ListCreatedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Cata de vinos", mine[0].Name)
	assert.Contains(t, mine[0].Restrictions, "18")
}

func TestLogoutRevertsToAnonymousBehavior(t *testing.T) {
	h := newHarness(t)
	h.signup(t, "marta")
	ctx := context.Background()

	require.NoError(t, h.auth.Logout())

	_, err := h.events.ListMyEvents(ctx)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	err = h.events.JoinEvent(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	// The public listing still works.
	events, err := h.events.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

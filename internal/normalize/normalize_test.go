package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/dto"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/images"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	}
}

func newTestNormalizer() *Normalizer {
	return New(images.StaticResolver("https://example.com/img.jpg"), nil).WithClock(fixedClock())
}

func TestEventAppliesDefaultsToEmptyRecord(t *testing.T) {
	n := newTestNormalizer()

	ev := n.Event(&dto.EventRecord{ID: "42"})

	assert.Equal(t, "42", ev.ID)
	assert.Equal(t, DefaultTitle, ev.Name)
	assert.Equal(t, DefaultLocation, ev.Location)
	assert.Equal(t, MinCapacity, ev.Capacity)
	assert.Equal(t, []string{"es"}, ev.Languages)
	assert.Empty(t, ev.Tags)
	assert.NotNil(t, ev.Tags)
	assert.Equal(t, fixedClock()(), ev.StartDate)
	assert.Equal(t, "https://example.com/img.jpg", ev.ImageURL)
	assert.Empty(t, ev.Restrictions)
}

func TestEventCombinesDateAndTime(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name  string
		fecha string
		hora  string
		want  time.Time
	}{
		{"minutes only", "2025-11-12", "10:00", time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)},
		{"with seconds", "2025-11-12", "10:00:30", time.Date(2025, 11, 12, 10, 0, 30, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := n.Event(&dto.EventRecord{ID: "1", Fecha: tt.fecha, Hora: tt.hora})
			assert.Equal(t, tt.want, ev.StartDate)
		})
	}
}

func TestEventFallsBackToNowOnBadDate(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name  string
		fecha string
		hora  string
	}{
		{"missing both", "", ""},
		{"missing time", "2025-11-12", ""},
		{"missing date", "", "10:00"},
		{"garbage date", "not-a-date", "10:00"},
		{"garbage time", "2025-11-12", "banana"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := n.Event(&dto.EventRecord{ID: "1", Fecha: tt.fecha, Hora: tt.hora})
			assert.Equal(t, fixedClock()(), ev.StartDate)
			assert.False(t, ev.StartDate.IsZero())
		})
	}
}

func TestEventCapacityAndLanguagesAlwaysPresent(t *testing.T) {
	n := newTestNormalizer()

	records := []dto.EventRecord{
		{ID: "1"},
		{ID: "2", MaxPersonas: -3},
		{ID: "3", IdiomasPermitidos: " , , "},
		{ID: "4", MaxPersonas: 25, IdiomasPermitidos: "es, en ,pt"},
	}
	for i := range records {
		ev := n.Event(&records[i])
		assert.GreaterOrEqual(t, ev.Capacity, 1, "record %s", records[i].ID)
		assert.GreaterOrEqual(t, len(ev.Languages), 1, "record %s", records[i].ID)
	}

	ev := n.Event(&records[3])
	assert.Equal(t, 25, ev.Capacity)
	assert.Equal(t, []string{"es", "en", "pt"}, ev.Languages)
}

func TestEventCapacityFallsBackToParticipantCount(t *testing.T) {
	n := newTestNormalizer()

	// More participants than the minimum fallback: capacity tracks them.
	ev := n.Event(&dto.EventRecord{ID: "1", ParticipantesInscritos: 14})
	assert.Equal(t, 14, ev.Capacity)
	assert.Len(t, ev.Participants, 14)

	// Fewer participants: the minimum wins.
	ev = n.Event(&dto.EventRecord{ID: "2", ParticipantesInscritos: 3})
	assert.Equal(t, MinCapacity, ev.Capacity)
}

func TestEventParticipantsPreferExplicitIDs(t *testing.T) {
	n := newTestNormalizer()

	ev := n.Event(&dto.EventRecord{
		ID:               "1",
		ParticipantesIds: []dto.FlexString{"7", "8"},
	})
	assert.Equal(t, []string{"7", "8"}, ev.Participants)
}

func TestEventRestrictionsFromMinimumAge(t *testing.T) {
	n := newTestNormalizer()

	ev := n.Event(&dto.EventRecord{ID: "1", EdadMinima: 18})
	assert.Equal(t, "Edad mínima: 18 años", ev.Restrictions)

	ev = n.Event(&dto.EventRecord{ID: "2"})
	assert.Empty(t, ev.Restrictions)
}

func TestEventsNormalizesBatch(t *testing.T) {
	n := newTestNormalizer()

	events := n.Events([]dto.EventRecord{
		{ID: "1", Titulo: "Uno"},
		{ID: "2", Titulo: "Dos"},
	})
	require.Len(t, events, 2)
	assert.Equal(t, "Uno", events[0].Name)
	assert.Equal(t, "Dos", events[1].Name)
}

func TestEventNeverPanicsOnNilSlices(t *testing.T) {
	n := New(nil, nil).WithClock(fixedClock())

	ev := n.Event(&dto.EventRecord{})
	assert.Equal(t, images.DefaultFallbackURL, ev.ImageURL)
	assert.NotNil(t, ev.Tags)
}

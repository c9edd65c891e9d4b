package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
)

func sampleEvents() []domain.Event {
	return []domain.Event{
		{
			ID:          "e1",
			Name:        "Free Walking Tour",
			Description: "Ruta por el centro histórico",
			Location:    "Lisboa, Portugal",
			StartDate:   time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC),
			Capacity:    12,
			Languages:   []string{"es", "en", "pt"},
			Tags:        []string{"tour", "culture"},
		},
		{
			ID:          "e2",
			Name:        "Surf day",
			Description: "Clases para todos los niveles",
			Location:    "Ericeira, Portugal",
			StartDate:   time.Date(2025, 11, 13, 8, 30, 0, 0, time.UTC),
			Capacity:    8,
			Languages:   []string{"es", "pt"},
			Tags:        []string{"surf", "sport"},
		},
		{
			ID:          "e3",
			Name:        "Atardecer en Cabo da Roca",
			Description: "Picnic en el acantilado",
			Location:    "Sintra, Portugal",
			StartDate:   time.Date(2025, 11, 14, 17, 0, 0, 0, time.UTC),
			Capacity:    5,
			Languages:   []string{"en", "de"},
			Tags:        []string{"nature"},
		},
	}
}

func ids(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}

func TestApplyEmptySpecIsIdentity(t *testing.T) {
	events := sampleEvents()
	got := Apply(events, Spec{})
	assert.Equal(t, events, got, "empty spec must return the input unchanged, order preserved")
}

func TestApplySearchTextMatchesNameOrDescription(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		search string
		want   []string
	}{
		{"surf", []string{"e2"}},             // name
		{"SURF", []string{"e2"}},             // case-insensitive
		{"acantilado", []string{"e3"}},       // description
		{"para", []string{"e2"}},             // substring
		{"no-such-text", []string{}},         // nothing
		{"a", []string{"e1", "e2", "e3"}},    // common letter, order kept
	}
	for _, tt := range tests {
		got := Apply(events, Spec{SearchText: tt.search})
		assert.Equal(t, tt.want, ids(got), "search %q", tt.search)
	}
}

func TestApplyLocationSubstring(t *testing.T) {
	events := sampleEvents()

	got := Apply(events, Spec{Location: "sintra"})
	assert.Equal(t, []string{"e3"}, ids(got))

	got = Apply(events, Spec{Location: "portugal"})
	assert.Len(t, got, 3)
}

func TestApplyMaxPersonsCeiling(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		ceiling int
		want    []string
	}{
		{0, []string{}},
		{5, []string{"e3"}},         // boundary equality counts
		{8, []string{"e2", "e3"}},
		{100, []string{"e1", "e2", "e3"}},
	}
	for _, tt := range tests {
		ceiling := tt.ceiling
		got := Apply(events, Spec{MaxPersons: &ceiling})
		assert.Equal(t, tt.want, ids(got), "ceiling %d", tt.ceiling)
	}
}

func TestApplyLanguageEquality(t *testing.T) {
	events := sampleEvents()

	got := Apply(events, Spec{Language: "de"})
	assert.Equal(t, []string{"e3"}, ids(got))

	got = Apply(events, Spec{Language: "es"})
	assert.Equal(t, []string{"e1", "e2"}, ids(got))
}

func TestApplyTagsIntersection(t *testing.T) {
	events := sampleEvents()

	got := Apply(events, Spec{Tags: []string{"sport", "nature"}})
	assert.Equal(t, []string{"e2", "e3"}, ids(got))

	// Empty requested tag set imposes no constraint.
	got = Apply(events, Spec{Tags: []string{}})
	assert.Len(t, got, 3)
}

func TestApplyPredicatesAreANDed(t *testing.T) {
	events := sampleEvents()

	got := Apply(events, Spec{Language: "es", Location: "ericeira"})
	assert.Equal(t, []string{"e2"}, ids(got))

	got = Apply(events, Spec{Language: "de", Location: "ericeira"})
	assert.Empty(t, got)
}

func TestApplyIsIdempotent(t *testing.T) {
	events := sampleEvents()
	ceiling := 8
	spec := Spec{Language: "es", MaxPersons: &ceiling}

	once := Apply(events, spec)
	twice := Apply(once, spec)
	assert.Equal(t, once, twice)
}

func TestAvailableTags(t *testing.T) {
	tags := AvailableTags(sampleEvents())
	assert.Equal(t, []string{"culture", "nature", "sport", "surf", "tour"}, tags)

	assert.Empty(t, AvailableTags(nil))
}

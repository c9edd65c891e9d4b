// Package filter reduces an event collection against a filter
// specification. Pure and order-preserving: safe to re-run on every
// filter-state change.
package filter

import (
	"sort"
	"strings"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
)

// Spec is a set of optional predicates combined with logical AND. A zero
// or absent field imposes no constraint.
type Spec struct {
	// SearchText matches name or description, case-insensitive substring.
	SearchText string
	// Location matches the location field, case-insensitive substring.
	Location string
	// Language requires the event to offer the exact language code.
	Language string
	// MaxPersons, when set, requires capacity <= *MaxPersons. A pointer
	// so a ceiling of 0 is distinguishable from "unset".
	MaxPersons *int
	// Tags requires a non-empty intersection with the event's tag set.
	Tags []string
}

// IsZero reports whether the spec imposes no constraints.
func (s Spec) IsZero() bool {
	return s.SearchText == "" && s.Location == "" && s.Language == "" &&
		s.MaxPersons == nil && len(s.Tags) == 0
}

// Apply returns the events matching every present predicate, preserving
// the relative order of the input.
func Apply(events []domain.Event, spec Spec) []domain.Event {
	if spec.IsZero() {
		return events
	}

	matched := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if Matches(ev, spec) {
			matched = append(matched, ev)
		}
	}
	return matched
}

// Matches reports whether a single event passes every present predicate.
func Matches(ev domain.Event, spec Spec) bool {
	if spec.SearchText != "" {
		needle := strings.ToLower(spec.SearchText)
		if !strings.Contains(strings.ToLower(ev.Name), needle) &&
			!strings.Contains(strings.ToLower(ev.Description), needle) {
			return false
		}
	}

	if spec.Location != "" {
		if !strings.Contains(strings.ToLower(ev.Location), strings.ToLower(spec.Location)) {
			return false
		}
	}

	if spec.MaxPersons != nil && ev.Capacity > *spec.MaxPersons {
		return false
	}

	if spec.Language != "" {
		found := false
		for _, lang := range ev.Languages {
			if lang == spec.Language {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(spec.Tags) > 0 && !intersects(ev.Tags, spec.Tags) {
		return false
	}

	return true
}

// AvailableTags returns the sorted distinct tags across all events, for
// building the tag filter choices.
func AvailableTags(events []domain.Event) []string {
	seen := make(map[string]struct{})
	for _, ev := range events {
		for _, tag := range ev.Tags {
			if tag != "" {
				seen[tag] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

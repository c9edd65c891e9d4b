// Package mocks holds the static dataset served when mock mode is
// enabled, mirroring the browser client's bundled sample data.
package mocks

import (
	"time"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
)

// UserID is the id the mock dataset enrolls "the current user" under.
const UserID = "me"

// Events returns a fresh copy of the mock event collection: one open
// event, one the user is already enrolled in, and one that is full.
func Events() []domain.Event {
	return []domain.Event{
		{
			ID:           "e1",
			Name:         "Free Walking Tour - Lisboa",
			Location:     "Lisboa, Portugal",
			StartDate:    time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC),
			Description:  "Ruta por el centro histórico y miradores.",
			Restrictions: "Grupo máx. 12",
			ImageURL:     "https://images.unsplash.com/photo-1585208798174-6cedd86e019a?auto=format&fit=crop&q=80&w=873",
			Capacity:     12,
			Participants: []string{"u1", "u2", "u3"},
			Languages:    []string{"es", "en", "pt"},
			Tags:         []string{"tour", "culture"},
		},
		{
			ID:           "e2",
			Name:         "Surf day en Ericeira",
			Location:     "Ericeira, Portugal",
			StartDate:    time.Date(2025, 11, 13, 8, 30, 0, 0, time.UTC),
			Description:  "Clases para todos los niveles + alquiler tabla.",
			Restrictions: "Saber nadar",
			ImageURL:     "https://images.unsplash.com/photo-1507525428034-b723cf961d3e",
			Capacity:     8,
			Participants: []string{UserID},
			Languages:    []string{"es", "pt"},
			Tags:         []string{"surf", "sport"},
			IsEnrolled:   true,
		},
		{
			ID:           "e3",
			Name:         "Atardecer en Cabo da Roca",
			Location:     "Sintra, Portugal",
			StartDate:    time.Date(2025, 11, 14, 17, 0, 0, 0, time.UTC),
			Description:  "Car-sharing y picnic en el acantilado.",
			ImageURL:     "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee",
			Capacity:     5,
			Participants: []string{"u2", "u3", "u4", "u5", "u6"},
			Languages:    []string{"en", "de"},
			Tags:         []string{"nature"},
		},
	}
}

// Profile returns the mock user profile.
func Profile() domain.Profile {
	return domain.Profile{
		ID:          UserID,
		Username:    "viajera23",
		Email:       "viajera23@example.com",
		Name:        "Laura",
		Surname:     "Martín",
		Description: "Siempre buscando el próximo plan.",
	}
}

// Stats returns the mock profile counters.
func Stats() domain.ProfileStats {
	return domain.ProfileStats{EventsJoined: 1, EventsCreated: 0}
}

// Package domain defines the canonical client-side types for the event
// discovery and enrollment system, independent of backend or mock source
// shape.
package domain

import "time"

// Event is the canonical, normalized representation of an event.
type Event struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	StartDate    time.Time `json:"startDate"`
	Capacity     int       `json:"capacity"`
	Participants []string  `json:"participants"`
	Languages    []string  `json:"languages"`
	Tags         []string  `json:"tags"`
	IsEnrolled   bool      `json:"isEnrolled"`
	ImageURL     string    `json:"imageUrl"`
	Restrictions string    `json:"restrictions"`
	CreatorID    string    `json:"creatorId,omitempty"`
}

// Remaining returns the number of free spots. Never negative: the server
// is authoritative and may briefly report more participants than capacity.
func (e *Event) Remaining() int {
	if r := e.Capacity - len(e.Participants); r > 0 {
		return r
	}
	return 0
}

// IsFull reports whether the event has no free spots left.
func (e *Event) IsFull() bool {
	return len(e.Participants) >= e.Capacity
}

// HasParticipant reports whether userID appears in the participant list.
func (e *Event) HasParticipant(userID string) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Session is an authenticated client session: an opaque bearer token plus
// the user id it belongs to.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Profile is a user profile as served by the clients endpoint.
type Profile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Surname     string `json:"surname,omitempty"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// ProfileStats are the aggregate counters shown on the profile page.
type ProfileStats struct {
	EventsJoined  int `json:"eventsJoined"`
	EventsCreated int `json:"eventsCreated"`
}

// EnrollmentState is the per-(user, event) state the reconciler tracks.
type EnrollmentState string

const (
	NotEnrolled EnrollmentState = "not_enrolled"
	Enrolled    EnrollmentState = "enrolled"
)

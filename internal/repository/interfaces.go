// Package repository is the single source of truth the rest of the
// client calls for event and profile data. It hides the live/mock
// switch, the wire shapes, and the enrollment-state derivation.
package repository

import (
	"context"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/dto"
)

// EventRepository exposes the event operations the client needs.
//
// List operations return canonical events sorted ascending by start
// date. Mutating operations return acknowledgement only; callers
// re-fetch to observe the updated state rather than trusting a local
// mutation.
type EventRepository interface {
	// ListEvents returns all events. When a session is active, each
	// event's IsEnrolled is derived from two independent signals: the
	// participant list and the user's own enrolled-event id set.
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// ListMyEvents returns the events the current session is enrolled
	// in. Fails with domain.ErrAuthRequired when logged out.
	ListMyEvents(ctx context.Context) ([]domain.Event, error)

	// ListCreatedEvents returns the events created by the current
	// session's user. Fails with domain.ErrAuthRequired when logged out.
	ListCreatedEvents(ctx context.Context) ([]domain.Event, error)

	// CreateEvent validates the draft and submits it, returning the
	// server's created-event representation as-is.
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventRecord, error)

	// JoinEvent enrolls the current user. A duplicate enrollment is
	// surfaced as domain.ErrAlreadyEnrolled, a full event as
	// domain.ErrEventFull.
	JoinEvent(ctx context.Context, eventID string) error

	// LeaveEvent withdraws the current user's enrollment.
	LeaveEvent(ctx context.Context, eventID string) error
}

// ProfileRepository exposes the profile operations.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.Profile, error)
	GetStats(ctx context.Context, userID string) (*domain.ProfileStats, error)
}

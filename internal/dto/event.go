// Package dto holds the wire-level request and response shapes exchanged
// with the events backend. Raw records are tolerant by construction: every
// field the backend may omit is optional here and given a documented
// default during normalization.
package dto

import (
	"strings"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
)

// EventRecord is one raw event as served by GET /events and friends.
// The backend sends numeric ids and Spanish field names; mock data uses
// string ids. FlexString absorbs both.
type EventRecord struct {
	ID                     FlexString   `json:"id"`
	Titulo                 string       `json:"titulo"`
	Descripcion            string       `json:"descripcion"`
	Fecha                  string       `json:"fecha"` // YYYY-MM-DD
	Hora                   string       `json:"hora"`  // HH:mm or HH:mm:ss
	Lugar                  string       `json:"lugar"`
	MaxPersonas            int          `json:"maxPersonas"`
	Tags                   []string     `json:"tags"`
	IdiomasPermitidos      string       `json:"idiomasPermitidos"` // comma-joined
	EdadMinima             int          `json:"edadMinima"`
	ParticipantesIds       []FlexString `json:"participantesIds"`
	ParticipantesInscritos int          `json:"participantesInscritos"`
	IsEnrolled             bool         `json:"isEnrolled"`
	IDCreador              FlexString   `json:"idCreador"`
}

// CreateEventRequest is the payload for POST /events, mirroring the
// backend's EventoCreate DTO.
type CreateEventRequest struct {
	Titulo        string            `json:"titulo"`
	Descripcion   string            `json:"descripcion"`
	Fecha         string            `json:"fecha"` // YYYY-MM-DD
	Hora          string            `json:"hora"`  // HH:mm
	Lugar         string            `json:"lugar"`
	Tags          []string          `json:"tags"`
	Restricciones map[string]string `json:"restricciones"`
	IDCreador     int64             `json:"idCreador"`
}

// Validate checks the draft is structurally complete. The UI validates
// too, but the repository enforces this again at its own boundary.
func (r *CreateEventRequest) Validate() error {
	if strings.TrimSpace(r.Titulo) == "" {
		return domain.ErrMissingTitle
	}
	if strings.TrimSpace(r.Fecha) == "" {
		return domain.ErrMissingDate
	}
	if strings.TrimSpace(r.Hora) == "" {
		return domain.ErrMissingTime
	}
	if strings.TrimSpace(r.Lugar) == "" {
		return domain.ErrMissingLocation
	}
	return nil
}

// JoinEventRequest is the payload for POST /events/join.
type JoinEventRequest struct {
	IDEvento       string `json:"idEvento"`
	IDParticipante string `json:"idParticipante"`
}

// LeaveEventRequest is the payload for POST /events/leave.
type LeaveEventRequest struct {
	IDEvento       string `json:"idEvento"`
	IDParticipante string `json:"idParticipante"`
}

// Ack is the minimal acknowledgement mutating endpoints return.
type Ack struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

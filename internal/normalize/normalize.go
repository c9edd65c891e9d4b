// Package normalize converts raw backend or mock event records into the
// canonical Event model. Normalization never fails: every missing or
// malformed field degrades to a documented default instead of erroring,
// so one bad record can never take down a whole listing.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/dto"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/images"
)

// Defaults applied to missing or malformed fields. The display strings
// stay in Spanish because that is what the product surfaces to users.
const (
	DefaultTitle    = "Evento sin título"
	DefaultLocation = "Ubicación por confirmar"
	DefaultLanguage = "es"
	MinCapacity     = 10
)

// Normalizer turns raw records into canonical events.
type Normalizer struct {
	images images.Resolver
	now    func() time.Time
	log    *zap.Logger
}

// New creates a Normalizer. A nil resolver falls back to the static
// default image; now defaults to time.Now.
func New(resolver images.Resolver, log *zap.Logger) *Normalizer {
	if resolver == nil {
		resolver = images.StaticResolver("")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{images: resolver, now: time.Now, log: log}
}

// WithClock overrides the normalizer's clock. Tests use it to make the
// missing-date fallback deterministic.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Event converts one raw record into a canonical Event.
func (n *Normalizer) Event(raw *dto.EventRecord) domain.Event {
	ev := domain.Event{
		ID:          raw.ID.String(),
		Name:        raw.Titulo,
		Description: raw.Descripcion,
		Location:    raw.Lugar,
		Tags:        raw.Tags,
		IsEnrolled:  raw.IsEnrolled,
		CreatorID:   raw.IDCreador.String(),
	}

	if strings.TrimSpace(ev.Name) == "" {
		ev.Name = DefaultTitle
	}
	if strings.TrimSpace(ev.Location) == "" {
		ev.Location = DefaultLocation
	}
	if ev.Tags == nil {
		ev.Tags = []string{}
	}

	ev.StartDate = n.startDate(raw)
	ev.Participants = participants(raw)
	ev.Capacity = capacity(raw, len(ev.Participants))
	ev.Languages = languages(raw.IdiomasPermitidos)
	ev.Restrictions = restrictions(raw)
	ev.ImageURL = n.images.Resolve(ev.Tags)

	return ev
}

// Events converts a batch of raw records.
func (n *Normalizer) Events(raws []dto.EventRecord) []domain.Event {
	events := make([]domain.Event, 0, len(raws))
	for i := range raws {
		events = append(events, n.Event(&raws[i]))
	}
	return events
}

// startDate combines the separate date and time fields into one UTC
// instant. If either is missing or the combination does not parse, the
// current time is used instead; lossy but safe, and logged.
func (n *Normalizer) startDate(raw *dto.EventRecord) time.Time {
	fecha := strings.TrimSpace(raw.Fecha)
	hora := strings.TrimSpace(raw.Hora)
	if fecha == "" || hora == "" {
		n.log.Debug("event record missing date or time, using current time",
			zap.String("event_id", raw.ID.String()))
		return n.now().UTC()
	}

	// hora arrives as HH:mm or HH:mm:ss.
	if strings.Count(hora, ":") == 1 {
		hora += ":00"
	}

	t, err := time.Parse(time.RFC3339, fmt.Sprintf("%sT%sZ", fecha, hora))
	if err != nil {
		n.log.Debug("event record has unparseable date, using current time",
			zap.String("event_id", raw.ID.String()),
			zap.String("fecha", fecha),
			zap.String("hora", hora),
			zap.Error(err))
		return n.now().UTC()
	}
	return t
}

// participants prefers the explicit id list. When the backend only sends
// a count, placeholder ids keep the length right; they never match a
// real user id, so membership tests fall through to the my-events signal.
func participants(raw *dto.EventRecord) []string {
	if len(raw.ParticipantesIds) > 0 {
		ids := make([]string, 0, len(raw.ParticipantesIds))
		for _, id := range raw.ParticipantesIds {
			if id.String() != "" {
				ids = append(ids, id.String())
			}
		}
		return ids
	}
	ids := make([]string, 0, raw.ParticipantesInscritos)
	for i := 0; i < raw.ParticipantesInscritos; i++ {
		ids = append(ids, fmt.Sprintf("anon-%d", i))
	}
	return ids
}

// capacity is the backend field when positive, otherwise
// max(participant count, MinCapacity). Always >= 1.
func capacity(raw *dto.EventRecord, participantCount int) int {
	if raw.MaxPersonas > 0 {
		return raw.MaxPersonas
	}
	if participantCount > MinCapacity {
		return participantCount
	}
	return MinCapacity
}

// languages splits the comma-joined backend field. Never empty.
func languages(joined string) []string {
	var langs []string
	for _, l := range strings.Split(joined, ",") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		return []string{DefaultLanguage}
	}
	return langs
}

// restrictions renders the structured restriction data as a display
// string. Only minimum age is modeled today.
func restrictions(raw *dto.EventRecord) string {
	if raw.EdadMinima > 0 {
		return fmt.Sprintf("Edad mínima: %d años", raw.EdadMinima)
	}
	return ""
}

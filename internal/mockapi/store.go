// Package mockapi is a development stand-in for the events backend. It
// serves the full REST contract over in-memory state so the client can
// be exercised end-to-end without real infrastructure, and it enforces
// the capacity and duplicate-enrollment rules so the client's conflict
// handling is reachable locally.
package mockapi

import (
	"errors"
	"sync"
)

// Store errors
var (
	errEventNotFound  = errors.New("evento no encontrado")
	errEventFull      = errors.New("el evento está completo")
	errAlreadyJoined  = errors.New("ya estás inscrito en este evento")
	errNotJoined      = errors.New("no estás inscrito en este evento")
	errUserNotFound   = errors.New("usuario no encontrado")
	errUserExists     = errors.New("el usuario ya existe")
	errBadCredentials = errors.New("credenciales incorrectas")
)

type user struct {
	ID          int64
	Username    string
	Email       string
	Password    string
	Name        string
	Surname     string
	Description string
}

type event struct {
	ID                int64
	Titulo            string
	Descripcion       string
	Fecha             string
	Hora              string
	Lugar             string
	MaxPersonas       int
	Tags              []string
	IdiomasPermitidos string
	EdadMinima        int
	IDCreador         int64
	Participants      []int64
}

func (e *event) hasParticipant(userID int64) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Store is the in-memory backend state.
type Store struct {
	mu          sync.Mutex
	users       map[int64]*user
	usersByName map[string]int64
	events      map[int64]*event
	nextUserID  int64
	nextEventID int64
}

// NewStore creates a Store seeded with a few sample events.
func NewStore() *Store {
	s := &Store{
		users:       make(map[int64]*user),
		usersByName: make(map[string]int64),
		events:      make(map[int64]*event),
		nextUserID:  1,
		nextEventID: 1,
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	samples := []*event{
		{
			Titulo:            "Free Walking Tour - Lisboa",
			Descripcion:       "Ruta por el centro histórico y miradores.",
			Fecha:             "2025-11-12",
			Hora:              "10:00",
			Lugar:             "Lisboa, Portugal",
			MaxPersonas:       12,
			Tags:              []string{"tour", "culture"},
			IdiomasPermitidos: "es,en,pt",
		},
		{
			Titulo:            "Surf day en Ericeira",
			Descripcion:       "Clases para todos los niveles + alquiler tabla.",
			Fecha:             "2025-11-13",
			Hora:              "08:30",
			Lugar:             "Ericeira, Portugal",
			MaxPersonas:       8,
			Tags:              []string{"surf", "sport"},
			IdiomasPermitidos: "es,pt",
			EdadMinima:        16,
		},
		{
			Titulo:            "Atardecer en Cabo da Roca",
			Descripcion:       "Car-sharing y picnic en el acantilado.",
			Fecha:             "2025-11-14",
			Hora:              "17:00",
			Lugar:             "Sintra, Portugal",
			MaxPersonas:       2,
			Tags:              []string{"nature"},
			IdiomasPermitidos: "en,de",
		},
	}
	for _, ev := range samples {
		ev.ID = s.nextEventID
		s.nextEventID++
		s.events[ev.ID] = ev
	}
}

func (s *Store) listEvents() []*event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, cloneEvent(ev))
	}
	return out
}

func (s *Store) eventsJoinedBy(userID int64) []*event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*event
	for _, ev := range s.events {
		if ev.hasParticipant(userID) {
			out = append(out, cloneEvent(ev))
		}
	}
	return out
}

func (s *Store) eventsCreatedBy(userID int64) []*event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*event
	for _, ev := range s.events {
		if ev.IDCreador == userID {
			out = append(out, cloneEvent(ev))
		}
	}
	return out
}

func (s *Store) createEvent(ev *event) *event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ID = s.nextEventID
	s.nextEventID++
	s.events[ev.ID] = ev
	return cloneEvent(ev)
}

func (s *Store) join(eventID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return errEventNotFound
	}
	if ev.hasParticipant(userID) {
		return errAlreadyJoined
	}
	if len(ev.Participants) >= ev.MaxPersonas {
		return errEventFull
	}
	ev.Participants = append(ev.Participants, userID)
	return nil
}

func (s *Store) leave(eventID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return errEventNotFound
	}
	for i, id := range ev.Participants {
		if id == userID {
			ev.Participants = append(ev.Participants[:i], ev.Participants[i+1:]...)
			return nil
		}
	}
	return errNotJoined
}

func (s *Store) createUser(username, email, password string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByName[username]; exists {
		return nil, errUserExists
	}
	u := &user{
		ID:       s.nextUserID,
		Username: username,
		Email:    email,
		Password: password,
	}
	s.nextUserID++
	s.users[u.ID] = u
	s.usersByName[username] = u.ID
	cp := *u
	return &cp, nil
}

func (s *Store) authenticate(usernameOrEmail, password string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if (u.Username == usernameOrEmail || u.Email == usernameOrEmail) && u.Password == password {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errBadCredentials
}

func (s *Store) getUser(id int64) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) updateUser(id int64, name, surname, description string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	if name != "" {
		u.Name = name
	}
	if surname != "" {
		u.Surname = surname
	}
	if description != "" {
		u.Description = description
	}
	cp := *u
	return &cp, nil
}

func (s *Store) statsFor(userID int64) (joined, created int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range s.events {
		if ev.hasParticipant(userID) {
			joined++
		}
		if ev.IDCreador == userID {
			created++
		}
	}
	return joined, created
}

func cloneEvent(ev *event) *event {
	cp := *ev
	cp.Tags = append([]string(nil), ev.Tags...)
	cp.Participants = append([]int64(nil), ev.Participants...)
	return &cp
}

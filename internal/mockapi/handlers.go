package mockapi

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// eventView is the raw record shape the real backend serves.
type eventView struct {
	ID                int64    `json:"id"`
	Titulo            string   `json:"titulo"`
	Descripcion       string   `json:"descripcion"`
	Fecha             string   `json:"fecha"`
	Hora              string   `json:"hora"`
	Lugar             string   `json:"lugar"`
	MaxPersonas       int      `json:"maxPersonas"`
	Tags              []string `json:"tags"`
	IdiomasPermitidos string   `json:"idiomasPermitidos"`
	EdadMinima        int      `json:"edadMinima,omitempty"`
	ParticipantesIds  []int64  `json:"participantesIds"`
	IDCreador         int64    `json:"idCreador,omitempty"`
	IsEnrolled        bool     `json:"isEnrolled"`
}

type createEventBody struct {
	Titulo        string            `json:"titulo"`
	Descripcion   string            `json:"descripcion"`
	Fecha         string            `json:"fecha"`
	Hora          string            `json:"hora"`
	Lugar         string            `json:"lugar"`
	Tags          []string          `json:"tags"`
	Restricciones map[string]string `json:"restricciones"`
	IDCreador     int64             `json:"idCreador"`
}

type joinLeaveBody struct {
	IDEvento       string `json:"idEvento"`
	IDParticipante string `json:"idParticipante"`
}

type signupBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginBody struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type clientView struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Description string `json:"description"`
}

type updateClientBody struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Description string `json:"description"`
}

// Server holds the mock backend's handlers.
type Server struct {
	store     *Store
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewServer creates a Server around a fresh store.
func NewServer(jwtSecret string) *Server {
	return &Server{
		store:     NewStore(),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

func (s *Server) listEvents(c *gin.Context) {
	userID, _ := s.currentUser(c)
	views := toViews(s.store.listEvents(), userID)
	c.JSON(http.StatusOK, views)
}

func (s *Server) listMyEvents(c *gin.Context) {
	userID, ok := s.requireUser(c)
	if !ok {
		return
	}
	views := toViews(s.store.eventsJoinedBy(userID), userID)
	c.JSON(http.StatusOK, views)
}

func (s *Server) listCreatedEvents(c *gin.Context) {
	userID, ok := s.requireUser(c)
	if !ok {
		return
	}
	views := toViews(s.store.eventsCreatedBy(userID), userID)
	c.JSON(http.StatusOK, views)
}

func (s *Server) createEvent(c *gin.Context) {
	userID, ok := s.requireUser(c)
	if !ok {
		return
	}

	var body createEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if strings.TrimSpace(body.Titulo) == "" || strings.TrimSpace(body.Fecha) == "" ||
		strings.TrimSpace(body.Hora) == "" || strings.TrimSpace(body.Lugar) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "titulo, fecha, hora y lugar son obligatorios"})
		return
	}

	edadMinima := 0
	if v, ok := body.Restricciones["edadMinima"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			edadMinima = n
		}
	}

	created := s.store.createEvent(&event{
		Titulo:            body.Titulo,
		Descripcion:       body.Descripcion,
		Fecha:             body.Fecha,
		Hora:              body.Hora,
		Lugar:             body.Lugar,
		MaxPersonas:       10,
		Tags:              body.Tags,
		IdiomasPermitidos: "es",
		EdadMinima:        edadMinima,
		IDCreador:         userID,
	})
	c.JSON(http.StatusOK, toView(created, userID))
}

func (s *Server) joinEvent(c *gin.Context) {
	userID, ok := s.requireUser(c)
	if !ok {
		return
	}

	var body joinLeaveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	eventID, err := strconv.ParseInt(body.IDEvento, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "idEvento inválido"})
		return
	}

	switch err := s.store.join(eventID, userID); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, errEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, errAlreadyJoined), errors.Is(err, errEventFull):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

func (s *Server) leaveEvent(c *gin.Context) {
	userID, ok := s.requireUser(c)
	if !ok {
		return
	}

	var body joinLeaveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	eventID, err := strconv.ParseInt(body.IDEvento, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "idEvento inválido"})
		return
	}

	switch err := s.store.leave(eventID, userID); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, errEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, errNotJoined):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

func (s *Server) signup(c *gin.Context) {
	var body signupBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if body.Username == "" || body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, email y password son obligatorios"})
		return
	}

	u, err := s.store.createUser(body.Username, body.Email, body.Password)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		return
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "id": u.ID, "username": u.Username})
}

func (s *Server) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	u, err := s.store.authenticate(body.UsernameOrEmail, body.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "id": u.ID, "username": u.Username})
}

// getClient serves the profile wrapped in {data: ...}, the way the real
// backend sometimes does; the client's transport unwraps it.
func (s *Server) getClient(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id inválido"})
		return
	}

	u, err := s.store.getUser(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toClientView(u)})
}

func (s *Server) updateClient(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id inválido"})
		return
	}

	var body updateClientBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	u, err := s.store.updateUser(id, body.Name, body.Surname, body.Description)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toClientView(u)})
}

func (s *Server) getClientStats(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id inválido"})
		return
	}

	joined, created := s.store.statsFor(id)
	c.JSON(http.StatusOK, gin.H{"eventsJoined": joined, "eventsCreated": created})
}

func (s *Server) issueToken(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

// currentUser resolves the requester from the bearer token, falling back
// to the X-User-Id header the browser client also sends.
func (s *Server) currentUser(c *gin.Context) (int64, bool) {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		raw := strings.TrimPrefix(auth, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.jwtSecret, nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if sub, _ := claims.GetSubject(); sub != "" {
					if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
						return id, true
					}
				}
			}
		}
	}
	if header := c.GetHeader("X-User-Id"); header != "" {
		if id, err := strconv.ParseInt(header, 10, 64); err == nil {
			return id, true
		}
	}
	return 0, false
}

func (s *Server) requireUser(c *gin.Context) (int64, bool) {
	userID, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "autenticación requerida"})
		return 0, false
	}
	return userID, true
}

func toViews(events []*event, userID int64) []eventView {
	views := make([]eventView, 0, len(events))
	for _, ev := range events {
		views = append(views, toView(ev, userID))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

func toView(ev *event, userID int64) eventView {
	ids := ev.Participants
	if ids == nil {
		ids = []int64{}
	}
	return eventView{
		ID:                ev.ID,
		Titulo:            ev.Titulo,
		Descripcion:       ev.Descripcion,
		Fecha:             ev.Fecha,
		Hora:              ev.Hora,
		Lugar:             ev.Lugar,
		MaxPersonas:       ev.MaxPersonas,
		Tags:              ev.Tags,
		IdiomasPermitidos: ev.IdiomasPermitidos,
		EdadMinima:        ev.EdadMinima,
		ParticipantesIds:  ids,
		IDCreador:         ev.IDCreador,
		IsEnrolled:        userID != 0 && ev.hasParticipant(userID),
	}
}

func toClientView(u *user) clientView {
	return clientView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Name:        u.Name,
		Surname:     u.Surname,
		Description: u.Description,
	}
}

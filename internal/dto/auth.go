package dto

// SignupRequest is the payload for POST /auth/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// AuthResponse is what signup and login return. Token and ID are optional
// in the contract; a session is only persisted when both are present.
type AuthResponse struct {
	Token    string     `json:"token"`
	ID       FlexString `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email,omitempty"`
}

// ProfileRecord is a raw profile as served by GET /clients/{id}. The
// backend sometimes wraps it in {data: ...}; transport unwraps that
// before decoding.
type ProfileRecord struct {
	ID          FlexString `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Surname     string     `json:"surname"`
	Description string     `json:"description"`
	AvatarURL   string     `json:"avatarUrl"`
}

// UpdateProfileRequest is the payload for PUT /clients/{id}.
type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Surname     string `json:"surname,omitempty"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// StatsRecord is a raw stats payload from GET /clients/{id}/stats.
type StatsRecord struct {
	EventsJoined  int `json:"eventsJoined"`
	EventsCreated int `json:"eventsCreated"`
}

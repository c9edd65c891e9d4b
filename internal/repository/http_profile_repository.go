package repository

import (
	"context"
	"fmt"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/dto"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/mocks"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/session"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/transport"
)

// HTTPProfileRepository implements ProfileRepository against the clients
// endpoint. The backend sometimes wraps profile payloads in {data: ...};
// transport unwraps that before this layer decodes.
type HTTPProfileRepository struct {
	client   *transport.Client
	sessions session.Store
}

func NewHTTPProfileRepository(client *transport.Client, sessions session.Store) *HTTPProfileRepository {
	return &HTTPProfileRepository{client: client, sessions: sessions}
}

func (r *HTTPProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	sess, err := r.sessions.Current()
	if err != nil {
		return nil, err
	}

	var raw dto.ProfileRecord
	if err := r.client.Get(ctx, "/clients/"+userID, sess, &raw); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profileFromRecord(&raw), nil
}

func (r *HTTPProfileRepository) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.Profile, error) {
	sess, err := r.sessions.Current()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrAuthRequired
	}

	var raw dto.ProfileRecord
	if err := r.client.Put(ctx, "/clients/"+userID, sess, req, &raw); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profileFromRecord(&raw), nil
}

func (r *HTTPProfileRepository) GetStats(ctx context.Context, userID string) (*domain.ProfileStats, error) {
	sess, err := r.sessions.Current()
	if err != nil {
		return nil, err
	}

	var raw dto.StatsRecord
	if err := r.client.Get(ctx, "/clients/"+userID+"/stats", sess, &raw); err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &domain.ProfileStats{
		EventsJoined:  raw.EventsJoined,
		EventsCreated: raw.EventsCreated,
	}, nil
}

func profileFromRecord(raw *dto.ProfileRecord) *domain.Profile {
	return &domain.Profile{
		ID:          raw.ID.String(),
		Username:    raw.Username,
		Email:       raw.Email,
		Name:        raw.Name,
		Surname:     raw.Surname,
		Description: raw.Description,
		AvatarURL:   raw.AvatarURL,
	}
}

// MockProfileRepository serves the bundled mock profile.
type MockProfileRepository struct{}

func NewMockProfileRepository() *MockProfileRepository { return &MockProfileRepository{} }

func (r *MockProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p := mocks.Profile()
	return &p, nil
}

func (r *MockProfileRepository) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.Profile, error) {
	p := mocks.Profile()
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Surname != "" {
		p.Surname = req.Surname
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.AvatarURL != "" {
		p.AvatarURL = req.AvatarURL
	}
	return &p, nil
}

func (r *MockProfileRepository) GetStats(ctx context.Context, userID string) (*domain.ProfileStats, error) {
	s := mocks.Stats()
	return &s, nil
}

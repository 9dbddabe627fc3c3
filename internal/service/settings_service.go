package service

import (
	"context"

	"github.com/notewall/notewall-backend/internal/domain"
	"github.com/notewall/notewall-backend/internal/dto"
)

// SettingsService handles user privacy settings
type SettingsService struct {
	settingsRepo domain.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo domain.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the actor's settings, defaults included
func (s *SettingsService) GetSettings(ctx context.Context, actorID string) (*domain.UserSettings, error) {
	return s.settingsRepo.Get(ctx, actorID)
}

// UpdateSettings changes the fields present in input
func (s *SettingsService) UpdateSettings(ctx context.Context, actorID string, input dto.UpdateSettingsRequest) (*domain.UserSettings, error) {
	return s.settingsRepo.Upsert(ctx, actorID, &domain.UpdateSettingsData{
		Anonymous:     input.Anonymous,
		AllowComments: input.AllowComments,
	})
}

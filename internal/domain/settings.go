package domain

import (
	"context"
	"time"
)

// UserSettings holds a user's privacy toggles
type UserSettings struct {
	UserID        string    `json:"userId"`
	Anonymous     bool      `json:"anonymous"`
	AllowComments bool      `json:"allowComments"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DefaultUserSettings returns the settings of a user who never changed them
func DefaultUserSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:        userID,
		Anonymous:     false,
		AllowComments: true,
	}
}

// UpdateSettingsData holds a partial settings update; nil means unchanged
type UpdateSettingsData struct {
	Anonymous     *bool
	AllowComments *bool
}

// SettingsRepository defines the interface for settings data access
type SettingsRepository interface {
	// Get returns the stored settings or the defaults when none are stored
	Get(ctx context.Context, userID string) (*UserSettings, error)
	Upsert(ctx context.Context, userID string, data *UpdateSettingsData) (*UserSettings, error)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tour-admin/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Current returns the most recently updated row. With no rows, or when the
// read fails, it returns the zero Settings.
func (r *SettingsRepository) Current(ctx context.Context) models.Settings {
	var s models.Settings
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Order("id DESC").
		Take(&s).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Msg("failed to read settings, using defaults")
		}
		return models.Settings{}
	}
	return s
}

// Save appends a new row; earlier rows are kept as history.
func (r *SettingsRepository) Save(ctx context.Context, s models.Settings) (*models.Settings, error) {
	now := time.Now()
	s.ID = 0
	s.CreatedAt = now
	s.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepository) History(ctx context.Context) ([]models.Settings, error) {
	rows := []models.Settings{}
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return rows, nil
}

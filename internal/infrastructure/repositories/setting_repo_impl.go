package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/internal/domain/repositories"
	"merchant-kita.onboarding/internal/infrastructure/models"
)

// settingRepo implements repositories.SettingRepository
type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) repositories.SettingRepository {
	return &settingRepo{db: db}
}

// Get returns the stored value for key.
func (r *settingRepo) Get(ctx context.Context, key string) (string, error) {
	var m models.Setting
	if err := r.db.WithContext(ctx).First(&m, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrNotFound
		}
		return "", err
	}
	return m.Value, nil
}

// Set upserts a value for key.
func (r *settingRepo) Set(ctx context.Context, key, value string) error {
	m := models.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Save(&m).Error
}

// Delete removes a key. Missing keys are not an error.
func (r *settingRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&models.Setting{}, "key = ?", key).Error
}

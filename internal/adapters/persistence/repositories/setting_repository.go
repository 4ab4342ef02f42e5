package repositories

import (
	"context"

	"rewardhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// settingRepository implements SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get loads the singleton row
func (r *settingRepository) Get(ctx context.Context) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("id = ?", models.SettingsID).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Save upserts the singleton row
func (r *settingRepository) Save(ctx context.Context, setting *models.Setting) error {
	setting.ID = models.SettingsID
	return r.db.WithContext(ctx).Save(setting).Error
}

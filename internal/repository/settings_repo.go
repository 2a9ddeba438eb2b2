package repository

import (
	"errors"
	"time"

	"restaurant-scheduler/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository is the configuration store for the restaurant. It is
// injected into whoever needs settings rather than living as process-global
// state.
type SettingsRepository interface {
	Get(name string) (*models.Setting, error)
	Set(name, value, description string) error
	GetAll() ([]*models.Setting, error)
}

type GormSettingsRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormSettingsRepository(db *gorm.DB, logger *logrus.Logger) (*GormSettingsRepository, error) {
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate settings table")
		return nil, err
	}

	return &GormSettingsRepository{db: db, logger: logger}, nil
}

// Get returns the named setting, or (nil, nil) when it was never set.
func (r *GormSettingsRepository) Get(name string) (*models.Setting, error) {
	var setting models.Setting
	result := r.db.Where("name = ?", name).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("name", name).Error("Failed to get setting")
		return nil, result.Error
	}

	return &setting, nil
}

// Set upserts the single row keyed by name. Last write wins.
func (r *GormSettingsRepository) Set(name, value, description string) error {
	setting := models.Setting{
		Name:        name,
		Value:       value,
		Description: description,
		UpdatedAt:   time.Now(),
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(&setting)

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("name", name).Error("Failed to set setting")
		return result.Error
	}

	r.logger.WithField("name", name).Debug("Setting saved")
	return nil
}

func (r *GormSettingsRepository) GetAll() ([]*models.Setting, error) {
	var settings []*models.Setting
	if result := r.db.Order("name ASC").Find(&settings); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list settings")
		return nil, result.Error
	}
	return settings, nil
}

package repository

import (
	"errors"
	"fmt"
	"time"

	"restaurant-scheduler/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ShiftTemplateRepository interface {
	Create(template *models.ShiftTemplate) (uint, error)
	GetByID(id uint) (*models.ShiftTemplate, error)
	GetAll() ([]*models.ShiftTemplate, error)
	Update(template *models.ShiftTemplate) (bool, error)
	Delete(id uint) (bool, error)
}

type GormShiftTemplateRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftTemplateRepository(db *gorm.DB, logger *logrus.Logger) (*GormShiftTemplateRepository, error) {
	if err := db.AutoMigrate(&models.ShiftTemplate{}, &models.PositionRequirement{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift template tables")
		return nil, err
	}

	return &GormShiftTemplateRepository{db: db, logger: logger}, nil
}

// Create inserts the template and its position requirements in one
// transaction. Requirements are inserted in slice order, so reading them
// back ordered by id reproduces the caller's order.
func (r *GormShiftTemplateRepository) Create(template *models.ShiftTemplate) (uint, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(template).Error
	})
	if err != nil {
		r.logger.WithError(err).WithField("name", template.Name).
			Error("Failed to create shift template")
		return 0, fmt.Errorf("creating shift template %s: %w", template.Name, err)
	}

	r.logger.WithFields(logrus.Fields{
		"id":           template.ID,
		"name":         template.Name,
		"requirements": len(template.PositionRequirements),
	}).Info("Shift template created")

	return template.ID, nil
}

func (r *GormShiftTemplateRepository) GetByID(id uint) (*models.ShiftTemplate, error) {
	var template models.ShiftTemplate
	result := r.db.Preload("PositionRequirements", func(db *gorm.DB) *gorm.DB {
		return db.Order("position_requirements.id ASC")
	}).First(&template, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Shift template not found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to get shift template")
		return nil, result.Error
	}

	return &template, nil
}

func (r *GormShiftTemplateRepository) GetAll() ([]*models.ShiftTemplate, error) {
	var templates []*models.ShiftTemplate

	result := r.db.Preload("PositionRequirements", func(db *gorm.DB) *gorm.DB {
		return db.Order("position_requirements.id ASC")
	}).Order("id ASC").Find(&templates)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list shift templates")
		return nil, result.Error
	}

	return templates, nil
}

// Update replaces the template's scalar fields and fully replaces its
// requirement rows, preserving the order of the supplied slice.
func (r *GormShiftTemplateRepository) Update(template *models.ShiftTemplate) (bool, error) {
	if template.ID == 0 {
		r.logger.Warn("Update called for shift template without id")
		return false, nil
	}

	template.UpdatedAt = time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("PositionRequirements", "CreatedAt").Save(template).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", template.ID).
			Delete(&models.PositionRequirement{}).Error; err != nil {
			return err
		}
		for i := range template.PositionRequirements {
			template.PositionRequirements[i].ID = 0
			template.PositionRequirements[i].TemplateID = template.ID
		}
		if len(template.PositionRequirements) > 0 {
			if err := tx.Create(&template.PositionRequirements).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("id", template.ID).
			Error("Failed to update shift template")
		return false, fmt.Errorf("updating shift template %d: %w", template.ID, err)
	}

	r.logger.WithField("id", template.ID).Info("Shift template updated")
	return true, nil
}

// Delete removes the template and its requirement rows.
func (r *GormShiftTemplateRepository) Delete(id uint) (bool, error) {
	var affected int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).
			Delete(&models.PositionRequirement{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ShiftTemplate{}, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("id", id).Error("Failed to delete shift template")
		return false, err
	}

	return affected > 0, nil
}

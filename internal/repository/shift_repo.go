package repository

import (
	"errors"
	"fmt"
	"time"

	"restaurant-scheduler/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ShiftRepository interface {
	Create(shift *models.Shift) (uint, error)
	GetByID(id uint) (*models.Shift, error)
	GetByDate(date time.Time) ([]*models.Shift, error)
	GetByDateRange(start, end time.Time) ([]*models.Shift, error)
	Update(shift *models.Shift) (bool, error)
	UpsertAssignment(shiftID uint, assignment models.ShiftAssignment) error
	RemoveAssignment(shiftID, employeeID uint) (bool, error)
	Delete(id uint) (bool, error)
}

type GormShiftRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftRepository(db *gorm.DB, logger *logrus.Logger) (*GormShiftRepository, error) {
	if err := db.AutoMigrate(&models.Shift{}, &models.ShiftAssignment{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift tables")
		return nil, err
	}

	return &GormShiftRepository{db: db, logger: logger}, nil
}

// Create inserts the shift and its assignments in one transaction. The
// shift date is normalized so stored dates compare exactly.
func (r *GormShiftRepository) Create(shift *models.Shift) (uint, error) {
	shift.Date = models.DateOf(shift.Date)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(shift).Error
	})
	if err != nil {
		r.logger.WithError(err).WithField("date", models.DateKey(shift.Date)).
			Error("Failed to create shift")
		return 0, fmt.Errorf("creating shift on %s: %w", models.DateKey(shift.Date), err)
	}

	r.logger.WithFields(logrus.Fields{
		"id":          shift.ID,
		"date":        models.DateKey(shift.Date),
		"assignments": len(shift.Assignments),
	}).Info("Shift created")

	return shift.ID, nil
}

func (r *GormShiftRepository) GetByID(id uint) (*models.Shift, error) {
	var shift models.Shift
	result := r.db.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("shift_assignments.id ASC")
	}).First(&shift, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Shift not found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to get shift")
		return nil, result.Error
	}

	return &shift, nil
}

func (r *GormShiftRepository) GetByDate(date time.Time) ([]*models.Shift, error) {
	return r.GetByDateRange(date, date)
}

// GetByDateRange returns shifts with start <= date <= end, ordered by date
// then id.
func (r *GormShiftRepository) GetByDateRange(start, end time.Time) ([]*models.Shift, error) {
	var shifts []*models.Shift

	result := r.db.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("shift_assignments.id ASC")
	}).
		Where("date BETWEEN ? AND ?", models.DateOf(start), models.DateOf(end)).
		Order("date ASC, id ASC").
		Find(&shifts)

	if result.Error != nil {
		r.logger.WithError(result.Error).WithFields(logrus.Fields{
			"start": models.DateKey(start),
			"end":   models.DateKey(end),
		}).Error("Failed to get shifts by date range")
		return nil, result.Error
	}

	return shifts, nil
}

// Update replaces the shift's scalar fields and fully replaces its
// assignment rows.
func (r *GormShiftRepository) Update(shift *models.Shift) (bool, error) {
	if shift.ID == 0 {
		r.logger.Warn("Update called for shift without id")
		return false, nil
	}

	shift.Date = models.DateOf(shift.Date)
	shift.UpdatedAt = time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assignments", "CreatedAt").Save(shift).Error; err != nil {
			return err
		}
		if err := tx.Where("shift_id = ?", shift.ID).
			Delete(&models.ShiftAssignment{}).Error; err != nil {
			return err
		}
		for i := range shift.Assignments {
			shift.Assignments[i].ID = 0
			shift.Assignments[i].ShiftID = shift.ID
		}
		if len(shift.Assignments) > 0 {
			if err := tx.Create(&shift.Assignments).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("id", shift.ID).Error("Failed to update shift")
		return false, fmt.Errorf("updating shift %d: %w", shift.ID, err)
	}

	r.logger.WithField("id", shift.ID).Info("Shift updated")
	return true, nil
}

// UpsertAssignment inserts or replaces the employee's assignment on the
// shift. An employee appears at most once per shift: an existing row for
// the same employee is replaced, not duplicated.
func (r *GormShiftRepository) UpsertAssignment(shiftID uint, assignment models.ShiftAssignment) error {
	assignment.ShiftID = shiftID

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shift_id = ? AND employee_id = ?", shiftID, assignment.EmployeeID).
			Delete(&models.ShiftAssignment{}).Error; err != nil {
			return err
		}
		assignment.ID = 0
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Shift{}).Where("id = ?", shiftID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"shift_id":    shiftID,
			"employee_id": assignment.EmployeeID,
		}).Error("Failed to upsert assignment")
		return fmt.Errorf("assigning employee %d to shift %d: %w", assignment.EmployeeID, shiftID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"shift_id":    shiftID,
		"employee_id": assignment.EmployeeID,
		"position":    assignment.Position,
	}).Info("Assignment saved")

	return nil
}

// RemoveAssignment drops the employee's assignment from the shift. Reports
// whether a row was removed.
func (r *GormShiftRepository) RemoveAssignment(shiftID, employeeID uint) (bool, error) {
	result := r.db.Where("shift_id = ? AND employee_id = ?", shiftID, employeeID).
		Delete(&models.ShiftAssignment{})

	if result.Error != nil {
		r.logger.WithError(result.Error).WithFields(logrus.Fields{
			"shift_id":    shiftID,
			"employee_id": employeeID,
		}).Error("Failed to remove assignment")
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Delete removes the shift and its assignment rows.
func (r *GormShiftRepository) Delete(id uint) (bool, error) {
	var affected int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shift_id = ?", id).
			Delete(&models.ShiftAssignment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Shift{}, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("id", id).Error("Failed to delete shift")
		return false, err
	}

	return affected > 0, nil
}

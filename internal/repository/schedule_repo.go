package repository

import (
	"errors"
	"fmt"
	"time"

	"restaurant-scheduler/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(schedule *models.WeeklySchedule) (uint, error)
	GetByID(id uint) (*models.WeeklySchedule, error)
	GetByWeekStart(weekStart time.Time) (*models.WeeklySchedule, error)
	Update(schedule *models.WeeklySchedule) (bool, error)
	Approve(id, approverID uint) (bool, error)
}

// GormScheduleRepository stores weekly schedule rows and reassembles their
// 7-day shift grouping on load. Shifts are not duplicated under the
// schedule: they stay independently addressable by date through the shift
// repository.
type GormScheduleRepository struct {
	db     *gorm.DB
	shifts ShiftRepository
	logger *logrus.Logger
}

func NewGormScheduleRepository(db *gorm.DB, shifts ShiftRepository, logger *logrus.Logger) (*GormScheduleRepository, error) {
	if err := db.AutoMigrate(&models.WeeklySchedule{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate weekly schedule table")
		return nil, err
	}

	return &GormScheduleRepository{db: db, shifts: shifts, logger: logger}, nil
}

func (r *GormScheduleRepository) Create(schedule *models.WeeklySchedule) (uint, error) {
	schedule.WeekStartDate = models.DateOf(schedule.WeekStartDate)

	if err := r.db.Create(schedule).Error; err != nil {
		r.logger.WithError(err).WithField("week_start", models.DateKey(schedule.WeekStartDate)).
			Error("Failed to create weekly schedule")
		return 0, fmt.Errorf("creating weekly schedule for %s: %w", models.DateKey(schedule.WeekStartDate), err)
	}

	r.logger.WithFields(logrus.Fields{
		"id":         schedule.ID,
		"week_start": models.DateKey(schedule.WeekStartDate),
	}).Info("Weekly schedule created")

	return schedule.ID, nil
}

func (r *GormScheduleRepository) GetByID(id uint) (*models.WeeklySchedule, error) {
	var schedule models.WeeklySchedule
	result := r.db.First(&schedule, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to get weekly schedule")
		return nil, result.Error
	}

	if err := r.loadWeekShifts(&schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *GormScheduleRepository) GetByWeekStart(weekStart time.Time) (*models.WeeklySchedule, error) {
	var schedule models.WeeklySchedule
	result := r.db.Where("week_start_date = ?", models.DateOf(weekStart)).First(&schedule)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("week_start", models.DateKey(weekStart)).Debug("Weekly schedule not found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("week_start", models.DateKey(weekStart)).
			Error("Failed to get weekly schedule")
		return nil, result.Error
	}

	if err := r.loadWeekShifts(&schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// loadWeekShifts groups the week's shifts by date under the schedule.
func (r *GormScheduleRepository) loadWeekShifts(schedule *models.WeeklySchedule) error {
	shifts, err := r.shifts.GetByDateRange(schedule.WeekStartDate, schedule.WeekEndDate())
	if err != nil {
		return err
	}

	schedule.Shifts = make(map[string][]*models.Shift)
	for _, s := range shifts {
		schedule.AddShift(s)
	}
	return nil
}

// Update persists the schedule's workflow flags and aggregates. The shift
// grouping is not written here; shifts have their own lifecycle.
func (r *GormScheduleRepository) Update(schedule *models.WeeklySchedule) (bool, error) {
	if schedule.ID == 0 {
		r.logger.Warn("Update called for weekly schedule without id")
		return false, nil
	}

	schedule.WeekStartDate = models.DateOf(schedule.WeekStartDate)
	schedule.UpdatedAt = time.Now()

	if err := r.db.Omit("CreatedAt").Save(schedule).Error; err != nil {
		r.logger.WithError(err).WithField("id", schedule.ID).Error("Failed to update weekly schedule")
		return false, fmt.Errorf("updating weekly schedule %d: %w", schedule.ID, err)
	}

	r.logger.WithField("id", schedule.ID).Info("Weekly schedule updated")
	return true, nil
}

// Approve records the approving manager and timestamp.
func (r *GormScheduleRepository) Approve(id, approverID uint) (bool, error) {
	now := time.Now()
	result := r.db.Model(&models.WeeklySchedule{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"approved_by":   approverID,
			"approval_date": now,
			"updated_at":    now,
		})

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to approve weekly schedule")
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.logger.WithFields(logrus.Fields{
		"id":          id,
		"approved_by": approverID,
	}).Info("Weekly schedule approved")

	return true, nil
}

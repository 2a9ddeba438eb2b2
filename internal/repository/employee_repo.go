package repository

import (
	"errors"
	"fmt"
	"time"

	"restaurant-scheduler/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) (uint, error)
	GetByID(id uint) (*models.Employee, error)
	GetByNumber(number string) (*models.Employee, error)
	GetAll(status *models.EmploymentStatus) ([]*models.Employee, error)
	Update(employee *models.Employee) (bool, error)
	SoftDelete(id uint) (bool, error)
	Exists(id uint) (bool, error)
}

type GormEmployeeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEmployeeRepository(db *gorm.DB, logger *logrus.Logger) (*GormEmployeeRepository, error) {
	if err := db.AutoMigrate(&models.Employee{}, &models.Availability{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate employee tables")
		return nil, err
	}

	return &GormEmployeeRepository{db: db, logger: logger}, nil
}

// Create inserts the employee row and all availability rows in one
// transaction; a failed insert leaves no partial record. Returns the newly
// assigned id.
func (r *GormEmployeeRepository) Create(employee *models.Employee) (uint, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(employee).Error
	})
	if err != nil {
		r.logger.WithError(err).WithField("employee_number", employee.EmployeeNumber).
			Error("Failed to create employee")
		return 0, fmt.Errorf("creating employee %s: %w", employee.EmployeeNumber, err)
	}

	r.logger.WithFields(logrus.Fields{
		"id":   employee.ID,
		"name": employee.FullName(),
	}).Info("Employee created")

	return employee.ID, nil
}

// GetByID reconstructs the full employee including the availability
// collection. A missing id is not an error: returns (nil, nil).
func (r *GormEmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.Preload("Availability").First(&employee, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Employee not found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to get employee")
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetByNumber(number string) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.Preload("Availability").Where("employee_number = ?", number).First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("employee_number", number).
			Error("Failed to get employee by number")
		return nil, result.Error
	}

	return &employee, nil
}

// GetAll returns employees ordered by id ascending (insertion order),
// optionally filtered by an exact status match.
func (r *GormEmployeeRepository) GetAll(status *models.EmploymentStatus) ([]*models.Employee, error) {
	var employees []*models.Employee

	query := r.db.Preload("Availability").Order("id ASC")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	if result := query.Find(&employees); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list employees")
		return nil, result.Error
	}

	r.logger.WithField("count", len(employees)).Debug("Listed employees")
	return employees, nil
}

// Update replaces every scalar field and fully replaces the availability
// collection (delete then reinsert); callers pass the complete desired
// state. Returns false without touching storage when the employee carries
// no id.
func (r *GormEmployeeRepository) Update(employee *models.Employee) (bool, error) {
	if employee.ID == 0 {
		r.logger.Warn("Update called for employee without id")
		return false, nil
	}

	employee.UpdatedAt = time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Availability", "CreatedAt").Save(employee).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", employee.ID).
			Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		for i := range employee.Availability {
			employee.Availability[i].ID = 0
			employee.Availability[i].EmployeeID = employee.ID
		}
		if len(employee.Availability) > 0 {
			if err := tx.Create(&employee.Availability).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("id", employee.ID).Error("Failed to update employee")
		return false, fmt.Errorf("updating employee %d: %w", employee.ID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"id":   employee.ID,
		"name": employee.FullName(),
	}).Info("Employee updated")

	return true, nil
}

// SoftDelete terminates the employee: sets status to Terminated and
// refreshes updated_at. The row is never removed. Reports whether a row was
// actually affected.
func (r *GormEmployeeRepository) SoftDelete(id uint) (bool, error) {
	result := r.db.Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(models.StatusTerminated),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to terminate employee")
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Employee not found for termination")
		return false, nil
	}

	r.logger.WithField("id", id).Info("Employee terminated")
	return true, nil
}

func (r *GormEmployeeRepository) Exists(id uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.Employee{}).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

package service

import (
	"fmt"
	"time"

	"restaurant-scheduler/internal/models"
	"restaurant-scheduler/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// EmployeeService is the validation boundary in front of the employee
// repository. Every constraint it enforces is checked before storage is
// touched.
type EmployeeService struct {
	repo     repository.EmployeeRepository
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewEmployeeService(repo repository.EmployeeRepository, logger *logrus.Logger) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// applyDefaults fills the roster defaults for fields the form left at their
// zero value, mirroring what a new-hire record looks like before any
// reviews exist.
func (s *EmployeeService) applyDefaults(e *models.Employee) {
	if e.Status == "" {
		e.Status = models.StatusActive
	}
	if e.HireDate.IsZero() {
		e.HireDate = time.Now()
	}
	if e.AttendanceRate == 0 {
		e.AttendanceRate = 100
	}
	if e.PunctualityScore == 0 {
		e.PunctualityScore = 100
	}
	if e.CustomerRating == 0 {
		e.CustomerRating = 5
	}
}

func (s *EmployeeService) validateEmployee(e *models.Employee) error {
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown employment status %q", ErrValidation, e.Status)
	}
	if !e.PrimaryPosition.Valid() {
		return fmt.Errorf("%w: unknown primary position %q", ErrValidation, e.PrimaryPosition)
	}
	for _, p := range e.SecondaryPositions {
		if !p.Valid() {
			return fmt.Errorf("%w: unknown secondary position %q", ErrValidation, p)
		}
	}
	for p, sk := range e.SkillLevels {
		if !p.Valid() || !sk.Valid() {
			return fmt.Errorf("%w: invalid skill entry %q: %q", ErrValidation, p, sk)
		}
	}
	for _, a := range e.Availability {
		if !a.DayOfWeek.Valid() {
			return fmt.Errorf("%w: availability day %d out of range", ErrValidation, a.DayOfWeek)
		}
	}
	if err := s.validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Create validates the employee and persists it with its availability.
// Returns the assigned id.
func (s *EmployeeService) Create(e *models.Employee) (uint, error) {
	s.applyDefaults(e)
	if err := s.validateEmployee(e); err != nil {
		s.logger.WithError(err).WithField("employee_number", e.EmployeeNumber).
			Warn("Rejected invalid employee")
		return 0, err
	}
	return s.repo.Create(e)
}

// Get returns the employee or (nil, nil) when absent.
func (s *EmployeeService) Get(id uint) (*models.Employee, error) {
	return s.repo.GetByID(id)
}

func (s *EmployeeService) GetByNumber(number string) (*models.Employee, error) {
	return s.repo.GetByNumber(number)
}

// List returns all employees, optionally filtered by status.
func (s *EmployeeService) List(status *models.EmploymentStatus) ([]*models.Employee, error) {
	return s.repo.GetAll(status)
}

// Update validates and replaces the employee's full state, including the
// status transition against what is currently stored.
func (s *EmployeeService) Update(e *models.Employee) (bool, error) {
	if e.ID == 0 {
		return false, nil
	}
	s.applyDefaults(e)
	if err := s.validateEmployee(e); err != nil {
		s.logger.WithError(err).WithField("id", e.ID).Warn("Rejected invalid employee update")
		return false, err
	}

	current, err := s.repo.GetByID(e.ID)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	if current.Status != e.Status && !current.Status.CanTransitionTo(e.Status) {
		return false, fmt.Errorf("%w: illegal status transition %s -> %s",
			ErrValidation, current.Status, e.Status)
	}

	return s.repo.Update(e)
}

// Terminate soft-deletes the employee: a normal state transition, not an
// error path. Reports whether a record changed.
func (s *EmployeeService) Terminate(id uint) (bool, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	if !current.Status.CanTransitionTo(models.StatusTerminated) {
		return false, fmt.Errorf("%w: employee %d is already terminated", ErrValidation, id)
	}
	return s.repo.SoftDelete(id)
}

package service

import (
	"fmt"
	"time"

	"restaurant-scheduler/internal/models"
	"restaurant-scheduler/internal/repository"

	"github.com/sirupsen/logrus"
)

// ScheduleService drives shift and weekly-schedule workflows: instantiating
// templates into concrete shifts, assignment upkeep, and keeping the weekly
// aggregates in step with what is stored.
type ScheduleService struct {
	shifts    repository.ShiftRepository
	schedules repository.ScheduleRepository
	templates repository.ShiftTemplateRepository
	employees repository.EmployeeRepository
	logger    *logrus.Logger
}

func NewScheduleService(
	shifts repository.ShiftRepository,
	schedules repository.ScheduleRepository,
	templates repository.ShiftTemplateRepository,
	employees repository.EmployeeRepository,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		shifts:    shifts,
		schedules: schedules,
		templates: templates,
		employees: employees,
		logger:    logger,
	}
}

// CreateShift stores a manually composed shift.
func (s *ScheduleService) CreateShift(shift *models.Shift) (uint, error) {
	if shift.Date.IsZero() {
		return 0, fmt.Errorf("%w: shift requires a date", ErrValidation)
	}
	return s.shifts.Create(shift)
}

// CreateShiftFromTemplate instantiates a template on a concrete date,
// carrying over its time window and estimated cost.
func (s *ScheduleService) CreateShiftFromTemplate(templateID uint, date time.Time, createdBy *uint) (*models.Shift, error) {
	template, err := s.templates.GetByID(templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fmt.Errorf("%w: shift template %d", ErrNotFound, templateID)
	}

	shift := &models.Shift{
		TemplateID:         &template.ID,
		Date:               models.DateOf(date),
		StartTime:          template.StartTime,
		EndTime:            template.EndTime,
		ScheduledLaborCost: template.EstimatedLaborCost,
		CreatedBy:          createdBy,
	}
	if _, err := s.shifts.Create(shift); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"shift_id":    shift.ID,
		"template_id": templateID,
		"date":        models.DateKey(date),
	}).Info("Shift instantiated from template")

	return shift, nil
}

func (s *ScheduleService) GetShift(id uint) (*models.Shift, error) {
	return s.shifts.GetByID(id)
}

func (s *ScheduleService) ShiftsForDate(date time.Time) ([]*models.Shift, error) {
	return s.shifts.GetByDate(date)
}

func (s *ScheduleService) UpdateShift(shift *models.Shift) (bool, error) {
	return s.shifts.Update(shift)
}

// AssignEmployee binds an employee to a position on a shift. The employee
// must exist; an existing assignment on the same shift is replaced. The
// window defaults to the shift's own timing. Availability is not enforced
// here: the manager decides, the system records.
func (s *ScheduleService) AssignEmployee(shiftID, employeeID uint, position models.Position, start, end models.TimeOfDay) error {
	if !position.Valid() {
		return fmt.Errorf("%w: unknown position %q", ErrValidation, position)
	}

	employee, err := s.employees.GetByID(employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return fmt.Errorf("%w: employee %d", ErrNotFound, employeeID)
	}

	shift, err := s.shifts.GetByID(shiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return fmt.Errorf("%w: shift %d", ErrNotFound, shiftID)
	}

	if start == (models.TimeOfDay{}) {
		start = shift.StartTime
	}
	if end == (models.TimeOfDay{}) {
		end = shift.EndTime
	}

	assignment := models.ShiftAssignment{
		EmployeeID: employeeID,
		Position:   position,
		StartTime:  start,
		EndTime:    end,
		IsOvertime: models.HoursBetween(start, end) > 8,
	}
	return s.shifts.UpsertAssignment(shiftID, assignment)
}

func (s *ScheduleService) UnassignEmployee(shiftID, employeeID uint) (bool, error) {
	return s.shifts.RemoveAssignment(shiftID, employeeID)
}

// GetOrCreateWeek returns the weekly schedule anchored at weekStart,
// creating an empty one when none exists. The anchor date defines the 7-day
// window; shifts already stored in that window appear grouped by date.
func (s *ScheduleService) GetOrCreateWeek(weekStart time.Time, createdBy *uint) (*models.WeeklySchedule, error) {
	schedule, err := s.schedules.GetByWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	if schedule != nil {
		return schedule, nil
	}

	schedule = &models.WeeklySchedule{
		WeekStartDate: models.DateOf(weekStart),
		CreatedBy:     createdBy,
		Shifts:        make(map[string][]*models.Shift),
	}
	if _, err := s.schedules.Create(schedule); err != nil {
		return nil, err
	}
	return s.schedules.GetByWeekStart(weekStart)
}

// RefreshWeekTotals recomputes the week's aggregate labor hours and cost
// against the live roster and persists them on the schedule row.
func (s *ScheduleService) RefreshWeekTotals(weekStart time.Time) (*models.WeeklySchedule, error) {
	schedule, err := s.schedules.GetByWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: weekly schedule for %s", ErrNotFound, models.DateKey(weekStart))
	}

	roster, err := s.employees.GetAll(nil)
	if err != nil {
		return nil, err
	}

	schedule.TotalLaborHours = schedule.TotalScheduledHours()
	schedule.TotalLaborCost = schedule.CalculateWeeklyLaborCost(roster)

	if _, err := s.schedules.Update(schedule); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"week_start":  models.DateKey(weekStart),
		"labor_hours": schedule.TotalLaborHours,
		"labor_cost":  schedule.TotalLaborCost,
	}).Info("Weekly totals refreshed")

	return schedule, nil
}

// PublishWeek marks the schedule and all its shifts published.
func (s *ScheduleService) PublishWeek(weekStart time.Time) error {
	schedule, err := s.schedules.GetByWeekStart(weekStart)
	if err != nil {
		return err
	}
	if schedule == nil {
		return fmt.Errorf("%w: weekly schedule for %s", ErrNotFound, models.DateKey(weekStart))
	}

	for _, shifts := range schedule.Shifts {
		for _, shift := range shifts {
			if shift.IsPublished {
				continue
			}
			shift.IsPublished = true
			if _, err := s.shifts.Update(shift); err != nil {
				return err
			}
		}
	}

	schedule.IsPublished = true
	_, err = s.schedules.Update(schedule)
	return err
}

// FinalizeWeek locks the schedule and records the approver.
func (s *ScheduleService) FinalizeWeek(weekStart time.Time, approverID uint) error {
	schedule, err := s.schedules.GetByWeekStart(weekStart)
	if err != nil {
		return err
	}
	if schedule == nil {
		return fmt.Errorf("%w: weekly schedule for %s", ErrNotFound, models.DateKey(weekStart))
	}

	schedule.IsFinalized = true
	if _, err := s.schedules.Update(schedule); err != nil {
		return err
	}
	_, err = s.schedules.Approve(schedule.ID, approverID)
	return err
}

package service

import (
	"testing"
	"time"

	"restaurant-scheduler/internal/models"
	"restaurant-scheduler/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleFixture struct {
	schedules *ScheduleService
	employees *EmployeeService
	templates *TemplateService
}

func newScheduleFixture(t *testing.T) scheduleFixture {
	t.Helper()
	db := newTestDB(t)
	logger := testLogger()

	employeeRepo, err := repository.NewGormEmployeeRepository(db, logger)
	require.NoError(t, err)
	templateRepo, err := repository.NewGormShiftTemplateRepository(db, logger)
	require.NoError(t, err)
	shiftRepo, err := repository.NewGormShiftRepository(db, logger)
	require.NoError(t, err)
	scheduleRepo, err := repository.NewGormScheduleRepository(db, shiftRepo, logger)
	require.NoError(t, err)

	return scheduleFixture{
		schedules: NewScheduleService(shiftRepo, scheduleRepo, templateRepo, employeeRepo, logger),
		employees: NewEmployeeService(employeeRepo, logger),
		templates: NewTemplateService(templateRepo, logger),
	}
}

func (f scheduleFixture) createEmployee(t *testing.T, number string, wage float64) uint {
	t.Helper()
	e := validEmployee()
	e.EmployeeNumber = number
	e.HourlyWage = wage
	id, err := f.employees.Create(e)
	require.NoError(t, err)
	return id
}

func TestCreateShiftRequiresDate(t *testing.T) {
	f := newScheduleFixture(t)

	_, err := f.schedules.CreateShift(&models.Shift{
		StartTime: models.NewTimeOfDay(9, 0),
		EndTime:   models.NewTimeOfDay(17, 0),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateShiftFromTemplate(t *testing.T) {
	f := newScheduleFixture(t)

	tmpl := validTemplate()
	tmpl.EstimatedLaborCost = 320
	templateID, err := f.templates.Create(tmpl)
	require.NoError(t, err)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	shift, err := f.schedules.CreateShiftFromTemplate(templateID, date, nil)
	require.NoError(t, err)
	require.NotNil(t, shift)
	require.NotZero(t, shift.ID)

	got, err := f.schedules.GetShift(shift.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NotNil(t, got.TemplateID)
	assert.Equal(t, templateID, *got.TemplateID)
	assert.Equal(t, "2026-09-01", models.DateKey(got.Date))
	assert.Equal(t, models.NewTimeOfDay(6, 0), got.StartTime)
	assert.Equal(t, models.NewTimeOfDay(14, 0), got.EndTime)
	assert.InDelta(t, 320.0, got.ScheduledLaborCost, 1e-9)
}

func TestCreateShiftFromMissingTemplate(t *testing.T) {
	f := newScheduleFixture(t)

	_, err := f.schedules.CreateShiftFromTemplate(42, time.Now(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignEmployee(t *testing.T) {
	f := newScheduleFixture(t)
	employeeID := f.createEmployee(t, "EMP001", 15)

	shiftID, err := f.schedules.CreateShift(&models.Shift{
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: models.NewTimeOfDay(9, 0),
		EndTime:   models.NewTimeOfDay(17, 0),
	})
	require.NoError(t, err)

	// zero-valued window falls back to the shift's own times
	err = f.schedules.AssignEmployee(shiftID, employeeID, models.PositionCashier, models.TimeOfDay{}, models.TimeOfDay{})
	require.NoError(t, err)

	got, err := f.schedules.GetShift(shiftID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, models.NewTimeOfDay(9, 0), got.Assignments[0].StartTime)
	assert.Equal(t, models.NewTimeOfDay(17, 0), got.Assignments[0].EndTime)
	assert.False(t, got.Assignments[0].IsOvertime)

	// reassigning the same employee replaces the previous assignment
	err = f.schedules.AssignEmployee(shiftID, employeeID, models.PositionKitchen, models.NewTimeOfDay(8, 0), models.NewTimeOfDay(18, 0))
	require.NoError(t, err)

	got, err = f.schedules.GetShift(shiftID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, models.PositionKitchen, got.Assignments[0].Position)
	assert.True(t, got.Assignments[0].IsOvertime)
}

func TestAssignEmployeeValidation(t *testing.T) {
	f := newScheduleFixture(t)
	employeeID := f.createEmployee(t, "EMP001", 15)

	shiftID, err := f.schedules.CreateShift(&models.Shift{
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: models.NewTimeOfDay(9, 0),
		EndTime:   models.NewTimeOfDay(17, 0),
	})
	require.NoError(t, err)

	err = f.schedules.AssignEmployee(shiftID, employeeID, "Barista", models.TimeOfDay{}, models.TimeOfDay{})
	assert.ErrorIs(t, err, ErrValidation)

	err = f.schedules.AssignEmployee(shiftID, 42, models.PositionCashier, models.TimeOfDay{}, models.TimeOfDay{})
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.schedules.AssignEmployee(42, employeeID, models.PositionCashier, models.TimeOfDay{}, models.TimeOfDay{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnassignEmployee(t *testing.T) {
	f := newScheduleFixture(t)
	employeeID := f.createEmployee(t, "EMP001", 15)

	shiftID, err := f.schedules.CreateShift(&models.Shift{
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: models.NewTimeOfDay(9, 0),
		EndTime:   models.NewTimeOfDay(17, 0),
	})
	require.NoError(t, err)

	require.NoError(t, f.schedules.AssignEmployee(shiftID, employeeID, models.PositionCashier, models.TimeOfDay{}, models.TimeOfDay{}))

	ok, err := f.schedules.UnassignEmployee(shiftID, employeeID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.schedules.UnassignEmployee(shiftID, employeeID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetOrCreateWeek(t *testing.T) {
	f := newScheduleFixture(t)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	first, err := f.schedules.GetOrCreateWeek(monday, nil)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "2026-08-31", models.DateKey(first.WeekStartDate))

	second, err := f.schedules.GetOrCreateWeek(monday, nil)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}

func TestRefreshWeekTotals(t *testing.T) {
	f := newScheduleFixture(t)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	employeeID := f.createEmployee(t, "EMP001", 15)

	_, err := f.schedules.GetOrCreateWeek(monday, nil)
	require.NoError(t, err)

	shiftID, err := f.schedules.CreateShift(&models.Shift{
		Date:      monday,
		StartTime: models.NewTimeOfDay(8, 0),
		EndTime:   models.NewTimeOfDay(18, 0),
	})
	require.NoError(t, err)
	require.NoError(t, f.schedules.AssignEmployee(shiftID, employeeID, models.PositionCashier, models.TimeOfDay{}, models.TimeOfDay{}))

	refreshed, err := f.schedules.RefreshWeekTotals(monday)
	require.NoError(t, err)

	// 10h on shift: 8 regular + 2 overtime at $15
	assert.InDelta(t, 10.0, refreshed.TotalLaborHours, 1e-9)
	assert.InDelta(t, 165.0, refreshed.TotalLaborCost, 1e-9)

	stored, err := f.schedules.GetOrCreateWeek(monday, nil)
	require.NoError(t, err)
	assert.InDelta(t, 165.0, stored.TotalLaborCost, 1e-9)
}

func TestRefreshWeekTotalsMissingWeek(t *testing.T) {
	f := newScheduleFixture(t)

	_, err := f.schedules.RefreshWeekTotals(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishWeek(t *testing.T) {
	f := newScheduleFixture(t)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := f.schedules.GetOrCreateWeek(monday, nil)
	require.NoError(t, err)

	shiftID, err := f.schedules.CreateShift(&models.Shift{
		Date:      monday,
		StartTime: models.NewTimeOfDay(9, 0),
		EndTime:   models.NewTimeOfDay(17, 0),
	})
	require.NoError(t, err)

	require.NoError(t, f.schedules.PublishWeek(monday))

	shift, err := f.schedules.GetShift(shiftID)
	require.NoError(t, err)
	assert.True(t, shift.IsPublished)

	week, err := f.schedules.GetOrCreateWeek(monday, nil)
	require.NoError(t, err)
	assert.True(t, week.IsPublished)
}

func TestFinalizeWeek(t *testing.T) {
	f := newScheduleFixture(t)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := f.schedules.GetOrCreateWeek(monday, nil)
	require.NoError(t, err)

	require.NoError(t, f.schedules.FinalizeWeek(monday, 7))

	week, err := f.schedules.GetOrCreateWeek(monday, nil)
	require.NoError(t, err)
	assert.True(t, week.IsFinalized)
	require.NotNil(t, week.ApprovedBy)
	assert.Equal(t, uint(7), *week.ApprovedBy)
}

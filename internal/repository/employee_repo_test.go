package repository

import (
	"testing"
	"time"

	"restaurant-scheduler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployeeRepo(t *testing.T) *GormEmployeeRepository {
	t.Helper()
	repo, err := NewGormEmployeeRepository(newTestDB(t), testLogger())
	require.NoError(t, err)
	return repo
}

func sampleEmployee() *models.Employee {
	return &models.Employee{
		EmployeeNumber:     "EMP001",
		FirstName:          "John",
		LastName:           "Smith",
		Email:              "john.smith@restaurant.com",
		HireDate:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:             models.StatusActive,
		HourlyWage:         15.50,
		PrimaryPosition:    models.PositionCashier,
		SecondaryPositions: models.PositionList{models.PositionKitchen, models.PositionDriveThru},
		SkillLevels:        models.SkillLevelMap{models.PositionCashier: models.SkillAdvanced},
		MaxHoursPerWeek:    40,
		MinHoursPerWeek:    20,
		Availability: []models.Availability{
			{
				DayOfWeek:   models.Monday,
				StartTime:   models.NewTimeOfDay(9, 0),
				EndTime:     models.NewTimeOfDay(17, 0),
				IsPreferred: true,
			},
		},
		AttendanceRate:   100,
		PunctualityScore: 100,
		CustomerRating:   5,
	}
}

func TestEmployeeCreateAndGet(t *testing.T) {
	repo := newEmployeeRepo(t)

	id, err := repo.Create(sampleEmployee())
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "EMP001", got.EmployeeNumber)
	assert.Equal(t, "John Smith", got.FullName())
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, models.PositionList{models.PositionKitchen, models.PositionDriveThru}, got.SecondaryPositions)
	assert.Equal(t, models.SkillAdvanced, got.SkillLevels[models.PositionCashier])

	require.Len(t, got.Availability, 1)
	assert.Equal(t, models.Monday, got.Availability[0].DayOfWeek)
	assert.Equal(t, models.NewTimeOfDay(9, 0), got.Availability[0].StartTime)
	assert.True(t, got.Availability[0].IsPreferred)
}

func TestEmployeeGetByIDMissing(t *testing.T) {
	repo := newEmployeeRepo(t)

	got, err := repo.GetByID(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEmployeeGetByNumber(t *testing.T) {
	repo := newEmployeeRepo(t)

	_, err := repo.Create(sampleEmployee())
	require.NoError(t, err)

	got, err := repo.GetByNumber("EMP001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "John", got.FirstName)

	missing, err := repo.GetByNumber("EMP999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEmployeeRepoReopenMigration(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger()

	repo, err := NewGormEmployeeRepository(db, logger)
	require.NoError(t, err)
	id, err := repo.Create(sampleEmployee())
	require.NoError(t, err)

	// migrating again over an existing schema must be a no-op
	again, err := NewGormEmployeeRepository(db, logger)
	require.NoError(t, err)

	got, err := again.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "EMP001", got.EmployeeNumber)
}

func TestEmployeeUpdateReplacesAvailability(t *testing.T) {
	repo := newEmployeeRepo(t)

	id, err := repo.Create(sampleEmployee())
	require.NoError(t, err)

	stored, err := repo.GetByID(id)
	require.NoError(t, err)

	stored.HourlyWage = 17.25
	stored.Availability = []models.Availability{
		{DayOfWeek: models.Tuesday, StartTime: models.NewTimeOfDay(12, 0), EndTime: models.NewTimeOfDay(20, 0)},
		{DayOfWeek: models.Friday, StartTime: models.NewTimeOfDay(8, 0), EndTime: models.NewTimeOfDay(16, 0)},
	}

	ok, err := repo.Update(stored)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.InDelta(t, 17.25, got.HourlyWage, 1e-9)
	require.Len(t, got.Availability, 2)
	assert.Equal(t, models.Tuesday, got.Availability[0].DayOfWeek)
	assert.Equal(t, models.Friday, got.Availability[1].DayOfWeek)
}

func TestEmployeeUpdateWithoutID(t *testing.T) {
	repo := newEmployeeRepo(t)

	ok, err := repo.Update(sampleEmployee())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmployeeSoftDelete(t *testing.T) {
	repo := newEmployeeRepo(t)

	id, err := repo.Create(sampleEmployee())
	require.NoError(t, err)

	ok, err := repo.SoftDelete(id)
	require.NoError(t, err)
	assert.True(t, ok)

	// the row survives, only the status changes
	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusTerminated, got.Status)

	ok, err = repo.SoftDelete(42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmployeeGetAllFiltersByStatus(t *testing.T) {
	repo := newEmployeeRepo(t)

	first := sampleEmployee()
	_, err := repo.Create(first)
	require.NoError(t, err)

	second := sampleEmployee()
	second.EmployeeNumber = "EMP002"
	second.FirstName = "Maria"
	second.Status = models.StatusOnLeave
	_, err = repo.Create(second)
	require.NoError(t, err)

	all, err := repo.GetAll(nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "EMP001", all[0].EmployeeNumber)
	assert.Equal(t, "EMP002", all[1].EmployeeNumber)

	active := models.StatusActive
	filtered, err := repo.GetAll(&active)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "EMP001", filtered[0].EmployeeNumber)
}

func TestEmployeeExists(t *testing.T) {
	repo := newEmployeeRepo(t)

	id, err := repo.Create(sampleEmployee())
	require.NoError(t, err)

	ok, err := repo.Exists(id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(42)
	require.NoError(t, err)
	assert.False(t, ok)
}

package repository

import (
	"testing"
	"time"

	"restaurant-scheduler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduleRepo(t *testing.T) (*GormScheduleRepository, *GormShiftRepository) {
	t.Helper()
	db := newTestDB(t)
	logger := testLogger()

	shifts, err := NewGormShiftRepository(db, logger)
	require.NoError(t, err)
	schedules, err := NewGormScheduleRepository(db, shifts, logger)
	require.NoError(t, err)

	return schedules, shifts
}

func TestScheduleCreateAndGet(t *testing.T) {
	repo, _ := newScheduleRepo(t)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	id, err := repo.Create(&models.WeeklySchedule{WeekStartDate: monday})
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2026-08-31", models.DateKey(got.WeekStartDate))
	assert.False(t, got.IsPublished)
	assert.NotNil(t, got.Shifts)
}

func TestScheduleGetByWeekStartGroupsShifts(t *testing.T) {
	repo, shifts := newScheduleRepo(t)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(&models.WeeklySchedule{WeekStartDate: monday})
	require.NoError(t, err)

	_, err = shifts.Create(sampleShift(monday))
	require.NoError(t, err)
	_, err = shifts.Create(sampleShift(monday))
	require.NoError(t, err)
	_, err = shifts.Create(sampleShift(monday.AddDate(0, 0, 2)))
	require.NoError(t, err)
	// outside the week, must not be picked up
	_, err = shifts.Create(sampleShift(monday.AddDate(0, 0, 7)))
	require.NoError(t, err)

	got, err := repo.GetByWeekStart(monday)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Len(t, got.Shifts, 2)
	assert.Len(t, got.ShiftsForDate(monday), 2)
	assert.Len(t, got.ShiftsForDate(monday.AddDate(0, 0, 2)), 1)
	assert.Empty(t, got.ShiftsForDate(monday.AddDate(0, 0, 7)))
}

func TestScheduleGetByWeekStartMissing(t *testing.T) {
	repo, _ := newScheduleRepo(t)

	got, err := repo.GetByWeekStart(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScheduleUpdateFlags(t *testing.T) {
	repo, _ := newScheduleRepo(t)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	id, err := repo.Create(&models.WeeklySchedule{WeekStartDate: monday})
	require.NoError(t, err)

	stored, err := repo.GetByID(id)
	require.NoError(t, err)

	stored.IsPublished = true
	stored.TotalLaborHours = 120
	stored.TotalLaborCost = 1860

	ok, err := repo.Update(stored)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.InDelta(t, 120.0, got.TotalLaborHours, 1e-9)
	assert.InDelta(t, 1860.0, got.TotalLaborCost, 1e-9)
}

func TestScheduleUpdateWithoutID(t *testing.T) {
	repo, _ := newScheduleRepo(t)

	ok, err := repo.Update(&models.WeeklySchedule{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScheduleApprove(t *testing.T) {
	repo, _ := newScheduleRepo(t)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	id, err := repo.Create(&models.WeeklySchedule{WeekStartDate: monday})
	require.NoError(t, err)

	ok, err := repo.Approve(id, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, uint(7), *got.ApprovedBy)
	assert.NotNil(t, got.ApprovalDate)

	ok, err = repo.Approve(42, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

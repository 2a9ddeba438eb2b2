package models

import (
	"fmt"
	"time"
)

// Availability is one weekly window an employee can be scheduled in.
type Availability struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EmployeeID  uint      `gorm:"not null;index" json:"employee_id"`
	DayOfWeek   WeekDay   `gorm:"not null" json:"day_of_week" validate:"gte=0,lte=6"` // 0=Monday, 6=Sunday
	StartTime   TimeOfDay `gorm:"type:text;not null" json:"start_time"`
	EndTime     TimeOfDay `gorm:"type:text;not null" json:"end_time"`
	IsPreferred bool      `gorm:"not null;default:false" json:"is_preferred"`
}

func (Availability) TableName() string {
	return "employee_availability"
}

// Covers reports whether this window fully contains [start, end] on the
// given day.
func (a Availability) Covers(day WeekDay, start, end TimeOfDay) bool {
	return a.DayOfWeek == day &&
		a.StartTime.Minutes() <= start.Minutes() &&
		a.EndTime.Minutes() >= end.Minutes()
}

type Employee struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	EmployeeNumber string `gorm:"uniqueIndex;not null" json:"employee_number" validate:"required"`
	FirstName      string `gorm:"not null" json:"first_name" validate:"required"`
	LastName       string `gorm:"not null" json:"last_name" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`

	HireDate   time.Time        `gorm:"not null" json:"hire_date"`
	Status     EmploymentStatus `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	HourlyWage float64          `gorm:"not null" json:"hourly_wage" validate:"gt=0"`

	PrimaryPosition    Position      `gorm:"type:varchar(30);not null" json:"primary_position"`
	SecondaryPositions PositionList  `gorm:"type:text" json:"secondary_positions"`
	SkillLevels        SkillLevelMap `gorm:"type:text" json:"skill_levels"`

	MaxHoursPerWeek int            `gorm:"not null;default:40" json:"max_hours_per_week" validate:"gte=0"`
	MinHoursPerWeek int            `gorm:"not null;default:20" json:"min_hours_per_week" validate:"gte=0,ltefield=MaxHoursPerWeek"`
	Availability    []Availability `gorm:"foreignKey:EmployeeID" json:"availability" validate:"dive"`
	PreferredShifts StringList     `gorm:"type:text" json:"preferred_shifts"` // morning, afternoon, evening, night

	AttendanceRate    float64    `gorm:"not null;default:100" json:"attendance_rate"`
	PunctualityScore  float64    `gorm:"not null;default:100" json:"punctuality_score"`
	CustomerRating    float64    `gorm:"not null;default:5" json:"customer_rating" validate:"gte=1,lte=5"`
	TrainingCompleted StringList `gorm:"type:text" json:"training_completed"`

	CannotWorkWith      IDList `gorm:"type:text" json:"cannot_work_with"` // employee ids
	SpecialRequirements string `json:"special_requirements"`
	Notes               string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) FullName() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

// CanSupervise reports whether the employee's primary position carries
// supervisory authority.
func (e *Employee) CanSupervise() bool {
	return e.PrimaryPosition == PositionManager || e.PrimaryPosition == PositionShiftSupervisor
}

// WeeklyLaborCost estimates the weekly cost of this employee: the midpoint
// of the weekly hour bounds at the base wage. Not tied to actual
// assignments.
func (e *Employee) WeeklyLaborCost() float64 {
	avgHours := float64(e.MinHoursPerWeek+e.MaxHoursPerWeek) / 2
	return avgHours * e.HourlyWage
}

// CanWorkPosition reports whether the position is the employee's primary or
// one of the secondaries.
func (e *Employee) CanWorkPosition(p Position) bool {
	if e.PrimaryPosition == p {
		return true
	}
	return e.SecondaryPositions.Contains(p)
}

// SkillFor returns the employee's skill level for a position, defaulting to
// Beginner when none is recorded.
func (e *Employee) SkillFor(p Position) SkillLevel {
	if s, ok := e.SkillLevels[p]; ok {
		return s
	}
	return SkillBeginner
}

// IsAvailable reports whether any availability window on the given day fully
// contains [start, end].
func (e *Employee) IsAvailable(day WeekDay, start, end TimeOfDay) bool {
	for _, a := range e.Availability {
		if a.Covers(day, start, end) {
			return true
		}
	}
	return false
}

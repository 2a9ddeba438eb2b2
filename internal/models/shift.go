package models

import (
	"time"
)

// PositionRequirement is the headcount and qualification constraint for one
// position within a shift template.
type PositionRequirement struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	TemplateID          uint       `gorm:"not null;index" json:"template_id"`
	Position            Position   `gorm:"type:varchar(30);not null" json:"position"`
	MinimumRequired     int        `gorm:"not null" json:"minimum_required" validate:"gte=0"`
	MaximumAllowed      int        `gorm:"not null" json:"maximum_allowed" validate:"gtefield=MinimumRequired"`
	PreferredSkillLevel SkillLevel `gorm:"type:varchar(20)" json:"preferred_skill_level"` // empty = no floor
	MustHaveTraining    StringList `gorm:"type:text" json:"must_have_training"`
	SupervisorRequired  bool       `gorm:"not null;default:false" json:"supervisor_required"`
}

func (PositionRequirement) TableName() string {
	return "position_requirements"
}

// ShiftTemplate is a reusable definition of a recurring shift's timing and
// staffing requirements.
type ShiftTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name" validate:"required"`
	ShiftType ShiftType `gorm:"type:varchar(30);not null" json:"shift_type"`
	StartTime TimeOfDay `gorm:"type:text;not null" json:"start_time"`
	EndTime   TimeOfDay `gorm:"type:text;not null" json:"end_time"`

	// Requirement order is preserved through insertion order.
	PositionRequirements []PositionRequirement `gorm:"foreignKey:TemplateID" json:"position_requirements" validate:"dive"`

	BreakDurationMinutes int `gorm:"not null;default:30" json:"break_duration_minutes"`
	LunchDurationMinutes int `gorm:"not null;default:60" json:"lunch_duration_minutes"`
	MinimumBreakCoverage int `gorm:"not null;default:1" json:"minimum_break_coverage"`

	IsPeakHours         bool          `gorm:"not null;default:false" json:"is_peak_hours"`
	Priority            ShiftPriority `gorm:"type:varchar(20);not null;default:'Normal'" json:"priority"`
	SpecialRequirements string        `json:"special_requirements"`

	ApplicableDays WeekDaySet `gorm:"type:text" json:"applicable_days"`

	EstimatedLaborCost     float64 `gorm:"not null;default:0" json:"estimated_labor_cost"`
	OvertimeThresholdHours float64 `gorm:"not null;default:8" json:"overtime_threshold_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ShiftTemplate) TableName() string {
	return "shift_templates"
}

// DurationHours is the template's span in hours; an end at or before the
// start wraps past midnight.
func (t *ShiftTemplate) DurationHours() float64 {
	return HoursBetween(t.StartTime, t.EndTime)
}

// TotalPositionsNeeded sums the minimum headcounts across requirements.
func (t *ShiftTemplate) TotalPositionsNeeded() int {
	total := 0
	for _, req := range t.PositionRequirements {
		total += req.MinimumRequired
	}
	return total
}

// RequirementFor returns the requirement for a position, or nil.
func (t *ShiftTemplate) RequirementFor(p Position) *PositionRequirement {
	for i := range t.PositionRequirements {
		if t.PositionRequirements[i].Position == p {
			return &t.PositionRequirements[i]
		}
	}
	return nil
}

// ShiftAssignment binds one employee to one position within one shift.
type ShiftAssignment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ShiftID    uint       `gorm:"not null;index" json:"shift_id"`
	EmployeeID uint       `gorm:"not null;index" json:"employee_id"`
	Position   Position   `gorm:"type:varchar(30);not null" json:"position"`
	StartTime  TimeOfDay  `gorm:"type:text;not null" json:"start_time"`
	EndTime    TimeOfDay  `gorm:"type:text;not null" json:"end_time"`
	IsOvertime bool       `gorm:"not null;default:false" json:"is_overtime"`
	BreakTimes BreakTimes `gorm:"type:text" json:"break_times"`
	Notes      string     `json:"notes"`
}

func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}

// DurationHours is the assignment's span in hours with the same overnight
// wrap rule as shifts and templates.
func (a *ShiftAssignment) DurationHours() float64 {
	return HoursBetween(a.StartTime, a.EndTime)
}

// regularOvertimeSplitHours is where an assignment's hours split into
// regular and time-and-a-half pay.
const regularOvertimeSplitHours = 8.0

// Cost prices the assignment against an hourly wage: hours up to the split
// at base rate, the rest at 1.5x.
func (a *ShiftAssignment) Cost(hourlyWage float64) float64 {
	hours := a.DurationHours()
	regular := hours
	overtime := 0.0
	if hours > regularOvertimeSplitHours {
		regular = regularOvertimeSplitHours
		overtime = hours - regularOvertimeSplitHours
	}
	return regular*hourlyWage + overtime*hourlyWage*1.5
}

// StaffingPolicy decides whether a shift is understaffed. Kept swappable:
// the default threshold predates requirement-aware staffing checks and is
// expected to be replaced by TemplateStaffingPolicy eventually.
type StaffingPolicy func(s *Shift) bool

// MinimumHeadcountPolicy flags shifts with fewer than min assigned staff.
func MinimumHeadcountPolicy(min int) StaffingPolicy {
	return func(s *Shift) bool {
		return s.TotalScheduledEmployees() < min
	}
}

// TemplateStaffingPolicy flags shifts whose per-position headcount falls
// short of the template's minimums.
func TemplateStaffingPolicy(t *ShiftTemplate) StaffingPolicy {
	return func(s *Shift) bool {
		filled := s.PositionsFilled()
		for _, req := range t.PositionRequirements {
			if filled[req.Position] < req.MinimumRequired {
				return true
			}
		}
		return false
	}
}

// DefaultStaffingPolicy preserves the original heuristic: fewer than three
// assigned staff is understaffed, regardless of the linked template.
var DefaultStaffingPolicy = MinimumHeadcountPolicy(3)

// Shift is a concrete scheduled instance on a calendar date.
type Shift struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TemplateID *uint     `gorm:"index" json:"template_id"`
	Date       time.Time `gorm:"not null;index" json:"date"`
	StartTime  TimeOfDay `gorm:"type:text;not null" json:"start_time"`
	EndTime    TimeOfDay `gorm:"type:text;not null" json:"end_time"`

	Assignments []ShiftAssignment `gorm:"foreignKey:ShiftID" json:"assignments"`

	IsPublished     bool       `gorm:"not null;default:false" json:"is_published"`
	IsCompleted     bool       `gorm:"not null;default:false" json:"is_completed"`
	ActualStartTime *TimeOfDay `gorm:"type:text" json:"actual_start_time"`
	ActualEndTime   *TimeOfDay `gorm:"type:text" json:"actual_end_time"`

	SalesTarget     float64 `gorm:"not null;default:0" json:"sales_target"`
	ActualSales     float64 `gorm:"not null;default:0" json:"actual_sales"`
	CustomerCount   int     `gorm:"not null;default:0" json:"customer_count"`
	AverageWaitTime float64 `gorm:"not null;default:0" json:"average_wait_time"`

	ScheduledLaborCost float64 `gorm:"not null;default:0" json:"scheduled_labor_cost"`
	ActualLaborCost    float64 `gorm:"not null;default:0" json:"actual_labor_cost"`
	OvertimeHours      float64 `gorm:"not null;default:0" json:"overtime_hours"`

	ManagerNotes   string     `json:"manager_notes"`
	IssuesReported StringList `gorm:"type:text" json:"issues_reported"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *uint     `json:"created_by"` // manager employee id
}

func (Shift) TableName() string {
	return "shifts"
}

func (s *Shift) DurationHours() float64 {
	return HoursBetween(s.StartTime, s.EndTime)
}

func (s *Shift) TotalScheduledEmployees() int {
	return len(s.Assignments)
}

// PositionsFilled counts assigned employees per position.
func (s *Shift) PositionsFilled() map[Position]int {
	counts := make(map[Position]int)
	for _, a := range s.Assignments {
		counts[a.Position]++
	}
	return counts
}

// AssignmentFor returns the assignment for an employee, or nil. An employee
// appears at most once per shift.
func (s *Shift) AssignmentFor(employeeID uint) *ShiftAssignment {
	for i := range s.Assignments {
		if s.Assignments[i].EmployeeID == employeeID {
			return &s.Assignments[i]
		}
	}
	return nil
}

// IsUnderstaffed applies the default staffing policy.
func (s *Shift) IsUnderstaffed() bool {
	return DefaultStaffingPolicy(s)
}

// CalculateLaborCost prices every assignment against the supplied roster.
// Assignments whose employee id is not in the roster contribute zero,
// silently: the roster a caller holds may lag behind terminations and a
// missing employee must not sink the whole report.
func (s *Shift) CalculateLaborCost(roster []*Employee) float64 {
	byID := make(map[uint]*Employee, len(roster))
	for _, e := range roster {
		byID[e.ID] = e
	}

	total := 0.0
	for i := range s.Assignments {
		if e, ok := byID[s.Assignments[i].EmployeeID]; ok {
			total += s.Assignments[i].Cost(e.HourlyWage)
		}
	}
	return total
}

// AddAssignment appends an assignment, defaulting its window to the shift's
// own when zero-valued times are passed.
func (s *Shift) AddAssignment(employeeID uint, position Position, start, end TimeOfDay) {
	if start == (TimeOfDay{}) {
		start = s.StartTime
	}
	if end == (TimeOfDay{}) {
		end = s.EndTime
	}
	s.Assignments = append(s.Assignments, ShiftAssignment{
		ShiftID:    s.ID,
		EmployeeID: employeeID,
		Position:   position,
		StartTime:  start,
		EndTime:    end,
	})
}

// RemoveAssignment drops the employee's assignment, if any.
func (s *Shift) RemoveAssignment(employeeID uint) {
	kept := s.Assignments[:0]
	for _, a := range s.Assignments {
		if a.EmployeeID != employeeID {
			kept = append(kept, a)
		}
	}
	s.Assignments = kept
}

// WeeklySchedule aggregates the shifts of one 7-day window anchored at
// WeekStartDate. Shifts stay independently addressable by date; the
// schedule row stores only workflow state and aggregates.
type WeeklySchedule struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WeekStartDate time.Time `gorm:"not null;uniqueIndex" json:"week_start_date"`

	// Shifts grouped by date key (see DateKey); loaded by the repository,
	// never persisted as a column.
	Shifts map[string][]*Shift `gorm:"-" json:"shifts"`

	IsPublished     bool    `gorm:"not null;default:false" json:"is_published"`
	IsFinalized     bool    `gorm:"not null;default:false" json:"is_finalized"`
	TotalLaborHours float64 `gorm:"not null;default:0" json:"total_labor_hours"`
	TotalLaborCost  float64 `gorm:"not null;default:0" json:"total_labor_cost"`

	CreatedBy    *uint      `json:"created_by"`
	ApprovedBy   *uint      `json:"approved_by"`
	ApprovalDate *time.Time `json:"approval_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WeeklySchedule) TableName() string {
	return "weekly_schedules"
}

// WeekEndDate is the last of the 7 consecutive days.
func (w *WeeklySchedule) WeekEndDate() time.Time {
	return w.WeekStartDate.AddDate(0, 0, 6)
}

// WeekDates lists all 7 dates of the week in order.
func (w *WeeklySchedule) WeekDates() []time.Time {
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = w.WeekStartDate.AddDate(0, 0, i)
	}
	return dates
}

func (w *WeeklySchedule) ShiftsForDate(date time.Time) []*Shift {
	return w.Shifts[DateKey(date)]
}

func (w *WeeklySchedule) AddShift(s *Shift) {
	if w.Shifts == nil {
		w.Shifts = make(map[string][]*Shift)
	}
	key := DateKey(s.Date)
	w.Shifts[key] = append(w.Shifts[key], s)
}

// EmployeeTotalHours sums the employee's assignment hours across the week.
func (w *WeeklySchedule) EmployeeTotalHours(employeeID uint) float64 {
	total := 0.0
	for _, shifts := range w.Shifts {
		for _, s := range shifts {
			if a := s.AssignmentFor(employeeID); a != nil {
				total += a.DurationHours()
			}
		}
	}
	return total
}

// TotalScheduledHours sums assignment hours for everyone in the week.
func (w *WeeklySchedule) TotalScheduledHours() float64 {
	total := 0.0
	for _, shifts := range w.Shifts {
		for _, s := range shifts {
			for i := range s.Assignments {
				total += s.Assignments[i].DurationHours()
			}
		}
	}
	return total
}

// CalculateWeeklyLaborCost sums per-shift labor cost across the week
// against the supplied roster.
func (w *WeeklySchedule) CalculateWeeklyLaborCost(roster []*Employee) float64 {
	total := 0.0
	for _, shifts := range w.Shifts {
		for _, s := range shifts {
			total += s.CalculateLaborCost(roster)
		}
	}
	return total
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Position is a job role an employee can be scheduled into.
// Stored by its human-readable token.
type Position string

const (
	PositionCashier         Position = "Cashier"
	PositionKitchen         Position = "Kitchen Crew"
	PositionDriveThru       Position = "Drive-Thru"
	PositionManager         Position = "Manager"
	PositionShiftSupervisor Position = "Shift Supervisor"
	PositionCleaningCrew    Position = "Cleaning Crew"
	PositionMaintenance     Position = "Maintenance"
	PositionTrainee         Position = "Trainee"
)

// AllPositions lists every position in a stable display order.
var AllPositions = []Position{
	PositionCashier,
	PositionKitchen,
	PositionDriveThru,
	PositionManager,
	PositionShiftSupervisor,
	PositionCleaningCrew,
	PositionMaintenance,
	PositionTrainee,
}

var positionTokens = map[string]Position{}

func init() {
	for _, p := range AllPositions {
		positionTokens[string(p)] = p
	}
}

// ParsePosition maps a stored token back to a Position.
func ParsePosition(s string) (Position, error) {
	if p, ok := positionTokens[s]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown position token %q", s)
}

func (p Position) Valid() bool {
	_, ok := positionTokens[string(p)]
	return ok
}

// EmploymentStatus tracks an employee's lifecycle state. "Delete" is the
// transition to Terminated; rows are never removed.
type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "Active"
	StatusInactive   EmploymentStatus = "Inactive"
	StatusOnLeave    EmploymentStatus = "On Leave"
	StatusTerminated EmploymentStatus = "Terminated"
)

var statusTokens = map[string]EmploymentStatus{
	string(StatusActive):     StatusActive,
	string(StatusInactive):   StatusInactive,
	string(StatusOnLeave):    StatusOnLeave,
	string(StatusTerminated): StatusTerminated,
}

func ParseEmploymentStatus(s string) (EmploymentStatus, error) {
	if st, ok := statusTokens[s]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown employment status token %q", s)
}

func (s EmploymentStatus) Valid() bool {
	_, ok := statusTokens[string(s)]
	return ok
}

// CanTransitionTo encodes the legal status transitions: Active, Inactive and
// On Leave are freely interchangeable, any state may become Terminated, and
// Terminated is terminal. Rehiring means a new employee record.
func (s EmploymentStatus) CanTransitionTo(target EmploymentStatus) bool {
	if !s.Valid() || !target.Valid() {
		return false
	}
	if s == StatusTerminated {
		return false
	}
	return true
}

// SkillLevel rates an employee's proficiency in one position.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

var skillTokens = map[string]SkillLevel{
	string(SkillBeginner):     SkillBeginner,
	string(SkillIntermediate): SkillIntermediate,
	string(SkillAdvanced):     SkillAdvanced,
	string(SkillExpert):       SkillExpert,
}

func ParseSkillLevel(s string) (SkillLevel, error) {
	if sk, ok := skillTokens[s]; ok {
		return sk, nil
	}
	return "", fmt.Errorf("unknown skill level token %q", s)
}

func (s SkillLevel) Valid() bool {
	_, ok := skillTokens[string(s)]
	return ok
}

// ShiftType classifies a shift template's time band.
type ShiftType string

const (
	ShiftMorning   ShiftType = "Morning Shift"
	ShiftAfternoon ShiftType = "Afternoon Shift"
	ShiftEvening   ShiftType = "Evening Shift"
	ShiftNight     ShiftType = "Night Shift"
	ShiftSplit     ShiftType = "Split Shift"
	ShiftDouble    ShiftType = "Double Shift"
)

var shiftTypeTokens = map[string]ShiftType{
	string(ShiftMorning):   ShiftMorning,
	string(ShiftAfternoon): ShiftAfternoon,
	string(ShiftEvening):   ShiftEvening,
	string(ShiftNight):     ShiftNight,
	string(ShiftSplit):     ShiftSplit,
	string(ShiftDouble):    ShiftDouble,
}

func ParseShiftType(s string) (ShiftType, error) {
	if t, ok := shiftTypeTokens[s]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown shift type token %q", s)
}

func (t ShiftType) Valid() bool {
	_, ok := shiftTypeTokens[string(t)]
	return ok
}

// ShiftPriority ranks how important covering a shift is.
type ShiftPriority string

const (
	PriorityLow      ShiftPriority = "Low"
	PriorityNormal   ShiftPriority = "Normal"
	PriorityHigh     ShiftPriority = "High"
	PriorityCritical ShiftPriority = "Critical"
)

var priorityTokens = map[string]ShiftPriority{
	string(PriorityLow):      PriorityLow,
	string(PriorityNormal):   PriorityNormal,
	string(PriorityHigh):     PriorityHigh,
	string(PriorityCritical): PriorityCritical,
}

func ParseShiftPriority(s string) (ShiftPriority, error) {
	if p, ok := priorityTokens[s]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown shift priority token %q", s)
}

func (p ShiftPriority) Valid() bool {
	_, ok := priorityTokens[string(p)]
	return ok
}

// WeekDay is a day-of-week index, 0 = Monday .. 6 = Sunday.
type WeekDay int

const (
	Monday WeekDay = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (d WeekDay) Valid() bool {
	return d >= Monday && d <= Sunday
}

// TimeOfDay is a wall-clock time with minute precision, stored as "HH:MM:SS".
type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

/// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS"; seconds are discarded.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

// HoursBetween returns the span from start to end in hours. An end at or
// before the start wraps past midnight (overnight shift).
func HoursBetween(start, end TimeOfDay) float64 {
	startMinutes := start.Minutes()
	endMinutes := end.Minutes()
	if endMinutes <= startMinutes {
		endMinutes += 24 * 60
	}
	return float64(endMinutes-startMinutes) / 60
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *TimeOfDay) Scan(value any) error {
	if value == nil {
		*t = TimeOfDay{}
		return nil
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", value)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DateLayout is the storage form for calendar dates.
const DateLayout = "2006-01-02"

// DateOf truncates a timestamp to its calendar date at midnight UTC. All
// shift and schedule dates pass through here so stored values compare
// byte-for-byte.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey renders a date as its storage token, used for map grouping.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

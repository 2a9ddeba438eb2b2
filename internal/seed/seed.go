package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"restaurant-scheduler/internal/models"
	"restaurant-scheduler/internal/service"

	"github.com/sirupsen/logrus"
)

// Seeder populates a fresh database with a plausible roster, shift
// templates, and one scheduled week. Everything goes through the normal
// service API; there is no bulk-insert path.
type Seeder struct {
	employees *service.EmployeeService
	templates *service.TemplateService
	schedules *service.ScheduleService
	rng       *rand.Rand
	logger    *logrus.Logger
}

func NewSeeder(
	employees *service.EmployeeService,
	templates *service.TemplateService,
	schedules *service.ScheduleService,
	logger *logrus.Logger,
) *Seeder {
	return &Seeder{
		employees: employees,
		templates: templates,
		schedules: schedules,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    logger,
	}
}

var sampleNames = [][2]string{
	{"James", "Wilson"},
	{"Sarah", "Johnson"},
	{"Michael", "Brown"},
	{"Emily", "Davis"},
	{"David", "Miller"},
	{"Jessica", "Garcia"},
	{"Christopher", "Rodriguez"},
	{"Ashley", "Martinez"},
	{"Matthew", "Anderson"},
	{"Amanda", "Taylor"},
	{"Daniel", "Thomas"},
	{"Stephanie", "Jackson"},
	{"Ryan", "White"},
	{"Nicole", "Harris"},
	{"Brandon", "Clark"},
	{"Lauren", "Lewis"},
}

// Position mix for a realistic crew: mostly cashiers and kitchen, a few
// supervisors and support roles.
var positionPool = []models.Position{
	models.PositionCashier, models.PositionCashier, models.PositionCashier,
	models.PositionKitchen, models.PositionKitchen, models.PositionKitchen,
	models.PositionDriveThru, models.PositionDriveThru,
	models.PositionManager,
	models.PositionShiftSupervisor,
	models.PositionCleaningCrew,
	models.PositionTrainee,
}

var skillPool = []models.SkillLevel{
	models.SkillBeginner, models.SkillBeginner, models.SkillBeginner,
	models.SkillIntermediate, models.SkillIntermediate, models.SkillIntermediate, models.SkillIntermediate,
	models.SkillAdvanced, models.SkillAdvanced,
	models.SkillExpert,
}

// Run seeds the roster, the templates, and the current week. Safe to call
// only on an empty database; existing employee numbers make creates fail.
func (s *Seeder) Run() error {
	roster, err := s.seedEmployees()
	if err != nil {
		return err
	}

	templates, err := s.seedTemplates()
	if err != nil {
		return err
	}

	if err := s.seedWeek(roster, templates); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"employees": len(roster),
		"templates": len(templates),
	}).Info("Demo data seeded")

	return nil
}

func (s *Seeder) seedEmployees() ([]*models.Employee, error) {
	roster := make([]*models.Employee, 0, len(sampleNames))

	for i, name := range sampleNames {
		position := positionPool[s.rng.Intn(len(positionPool))]
		skill := skillPool[s.rng.Intn(len(skillPool))]

		employee := &models.Employee{
			EmployeeNumber:  fmt.Sprintf("EMP%03d", i+1),
			FirstName:       name[0],
			LastName:        name[1],
			Email:           fmt.Sprintf("%s.%s@restaurant.com", strings.ToLower(name[0]), strings.ToLower(name[1])),
			Phone:           fmt.Sprintf("+1-555-%04d", 100+i),
			HireDate:        time.Now().AddDate(0, -s.rng.Intn(36), 0),
			Status:          models.StatusActive,
			HourlyWage:      12 + s.rng.Float64()*10,
			PrimaryPosition: position,
			SkillLevels:     models.SkillLevelMap{position: skill},
			MinHoursPerWeek: 15 + s.rng.Intn(10),
			MaxHoursPerWeek: 30 + s.rng.Intn(15),
			AttendanceRate:  80 + s.rng.Float64()*20,
			PunctualityScore: 80 + s.rng.Float64()*20,
			CustomerRating:  3 + s.rng.Float64()*2,
			Availability:    s.randomAvailability(),
		}
		if position != models.PositionManager && s.rng.Intn(3) == 0 {
			employee.SecondaryPositions = models.PositionList{models.PositionCleaningCrew}
		}

		if _, err := s.employees.Create(employee); err != nil {
			return nil, err
		}
		roster = append(roster, employee)
	}

	return roster, nil
}

func (s *Seeder) randomAvailability() []models.Availability {
	days := 3 + s.rng.Intn(4)
	windows := make([]models.Availability, 0, days)
	for _, day := range s.rng.Perm(7)[:days] {
		startHour := 6 + s.rng.Intn(6)
		windows = append(windows, models.Availability{
			DayOfWeek:   models.WeekDay(day),
			StartTime:   models.NewTimeOfDay(startHour, 0),
			EndTime:     models.NewTimeOfDay(startHour+8, 0),
			IsPreferred: s.rng.Intn(3) == 0,
		})
	}
	return windows
}

func (s *Seeder) seedTemplates() ([]*models.ShiftTemplate, error) {
	weekdays := models.WeekDaySet{
		models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday,
	}
	allWeek := append(models.WeekDaySet{}, weekdays...)
	allWeek = append(allWeek, models.Saturday, models.Sunday)

	templates := []*models.ShiftTemplate{
		{
			Name:      "Weekday Opening",
			ShiftType: models.ShiftMorning,
			StartTime: models.NewTimeOfDay(6, 0),
			EndTime:   models.NewTimeOfDay(14, 0),
			PositionRequirements: []models.PositionRequirement{
				{Position: models.PositionShiftSupervisor, MinimumRequired: 1, MaximumAllowed: 1, SupervisorRequired: true},
				{Position: models.PositionCashier, MinimumRequired: 2, MaximumAllowed: 3},
				{Position: models.PositionKitchen, MinimumRequired: 2, MaximumAllowed: 4},
			},
			ApplicableDays: weekdays,
			Priority:       models.PriorityHigh,
		},
		{
			Name:        "Lunch Rush",
			ShiftType:   models.ShiftAfternoon,
			StartTime:   models.NewTimeOfDay(11, 0),
			EndTime:     models.NewTimeOfDay(15, 0),
			IsPeakHours: true,
			PositionRequirements: []models.PositionRequirement{
				{Position: models.PositionCashier, MinimumRequired: 3, MaximumAllowed: 4},
				{Position: models.PositionKitchen, MinimumRequired: 3, MaximumAllowed: 5},
				{Position: models.PositionDriveThru, MinimumRequired: 2, MaximumAllowed: 2},
			},
			ApplicableDays: allWeek,
			Priority:       models.PriorityCritical,
		},
		{
			Name:      "Overnight Clean",
			ShiftType: models.ShiftNight,
			StartTime: models.NewTimeOfDay(22, 0),
			EndTime:   models.NewTimeOfDay(6, 0),
			PositionRequirements: []models.PositionRequirement{
				{Position: models.PositionCleaningCrew, MinimumRequired: 2, MaximumAllowed: 3},
				{Position: models.PositionMaintenance, MinimumRequired: 1, MaximumAllowed: 1},
			},
			ApplicableDays: allWeek,
			Priority:       models.PriorityLow,
		},
	}

	for _, t := range templates {
		if _, err := s.templates.Create(t); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

// seedWeek instantiates every template on its applicable days of the
// current week and staffs each shift with a few random employees.
func (s *Seeder) seedWeek(roster []*models.Employee, templates []*models.ShiftTemplate) error {
	weekStart := mondayOf(time.Now())

	schedule, err := s.schedules.GetOrCreateWeek(weekStart, nil)
	if err != nil {
		return err
	}

	for _, template := range templates {
		for _, day := range template.ApplicableDays {
			date := weekStart.AddDate(0, 0, int(day))
			shift, err := s.schedules.CreateShiftFromTemplate(template.ID, date, nil)
			if err != nil {
				return err
			}

			for _, e := range s.pickStaff(roster, 2+s.rng.Intn(3)) {
				position := e.PrimaryPosition
				err := s.schedules.AssignEmployee(shift.ID, e.ID, position,
					shift.StartTime, shift.EndTime)
				if err != nil {
					return err
				}
			}
		}
	}

	if _, err := s.schedules.RefreshWeekTotals(schedule.WeekStartDate); err != nil {
		return err
	}
	return nil
}

func (s *Seeder) pickStaff(roster []*models.Employee, n int) []*models.Employee {
	if n > len(roster) {
		n = len(roster)
	}
	picked := make([]*models.Employee, 0, n)
	for _, i := range s.rng.Perm(len(roster))[:n] {
		picked = append(picked, roster[i])
	}
	return picked
}

// mondayOf returns the Monday of t's week at midnight UTC.
func mondayOf(t time.Time) time.Time {
	date := models.DateOf(t)
	offset := (int(date.Weekday()) + 6) % 7 // Go's Sunday=0 to Monday=0 indexing
	return date.AddDate(0, 0, -offset)
}


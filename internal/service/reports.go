package service

import (
	"restaurant-scheduler/internal/models"
)

// Reporting aggregation: pure, read-only functions over a loaded roster.
// Inputs are never mutated.

// Performance bucket boundaries used across the reporting surface: at or
// above 95% is excellent, below 85% needs improvement.
const (
	ExcellentThreshold   = 95.0
	ImprovementThreshold = 85.0
)

// PerformanceBuckets counts employees by band for one percentage metric.
type PerformanceBuckets struct {
	Excellent        int // >= 95
	Fair             int // 85 - 95
	NeedsImprovement int // < 85
}

func (b PerformanceBuckets) Total() int {
	return b.Excellent + b.Fair + b.NeedsImprovement
}

func bucketize(employees []*models.Employee, metric func(*models.Employee) float64) PerformanceBuckets {
	var b PerformanceBuckets
	for _, e := range employees {
		switch v := metric(e); {
		case v >= ExcellentThreshold:
			b.Excellent++
		case v < ImprovementThreshold:
			b.NeedsImprovement++
		default:
			b.Fair++
		}
	}
	return b
}

// AttendanceBuckets bands the roster by attendance rate.
func AttendanceBuckets(employees []*models.Employee) PerformanceBuckets {
	return bucketize(employees, func(e *models.Employee) float64 { return e.AttendanceRate })
}

// PunctualityBuckets bands the roster by punctuality score.
func PunctualityBuckets(employees []*models.Employee) PerformanceBuckets {
	return bucketize(employees, func(e *models.Employee) float64 { return e.PunctualityScore })
}

// PositionDistribution counts employees per primary position.
func PositionDistribution(employees []*models.Employee) map[models.Position]int {
	counts := make(map[models.Position]int)
	for _, e := range employees {
		counts[e.PrimaryPosition]++
	}
	return counts
}

// RosterAverages holds simple arithmetic means across the supplied roster.
type RosterAverages struct {
	HourlyWage       float64
	AttendanceRate   float64
	PunctualityScore float64
	CustomerRating   float64
}

// AverageMetrics computes the mean wage, attendance, punctuality and rating.
// An empty roster yields zeroes.
func AverageMetrics(employees []*models.Employee) RosterAverages {
	if len(employees) == 0 {
		return RosterAverages{}
	}

	var sums RosterAverages
	for _, e := range employees {
		sums.HourlyWage += e.HourlyWage
		sums.AttendanceRate += e.AttendanceRate
		sums.PunctualityScore += e.PunctualityScore
		sums.CustomerRating += e.CustomerRating
	}

	n := float64(len(employees))
	return RosterAverages{
		HourlyWage:       sums.HourlyWage / n,
		AttendanceRate:   sums.AttendanceRate / n,
		PunctualityScore: sums.PunctualityScore / n,
		CustomerRating:   sums.CustomerRating / n,
	}
}

// Average weeks per month; 52 weeks per year.
const (
	weeksPerMonth = 4.33
	weeksPerYear  = 52.0
)

// CostProjection extrapolates roster labor cost from the weekly estimate.
type CostProjection struct {
	WeeklyCost  float64
	MonthlyCost float64 // weekly x 4.33
	AnnualCost  float64 // weekly x 52
	TotalHours  int     // sum of max weekly hours
	CostPerHour float64
}

// ProjectCosts sums each employee's estimated weekly labor cost and
// extrapolates it out to monthly and annual figures.
func ProjectCosts(employees []*models.Employee) CostProjection {
	var weekly float64
	var hours int
	for _, e := range employees {
		weekly += e.WeeklyLaborCost()
		hours += e.MaxHoursPerWeek
	}

	p := CostProjection{
		WeeklyCost:  weekly,
		MonthlyCost: weekly * weeksPerMonth,
		AnnualCost:  weekly * weeksPerYear,
		TotalHours:  hours,
	}
	if hours > 0 {
		p.CostPerHour = weekly / float64(hours)
	}
	return p
}

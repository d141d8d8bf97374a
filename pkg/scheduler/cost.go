package scheduler

import "github.com/arnavshah/crewplan-api/pkg/models"

// RowLaborCost is the labor charged for one assignment row in rollups.
// A row counts a single day-rate no matter how many days it spans.
func RowLaborCost(a models.Assignment, s models.Staff) float64 {
	return s.DailyRate
}

package database

import (
	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/seed"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCounts reports how many rows were written per table
type SeedCounts struct {
	Projects    int
	Staff       int
	Tasks       int
	Assignments int
}

// Seed writes data into the entity tables keeping its ids. Existing rows with
// the same id are overwritten. With reset, all tables are emptied first.
func Seed(db *gorm.DB, data seed.Data, reset bool) (SeedCounts, error) {
	var counts SeedCounts
	err := db.Transaction(func(tx *gorm.DB) error {
		if reset {
			for _, m := range []any{&models.Assignment{}, &models.Task{}, &models.Staff{}, &models.Project{}} {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
					return err
				}
			}
		}

		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		if len(data.Projects) > 0 {
			if err := upsert.Create(&data.Projects).Error; err != nil {
				return err
			}
		}
		if len(data.Staff) > 0 {
			if err := upsert.Create(&data.Staff).Error; err != nil {
				return err
			}
		}
		if len(data.Tasks) > 0 {
			if err := upsert.Create(&data.Tasks).Error; err != nil {
				return err
			}
		}
		if len(data.Assignments) > 0 {
			if err := upsert.Create(&data.Assignments).Error; err != nil {
				return err
			}
		}
		counts = SeedCounts{
			Projects:    len(data.Projects),
			Staff:       len(data.Staff),
			Tasks:       len(data.Tasks),
			Assignments: len(data.Assignments),
		}
		return nil
	})
	return counts, err
}

package store

import (
	"context"
	"errors"

	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCollection keeps one entity table in a SQL database. Ids are assigned
// inside the create transaction. On Postgres the table is locked first so
// concurrent creates take turns; on SQLite a competing writer fails with a
// StoreError rather than reusing an id.
type GormCollection[E any, P Record[E]] struct {
	db    *gorm.DB
	name  string
	today func() string
}

// NewGormCollection returns a collection over the table of E
func NewGormCollection[E any, P Record[E]](db *gorm.DB, name string) *GormCollection[E, P] {
	return &GormCollection[E, P]{db: db, name: name, today: calendar.Today}
}

func (g *GormCollection[E, P]) Name() string { return g.name }

func (g *GormCollection[E, P]) GetAll(ctx context.Context) ([]E, error) {
	rows := []E{}
	if err := g.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, &StoreError{Op: "list", Collection: g.name, Err: err}
	}
	return rows, nil
}

func (g *GormCollection[E, P]) GetByID(ctx context.Context, id int) (E, error) {
	var row E
	err := g.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, notFound(g.name, id)
	}
	if err != nil {
		return row, &StoreError{Op: "get", Collection: g.name, Err: err}
	}
	return row, nil
}

func (g *GormCollection[E, P]) Create(ctx context.Context, e E) (E, error) {
	row := P(&e).Clone()
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stmt := &gorm.Statement{DB: tx}
		if err := stmt.Parse(P(new(E))); err != nil {
			return err
		}
		if err := lockForCreate(tx, stmt.Schema.Table).Error; err != nil {
			return err
		}

		var maxID int
		if err := tx.Model(P(new(E))).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}
		P(&row).SetID(maxID + 1)
		if d, ok := any(P(&row)).(Defaulter); ok {
			d.ApplyCreateDefaults(g.today())
		}
		return tx.Create(P(&row)).Error
	})
	if err != nil {
		var zero E
		return zero, &StoreError{Op: "create", Collection: g.name, Err: err}
	}
	return row, nil
}

// lockForCreate blocks other writers of table until tx ends. Only Postgres
// needs it; other dialects get tx back unchanged.
func lockForCreate(tx *gorm.DB, table string) *gorm.DB {
	if tx.Dialector.Name() != "postgres" {
		return tx
	}
	return tx.Exec("LOCK TABLE ? IN SHARE ROW EXCLUSIVE MODE", clause.Table{Name: table})
}

func (g *GormCollection[E, P]) Update(ctx context.Context, id int, apply func(*E)) (E, error) {
	var row E
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		apply(&row)
		P(&row).SetID(id)
		return tx.Save(P(&row)).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero E
		return zero, notFound(g.name, id)
	}
	if err != nil {
		var zero E
		return zero, &StoreError{Op: "update", Collection: g.name, Err: err}
	}
	return row, nil
}

func (g *GormCollection[E, P]) Delete(ctx context.Context, id int) (bool, error) {
	res := g.db.WithContext(ctx).Delete(P(new(E)), id)
	if res.Error != nil {
		return false, &StoreError{Op: "delete", Collection: g.name, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return false, notFound(g.name, id)
	}
	return true, nil
}

// NewGorm builds a store over an already migrated database
func NewGorm(db *gorm.DB) *Store {
	return &Store{
		Projects:    NewGormCollection[models.Project](db, "projects"),
		Staff:       NewGormCollection[models.Staff](db, "staff"),
		Tasks:       NewGormCollection[models.Task](db, "tasks"),
		Assignments: NewGormCollection[models.Assignment](db, "assignments"),
	}
}

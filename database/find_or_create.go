package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Outcome tells whether FindOrCreate matched an existing row or inserted one.
type Outcome int

const (
	Found Outcome = iota + 1
	Created
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Created:
		return "created"
	}
	return "unknown"
}

// FindOrCreate looks up a row of T whose column equals key. When none exists
// it inserts candidate and returns it. The caller must pass key already in the
// form it will be stored in.
func FindOrCreate[T any](db *gorm.DB, candidate *T, column string, key any) (*T, Outcome, error) {
	var existing T
	err := db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: key}).First(&existing).Error
	if err == nil {
		return &existing, Found, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, err
	}

	if err := db.Create(candidate).Error; err != nil {
		return nil, 0, err
	}
	return candidate, Created, nil
}

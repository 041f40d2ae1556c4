package models

import (
	"time"

	"gorm.io/gorm"
)

// NameMax bounds character and artist names.
const NameMax = 255

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

type Character struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PageID          string    `json:"page_id" gorm:"size:10;not null"`
	Name            string    `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Slug            string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Sex             Sex       `json:"sex" gorm:"size:1;not null"`
	Alive           bool      `json:"alive" gorm:"not null"`
	FirstAppearance Date      `json:"first_appearance" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CreatedByID     uint      `json:"created_by" gorm:"not null;index"`
	CreatedBy       *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeSave re-derives the slug on every save so a rename moves it too.
func (c *Character) BeforeSave(tx *gorm.DB) (err error) {
	if c.Name, err = NormalizeField("name", c.Name, NameMax); err != nil {
		return err
	}
	c.Slug = Slugify(c.Name)
	return nil
}

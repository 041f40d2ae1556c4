package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TagNameMax      = 20
	TagGroupNameMax = 50
)

type Tag struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:20;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"size:255;not null"`
	GroupID     *uint     `json:"group" gorm:"index"`
	Group       *TagGroup `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedByID uint      `json:"created_by" gorm:"not null;index"`
	CreatedBy   *User     `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

func (t *Tag) BeforeSave(tx *gorm.DB) (err error) {
	t.Name, err = NormalizeField("name", t.Name, TagNameMax)
	return err
}

// TagGroup is an optional parent that clusters related tags.
type TagGroup struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"size:255;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedByID uint      `json:"created_by" gorm:"not null;index"`
	CreatedBy   *User     `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Tags        []Tag     `json:"-" gorm:"foreignKey:GroupID"`
}

func (g *TagGroup) BeforeSave(tx *gorm.DB) (err error) {
	g.Name, err = NormalizeField("name", g.Name, TagGroupNameMax)
	return err
}

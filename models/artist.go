package models

import (
	"gorm.io/gorm"
)

type Artist struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Slug        string  `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Image       *string `json:"image" gorm:"size:255"`
	Instagram   *string `json:"instagram" gorm:"size:128"`
	Deviant     *string `json:"deviant" gorm:"size:128"`
	Twitter     *string `json:"twitter" gorm:"size:128"`
	Oficial     *string `json:"oficial" gorm:"size:128"`
	CreatedByID uint    `json:"created_by" gorm:"not null;index"`
	CreatedBy   *User   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Artworks    []Art   `json:"-" gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
}

func (a *Artist) BeforeSave(tx *gorm.DB) (err error) {
	if a.Name, err = NormalizeField("name", a.Name, NameMax); err != nil {
		return err
	}
	a.Slug = Slugify(a.Name)
	return nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type ArtType int

const (
	ArtDrawing ArtType = iota + 1
	ArtPainting
	ArtSculpture
	ArtTatoo
	ArtPhoto
	ArtDigital
)

var artTypeNames = map[ArtType]string{
	ArtDrawing:   "Drawing",
	ArtPainting:  "Painting",
	ArtSculpture: "Sculpture",
	ArtTatoo:     "Tatoo",
	ArtPhoto:     "Photo",
	ArtDigital:   "Digital",
}

func (t ArtType) Valid() bool {
	_, ok := artTypeNames[t]
	return ok
}

func (t ArtType) String() string {
	if name, ok := artTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

type Art struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Title       string      `json:"title" gorm:"size:50;not null"`
	Subtitle    string      `json:"subtitle" gorm:"size:100;not null"`
	Description string      `json:"description" gorm:"type:text;not null"`
	Image       *string     `json:"image" gorm:"size:255"`
	Type        ArtType     `json:"type" gorm:"not null"`
	Tags        []Tag       `json:"tags" gorm:"many2many:art_tags;constraint:OnDelete:CASCADE"`
	Characters  []Character `json:"characters" gorm:"many2many:art_characters;constraint:OnDelete:CASCADE"`
	ArtistID    uint        `json:"artist" gorm:"not null;index"`
	Artist      *Artist     `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	CreatedByID uint        `json:"created_by" gorm:"not null;index"`
	CreatedBy   *User       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

const (
	TitleMax    = 50
	SubtitleMax = 100
)

func (a *Art) BeforeSave(tx *gorm.DB) (err error) {
	if a.Title, err = NormalizeField("title", a.Title, TitleMax); err != nil {
		return err
	}
	a.Subtitle, err = NormalizeField("subtitle", a.Subtitle, SubtitleMax)
	return err
}

// TagIDs returns the ids of the loaded Tags association.
func (a *Art) TagIDs() []uint {
	ids := make([]uint, 0, len(a.Tags))
	for _, t := range a.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

func (a *Art) CharacterIDs() []uint {
	ids := make([]uint, 0, len(a.Characters))
	for _, c := range a.Characters {
		ids = append(ids, c.ID)
	}
	return ids
}

// All lists every model in dependency order, for schema migration.
func All() []any {
	return []any{&User{}, &TagGroup{}, &Tag{}, &Character{}, &Artist{}, &Art{}}
}

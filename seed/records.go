package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"comic_portfolio/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// record is one fixture entry. build turns it into the entity to insert and
// reports the natural key the entity is stored under.
type record[T any] interface {
	build(tx *gorm.DB, admin *models.User) (entity *T, key string, err error)
}

// decodeRecord strictly decodes raw into rec: unknown fields, trailing data
// and missing required fields are errors.
func decodeRecord(raw json.RawMessage, rec any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(rec); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after record")
	}
	return validate.Struct(rec)
}

type characterRecord struct {
	PageID          string     `json:"page_id" validate:"max=10"`
	Name            string     `json:"name" validate:"required"`
	Sex             models.Sex `json:"sex" validate:"required,oneof=M F"`
	Alive           *bool      `json:"alive" validate:"required"`
	FirstAppearance *int       `json:"first_appearance" validate:"required,min=1,max=9999"`
}

func (r characterRecord) build(_ *gorm.DB, admin *models.User) (*models.Character, string, error) {
	name, err := models.NormalizeField("name", r.Name, models.NameMax)
	if err != nil {
		return nil, "", err
	}
	c := &models.Character{
		PageID:          r.PageID,
		Name:            name,
		Sex:             r.Sex,
		Alive:           *r.Alive,
		FirstAppearance: models.YearStart(*r.FirstAppearance),
		CreatedByID:     admin.ID,
	}
	return c, c.Name, nil
}

type tagGroupRecord struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"max=255"`
}

func (r tagGroupRecord) build(_ *gorm.DB, admin *models.User) (*models.TagGroup, string, error) {
	name, err := models.NormalizeField("name", r.Name, models.TagGroupNameMax)
	if err != nil {
		return nil, "", err
	}
	g := &models.TagGroup{
		Name:        name,
		Description: r.Description,
		CreatedByID: admin.ID,
	}
	return g, g.Name, nil
}

type tagRecord struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"max=255"`
	Group       *uint  `json:"group" validate:"omitempty,min=1"`
}

func (r tagRecord) build(tx *gorm.DB, admin *models.User) (*models.Tag, string, error) {
	name, err := models.NormalizeField("name", r.Name, models.TagNameMax)
	if err != nil {
		return nil, "", err
	}
	t := &models.Tag{
		Name:        name,
		Description: r.Description,
		CreatedByID: admin.ID,
	}

	if r.Group != nil {
		var group models.TagGroup
		err := tx.First(&group, *r.Group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("tag group %d does not exist", *r.Group)
		}
		if err != nil {
			return nil, "", err
		}
		t.GroupID = &group.ID
	}
	return t, t.Name, nil
}

type artistRecord struct {
	Name      string  `json:"name" validate:"required"`
	Instagram *string `json:"instagram" validate:"omitempty,max=128"`
	Deviant   *string `json:"deviant" validate:"omitempty,max=128"`
	Twitter   *string `json:"twitter" validate:"omitempty,max=128"`
	Oficial   *string `json:"oficial" validate:"omitempty,max=128"`
}

func (r artistRecord) build(_ *gorm.DB, admin *models.User) (*models.Artist, string, error) {
	name, err := models.NormalizeField("name", r.Name, models.NameMax)
	if err != nil {
		return nil, "", err
	}
	a := &models.Artist{
		Name:        name,
		Instagram:   r.Instagram,
		Deviant:     r.Deviant,
		Twitter:     r.Twitter,
		Oficial:     r.Oficial,
		CreatedByID: admin.ID,
	}
	return a, a.Name, nil
}

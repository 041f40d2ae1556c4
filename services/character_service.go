package services

import (
	"context"

	"comic_portfolio/models"

	"gorm.io/gorm"
)

type CharacterService struct {
	db *gorm.DB
}

func NewCharacterService(db *gorm.DB) *CharacterService {
	return &CharacterService{db: db}
}

type CharacterInput struct {
	PageID          string
	Name            string
	Sex             models.Sex
	Alive           bool
	FirstAppearance models.Date
}

type CharacterPatch struct {
	PageID          *string
	Name            *string
	Sex             *models.Sex
	Alive           *bool
	FirstAppearance *models.Date
}

// List returns characters ordered by id, optionally those whose name
// contains name.
func (s *CharacterService) List(ctx context.Context, name string) ([]models.Character, error) {
	q := s.db.WithContext(ctx).Order("id")
	if name != "" {
		q = q.Where(`name LIKE ? ESCAPE '\'`, containsPattern(name))
	}

	var characters []models.Character
	if err := q.Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

func (s *CharacterService) Get(ctx context.Context, id uint) (*models.Character, error) {
	var character models.Character
	if err := s.db.WithContext(ctx).First(&character, id).Error; err != nil {
		return nil, dbError(err, "character")
	}
	return &character, nil
}

func (s *CharacterService) Create(ctx context.Context, in CharacterInput, creator *models.User) (*models.Character, error) {
	if !in.Sex.Valid() {
		return nil, invalidf("sex must be M or F")
	}

	character := &models.Character{
		PageID:          in.PageID,
		Name:            in.Name,
		Sex:             in.Sex,
		Alive:           in.Alive,
		FirstAppearance: in.FirstAppearance,
		CreatedByID:     creator.ID,
	}
	if err := s.db.WithContext(ctx).Create(character).Error; err != nil {
		return nil, dbError(err, "character with this name")
	}
	return character, nil
}

func (s *CharacterService) Update(ctx context.Context, id uint, patch CharacterPatch) (*models.Character, error) {
	character, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.PageID != nil {
		character.PageID = *patch.PageID
	}
	if patch.Name != nil {
		character.Name = *patch.Name
	}
	if patch.Sex != nil {
		if !patch.Sex.Valid() {
			return nil, invalidf("sex must be M or F")
		}
		character.Sex = *patch.Sex
	}
	if patch.Alive != nil {
		character.Alive = *patch.Alive
	}
	if patch.FirstAppearance != nil {
		character.FirstAppearance = *patch.FirstAppearance
	}

	if err := s.db.WithContext(ctx).Save(character).Error; err != nil {
		return nil, dbError(err, "character with this name")
	}
	return character, nil
}

// Delete removes the character and its artwork links.
func (s *CharacterService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		character := models.Character{ID: id}
		if err := tx.First(&character).Error; err != nil {
			return dbError(err, "character")
		}
		if err := tx.Exec("DELETE FROM art_characters WHERE character_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&character).Error
	})
}

package services

import (
	"context"

	"comic_portfolio/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArtService struct {
	db *gorm.DB
}

func NewArtService(db *gorm.DB) *ArtService {
	return &ArtService{db: db}
}

type ArtInput struct {
	Title        string
	Subtitle     string
	Description  string
	Type         models.ArtType
	ArtistID     uint
	TagIDs       []uint
	CharacterIDs []uint
}

// ArtPatch leaves a field untouched when it is nil. A non-nil empty id slice
// clears the relation.
type ArtPatch struct {
	Title        *string
	Subtitle     *string
	Description  *string
	Type         *models.ArtType
	ArtistID     *uint
	TagIDs       []uint
	CharacterIDs []uint
}

// ArtFilter narrows List to art carrying any of TagIDs and made by any of
// ArtistIDs. Empty slices do not filter.
type ArtFilter struct {
	TagIDs    []uint
	ArtistIDs []uint
}

func (s *ArtService) List(ctx context.Context, f ArtFilter) ([]models.Art, error) {
	db := s.db.WithContext(ctx)
	q := db.Preload("Tags").Preload("Characters").Order("id")
	if len(f.TagIDs) > 0 {
		q = q.Where("id IN (?)", db.Table("art_tags").Select("art_id").Where("tag_id IN ?", f.TagIDs))
	}
	if len(f.ArtistIDs) > 0 {
		q = q.Where("artist_id IN ?", f.ArtistIDs)
	}

	var arts []models.Art
	if err := q.Find(&arts).Error; err != nil {
		return nil, err
	}
	return arts, nil
}

func (s *ArtService) Get(ctx context.Context, id uint) (*models.Art, error) {
	return getArt(s.db.WithContext(ctx), id)
}

func getArt(db *gorm.DB, id uint) (*models.Art, error) {
	var art models.Art
	if err := db.Preload("Tags").Preload("Characters").First(&art, id).Error; err != nil {
		return nil, dbError(err, "art")
	}
	return &art, nil
}

func (s *ArtService) Create(ctx context.Context, in ArtInput, creator *models.User) (*models.Art, error) {
	if !in.Type.Valid() {
		return nil, invalidf("type must be between 1 and 6")
	}

	var created *models.Art
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkArtist(tx, in.ArtistID); err != nil {
			return err
		}
		tags, err := findTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		characters, err := findCharacters(tx, in.CharacterIDs)
		if err != nil {
			return err
		}

		art := &models.Art{
			Title:       in.Title,
			Subtitle:    in.Subtitle,
			Description: in.Description,
			Type:        in.Type,
			ArtistID:    in.ArtistID,
			Tags:        tags,
			Characters:  characters,
			CreatedByID: creator.ID,
		}
		if err := tx.Create(art).Error; err != nil {
			return dbError(err, "art")
		}
		created = art
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ArtService) Update(ctx context.Context, id uint, patch ArtPatch) (*models.Art, error) {
	var updated *models.Art
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		art, err := getArt(tx, id)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			art.Title = *patch.Title
		}
		if patch.Subtitle != nil {
			art.Subtitle = *patch.Subtitle
		}
		if patch.Description != nil {
			art.Description = *patch.Description
		}
		if patch.Type != nil {
			if !patch.Type.Valid() {
				return invalidf("type must be between 1 and 6")
			}
			art.Type = *patch.Type
		}
		if patch.ArtistID != nil {
			if err := checkArtist(tx, *patch.ArtistID); err != nil {
				return err
			}
			art.ArtistID = *patch.ArtistID
		}

		if err := tx.Omit(clause.Associations).Save(art).Error; err != nil {
			return dbError(err, "art")
		}

		if patch.TagIDs != nil {
			tags, err := findTags(tx, patch.TagIDs)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, art, "Tags", tags); err != nil {
				return err
			}
			art.Tags = tags
		}
		if patch.CharacterIDs != nil {
			characters, err := findCharacters(tx, patch.CharacterIDs)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, art, "Characters", characters); err != nil {
				return err
			}
			art.Characters = characters
		}

		updated = art
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetImage records a new image path and returns the one it replaced.
func (s *ArtService) SetImage(ctx context.Context, id uint, path string) (*models.Art, *string, error) {
	art, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	previous := art.Image
	if err := s.db.WithContext(ctx).Model(art).Update("image", path).Error; err != nil {
		return nil, nil, err
	}
	art.Image = &path
	return art, previous, nil
}

// Delete removes the art and returns its image path, if it had one.
func (s *ArtService) Delete(ctx context.Context, id uint) (*string, error) {
	var image *string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		art := models.Art{ID: id}
		if err := tx.First(&art).Error; err != nil {
			return dbError(err, "art")
		}
		image = art.Image
		return deleteArt(tx, &art)
	})
	return image, err
}

func deleteArt(tx *gorm.DB, art *models.Art) error {
	return tx.Select("Tags", "Characters").Delete(art).Error
}

func replaceAssociation[T any](tx *gorm.DB, art *models.Art, name string, values []T) error {
	assoc := tx.Model(art).Association(name)
	if len(values) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

func checkArtist(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Artist{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return invalidf("artist %d does not exist", id)
	}
	return nil
}

func findTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	ids = uniqueIDs(ids)
	tags := []models.Tag{}
	if len(ids) == 0 {
		return tags, nil
	}
	if err := tx.Where("id IN ?", ids).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, invalidf("unknown tag id in %v", ids)
	}
	return tags, nil
}

func findCharacters(tx *gorm.DB, ids []uint) ([]models.Character, error) {
	ids = uniqueIDs(ids)
	characters := []models.Character{}
	if len(ids) == 0 {
		return characters, nil
	}
	if err := tx.Where("id IN ?", ids).Order("id").Find(&characters).Error; err != nil {
		return nil, err
	}
	if len(characters) != len(ids) {
		return nil, invalidf("unknown character id in %v", ids)
	}
	return characters, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

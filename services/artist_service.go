package services

import (
	"context"

	"comic_portfolio/models"

	"gorm.io/gorm"
)

type ArtistService struct {
	db *gorm.DB
}

func NewArtistService(db *gorm.DB) *ArtistService {
	return &ArtistService{db: db}
}

type ArtistInput struct {
	Name      string
	Instagram *string
	Deviant   *string
	Twitter   *string
	Oficial   *string
}

type ArtistPatch struct {
	Name      *string
	Instagram *string
	Deviant   *string
	Twitter   *string
	Oficial   *string
}

func (s *ArtistService) List(ctx context.Context, name string) ([]models.Artist, error) {
	q := s.db.WithContext(ctx).Order("id")
	if name != "" {
		q = q.Where(`name LIKE ? ESCAPE '\'`, containsPattern(name))
	}

	var artists []models.Artist
	if err := q.Find(&artists).Error; err != nil {
		return nil, err
	}
	return artists, nil
}

func (s *ArtistService) Get(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	if err := s.db.WithContext(ctx).First(&artist, id).Error; err != nil {
		return nil, dbError(err, "artist")
	}
	return &artist, nil
}

func (s *ArtistService) Create(ctx context.Context, in ArtistInput, creator *models.User) (*models.Artist, error) {
	artist := &models.Artist{
		Name:        in.Name,
		Instagram:   in.Instagram,
		Deviant:     in.Deviant,
		Twitter:     in.Twitter,
		Oficial:     in.Oficial,
		CreatedByID: creator.ID,
	}
	if err := s.db.WithContext(ctx).Create(artist).Error; err != nil {
		return nil, dbError(err, "artist with this name")
	}
	return artist, nil
}

func (s *ArtistService) Update(ctx context.Context, id uint, patch ArtistPatch) (*models.Artist, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		artist.Name = *patch.Name
	}
	if patch.Instagram != nil {
		artist.Instagram = patch.Instagram
	}
	if patch.Deviant != nil {
		artist.Deviant = patch.Deviant
	}
	if patch.Twitter != nil {
		artist.Twitter = patch.Twitter
	}
	if patch.Oficial != nil {
		artist.Oficial = patch.Oficial
	}

	if err := s.db.WithContext(ctx).Omit("Artworks").Save(artist).Error; err != nil {
		return nil, dbError(err, "artist with this name")
	}
	return artist, nil
}

// SetImage records a new image path and returns the one it replaced.
func (s *ArtistService) SetImage(ctx context.Context, id uint, path string) (*models.Artist, *string, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	previous := artist.Image
	if err := s.db.WithContext(ctx).Model(artist).Update("image", path).Error; err != nil {
		return nil, nil, err
	}
	artist.Image = &path
	return artist, previous, nil
}

// Artworks lists the art attributed to the artist.
func (s *ArtistService) Artworks(ctx context.Context, id uint) ([]models.Art, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var arts []models.Art
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Characters").
		Where("artist_id = ?", id).
		Order("id").
		Find(&arts).Error
	if err != nil {
		return nil, err
	}
	return arts, nil
}

// Delete removes the artist together with its artworks and returns the
// image paths that are no longer referenced.
func (s *ArtistService) Delete(ctx context.Context, id uint) ([]string, error) {
	var orphaned []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artist := models.Artist{ID: id}
		if err := tx.First(&artist).Error; err != nil {
			return dbError(err, "artist")
		}
		if artist.Image != nil {
			orphaned = append(orphaned, *artist.Image)
		}

		var arts []models.Art
		if err := tx.Where("artist_id = ?", id).Find(&arts).Error; err != nil {
			return err
		}
		for i := range arts {
			if arts[i].Image != nil {
				orphaned = append(orphaned, *arts[i].Image)
			}
			if err := deleteArt(tx, &arts[i]); err != nil {
				return err
			}
		}
		return tx.Delete(&artist).Error
	})
	if err != nil {
		return nil, err
	}
	return orphaned, nil
}

package services

import (
	"context"

	"comic_portfolio/models"

	"gorm.io/gorm"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

type TagInput struct {
	Name        string
	Description string
	GroupID     *uint
}

type TagPatch struct {
	Name        *string
	Description *string
	// SetGroup distinguishes "leave group alone" from "clear group".
	SetGroup bool
	GroupID  *uint
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, dbError(err, "tag")
	}
	return &tag, nil
}

func (s *TagService) Create(ctx context.Context, in TagInput, creator *models.User) (*models.Tag, error) {
	db := s.db.WithContext(ctx)
	if err := checkGroup(db, in.GroupID); err != nil {
		return nil, err
	}

	tag := &models.Tag{
		Name:        in.Name,
		Description: in.Description,
		GroupID:     in.GroupID,
		CreatedByID: creator.ID,
	}
	if err := db.Create(tag).Error; err != nil {
		return nil, dbError(err, "tag with this name")
	}
	return tag, nil
}

func (s *TagService) Update(ctx context.Context, id uint, patch TagPatch) (*models.Tag, error) {
	tag, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		tag.Name = *patch.Name
	}
	if patch.Description != nil {
		tag.Description = *patch.Description
	}
	if patch.SetGroup {
		if err := checkGroup(s.db.WithContext(ctx), patch.GroupID); err != nil {
			return nil, err
		}
		tag.GroupID = patch.GroupID
	}

	if err := s.db.WithContext(ctx).Save(tag).Error; err != nil {
		return nil, dbError(err, "tag with this name")
	}
	return tag, nil
}

// Delete removes the tag and detaches it from any artwork.
func (s *TagService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag := models.Tag{ID: id}
		if err := tx.First(&tag).Error; err != nil {
			return dbError(err, "tag")
		}
		if err := tx.Exec("DELETE FROM art_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

func checkGroup(db *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	var count int64
	if err := db.Model(&models.TagGroup{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return invalidf("tag group %d does not exist", *id)
	}
	return nil
}

package services

import (
	"context"
	"errors"

	"comic_portfolio/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserInput struct {
	Email    string
	Name     string
	Password string
}

type UserPatch struct {
	Email    *string
	Name     *string
	Password *string
}

// Create registers a regular user, or a staff superuser when admin is set.
func (s *UserService) Create(ctx context.Context, in UserInput, admin bool) (*models.User, error) {
	newUser := models.NewUser
	if admin {
		newUser = models.NewSuperuser
	}
	user, err := newUser(in.Email, in.Name, in.Password)
	if err != nil {
		return nil, invalidf("%v", err)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, dbError(err, "user with this email")
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, dbError(err, "user")
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Authenticate returns the active user matching the credentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, patch UserPatch) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Password != nil {
		if err := user.SetPassword(*patch.Password); err != nil {
			return nil, invalidf("%v", err)
		}
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, dbError(err, "user with this email")
	}
	return user, nil
}

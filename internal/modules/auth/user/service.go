package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zenith-gallery/core/internal/models"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

var (
	errUserNotFound = apperr.NotFound("Usuario no encontrado")
	errEmailTaken   = apperr.Conflict("El email ya está registrado")

	errPasswordTooLong = apperr.Validation("La contraseña no puede superar los 72 bytes")
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// HashPassword returns the bcrypt hash stored for a password. Passwords
// over 72 bytes are a validation error.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// WriteError maps a unique violation on users to Conflict.
func WriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errEmailTaken.WithCause(err)
	}
	return err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

// RoleOf loads the current role of a user.
func (s *Service) RoleOf(ctx context.Context, id string) (string, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// Update merges the supplied fields. The password is re-hashed only when given.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateUserDTO) (*models.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if dto.Nombre != nil {
		u.Nombre = strings.TrimSpace(*dto.Nombre)
		updates["nombre"] = u.Nombre
	}
	if dto.Email != nil {
		email := NormalizeEmail(*dto.Email)
		if email != u.Email {
			var count int64
			if err := s.db.WithContext(ctx).Model(&models.User{}).
				Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if count > 0 {
				return nil, errEmailTaken
			}
		}
		u.Email = email
		updates["email"] = email
	}
	if dto.Password != nil {
		hash, err := HashPassword(*dto.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
		updates["password"] = hash
	}
	if dto.ProfileImageURL != nil {
		u.ProfileImageURL = dto.ProfileImageURL
		updates["profile_image_url"] = *dto.ProfileImageURL
	}
	if dto.CoverImageURL != nil {
		u.CoverImageURL = dto.CoverImageURL
		updates["cover_image_url"] = *dto.CoverImageURL
	}
	if len(updates) == 0 {
		return u, nil
	}

	if err := s.db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
		return nil, WriteError(err)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errUserNotFound
	}
	s.log.Info("user deleted", zap.String("id", id))
	return nil
}

func (s *Service) SetProfileImage(ctx context.Context, id, url string) error {
	return s.setColumn(ctx, id, "profile_image_url", url)
}

func (s *Service) SetCoverImage(ctx context.Context, id, url string) error {
	return s.setColumn(ctx, id, "cover_image_url", url)
}

func (s *Service) setColumn(ctx context.Context, id, column, value string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errUserNotFound
	}
	return nil
}

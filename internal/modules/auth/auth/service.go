package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zenith-gallery/core/internal/models"
	"github.com/zenith-gallery/core/internal/modules/auth/user"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	jwtpkg "github.com/zenith-gallery/core/internal/pkg/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = apperr.Unauthorized("Credenciales inválidas")

type Service struct {
	db  *gorm.DB
	ttl time.Duration
	log *zap.Logger
}

func NewService(db *gorm.DB, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{db: db, ttl: ttl, log: log}
}

// Register creates a user with the default role and returns its token.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (string, error) {
	email := user.NormalizeEmail(dto.Email)
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return "", apperr.Conflict("El email ya está registrado")
	}

	hash, err := user.HashPassword(dto.Password)
	if err != nil {
		return "", err
	}
	u := models.User{
		Nombre:   strings.TrimSpace(dto.Nombre),
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return "", user.WriteError(err)
	}
	s.log.Info("user registered", zap.String("id", u.ID))
	return s.issue(u.ID)
}

// Login checks the credentials. An unknown email and a wrong password fail alike.
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (string, error) {
	var u models.User
	err := s.db.WithContext(ctx).Select("id", "password").
		Where("email = ?", user.NormalizeEmail(dto.Email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.Password)); err != nil {
		return "", errInvalidCredentials
	}
	return s.issue(u.ID)
}

func (s *Service) issue(userID string) (string, error) {
	token, err := jwtpkg.Sign(userID, s.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a gallery account. Password holds a bcrypt hash.
type User struct {
	Base
	Nombre          string    `json:"nombre"          gorm:"not null"`
	Email           string    `json:"email"           gorm:"uniqueIndex;not null"`
	Password        string    `json:"-"               gorm:"not null"`
	Role            string    `json:"role"            gorm:"not null;default:'user'"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	CoverImageURL   *string   `json:"coverImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }

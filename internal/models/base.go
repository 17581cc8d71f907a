package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the UUID primary key shared by relational entities.
type Base struct {
	ID string `json:"id" gorm:"type:uuid;primaryKey"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type DocumentOwnedBy struct {
	OwnerID uuid.UUID
}

func (s DocumentOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}

type ActiveDocuments struct{}

func (s ActiveDocuments) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

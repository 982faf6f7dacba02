package model

import (
	"time"

	"github.com/google/uuid"
)

type UserDocument struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerId    uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName   string    `gorm:"type:text;not null"`
	MimeType   string    `gorm:"type:varchar(128)"`
	SizeBytes  int64
	Status     string    `gorm:"type:varchar(16);not null;index"`
	IsActive   bool      `gorm:"not null"`
	ChunkCount int       `gorm:"default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (UserDocument) TableName() string {
	return "user_documents"
}

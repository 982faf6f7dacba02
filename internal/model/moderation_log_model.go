package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ModerationLog struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Content           string         `gorm:"type:text;not null"`
	ContentType       string         `gorm:"type:varchar(32);not null;index"`
	Flagged           bool           `gorm:"not null;default:false"`
	FlaggedCategories datatypes.JSON `gorm:"type:jsonb"`
	CategoryScores    datatypes.JSON `gorm:"type:jsonb"`
	Action            string         `gorm:"type:varchar(16);not null;index"` // "blocked" | "allowed"
	Reason            string         `gorm:"type:text"`
	CallerId          string         `gorm:"type:varchar(64);index"`
	IpAddress         string         `gorm:"type:varchar(64)"`
	UserAgent         string         `gorm:"type:text"`
	CreatedAt         time.Time      `gorm:"not null;index"`
}

func (ModerationLog) TableName() string {
	return "moderation_logs"
}

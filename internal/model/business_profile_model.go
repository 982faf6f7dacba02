package model

import (
	"github.com/google/uuid"
)

// BusinessProfile is owned by the profile store; this service only reads it.
type BusinessProfile struct {
	UserId        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessName  string    `gorm:"type:text"`
	Trade         string    `gorm:"type:varchar(64)"`
	City          string    `gorm:"type:varchar(128)"`
	State         string    `gorm:"type:varchar(64)"`
	ZipCode       string    `gorm:"type:varchar(16)"`
	Region        string    `gorm:"type:varchar(64)"`
	BusinessStage string    `gorm:"type:varchar(32)"`
}

func (BusinessProfile) TableName() string {
	return "business_profiles"
}

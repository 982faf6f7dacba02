package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeChunk struct {
	Id             uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Content        string                      `gorm:"type:text;not null"`
	Domain         string                      `gorm:"type:varchar(64);index"`
	Topic          string                      `gorm:"type:varchar(64);index"`
	Region         string                      `gorm:"type:varchar(64);index"`
	Season         string                      `gorm:"type:varchar(16);index"`
	BusinessStage  string                      `gorm:"type:varchar(32);index"`
	SourceDocument string                      `gorm:"type:text"`
	DocumentId     *uuid.UUID                  `gorm:"type:uuid;index"`
	ChunkIndex     int                         `gorm:"default:0"`
	Keywords       datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	PriorityScore  int                         `gorm:"not null;check:priority_score >= 0 AND priority_score <= 10"`
	Embedding      pgvector.Vector             `gorm:"type:vector(768)"`
	Population     string                      `gorm:"type:varchar(16);not null;index"` // "global" | "user"
	OwnerId        *uuid.UUID                  `gorm:"type:uuid;index"`
	IsActive       bool                        `gorm:"not null;index"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}

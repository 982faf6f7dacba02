package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentStatusPending  = "pending"
	DocumentStatusReady    = "ready"
	DocumentStatusRejected = "rejected"
	DocumentStatusFailed   = "failed"
)

type UserDocument struct {
	Id         uuid.UUID
	OwnerId    uuid.UUID
	FileName   string
	MimeType   string
	SizeBytes  int64
	Status     string
	IsActive   bool
	ChunkCount int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentResponse struct {
	Id       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	Status   string    `json:"status"`
	Message  string    `json:"message,omitempty"`
}

type DocumentResponse struct {
	Id         uuid.UUID  `json:"id"`
	FileName   string     `json:"file_name"`
	MimeType   string     `json:"mime_type"`
	SizeBytes  int64      `json:"size_bytes"`
	Status     string     `json:"status"`
	ChunkCount int        `json:"chunk_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// IngestDocumentMessage is the watermill payload for one accepted upload.
type IngestDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
	OwnerId    uuid.UUID `json:"owner_id"`
	Text       string    `json:"text"`
}

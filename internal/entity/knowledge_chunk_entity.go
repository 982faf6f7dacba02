package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	PopulationGlobal = "global"
	PopulationUser   = "user"
)

type KnowledgeChunk struct {
	Id             uuid.UUID
	Content        string
	Domain         string
	Topic          string
	Region         string
	Season         string
	BusinessStage  string
	SourceDocument string
	DocumentId     *uuid.UUID
	ChunkIndex     int
	Keywords       []string
	PriorityScore  int
	Embedding      []float32
	Population     string
	OwnerId        *uuid.UUID
	IsActive       bool
	CreatedAt      time.Time
}

// IsUserScoped reports whether the chunk belongs to a single owner's uploads.
func (c *KnowledgeChunk) IsUserScoped() bool {
	return c.Population == PopulationUser
}

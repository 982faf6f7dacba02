package contract

import (
	"context"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredKnowledgeChunk wraps a chunk with its cosine similarity to the query (1.0 = identical)
type ScoredKnowledgeChunk struct {
	Chunk      *entity.KnowledgeChunk
	Similarity float64
}

// GlobalChunkQuery narrows the curated population. Empty tag values disable that filter.
type GlobalChunkQuery struct {
	Threshold     float64
	Limit         int
	Region        string
	BusinessStage string
	Season        string
}

type KnowledgeChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	DeactivateByDocumentId(ctx context.Context, documentId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	SearchGlobal(ctx context.Context, embedding []float32, query GlobalChunkQuery) ([]*ScoredKnowledgeChunk, error)
	SearchUser(ctx context.Context, embedding []float32, ownerId uuid.UUID, threshold float64, limit int) ([]*ScoredKnowledgeChunk, error)
}

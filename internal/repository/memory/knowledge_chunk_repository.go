package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
)

// KnowledgeChunkRepository is a brute-force cosine index used by tests and
// local runs without pgvector.
type KnowledgeChunkRepository struct {
	mu     sync.RWMutex
	chunks []*entity.KnowledgeChunk
}

func NewKnowledgeChunkRepository() *KnowledgeChunkRepository {
	return &KnowledgeChunkRepository{}
}

func (r *KnowledgeChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		cp := *c
		cp.Embedding = append([]float32(nil), c.Embedding...)
		r.chunks = append(r.chunks, &cp)
	}
	return nil
}

func (r *KnowledgeChunkRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.chunks[:0]
	for _, c := range r.chunks {
		if c.DocumentId != nil && *c.DocumentId == documentId {
			continue
		}
		kept = append(kept, c)
	}
	r.chunks = kept
	return nil
}

func (r *KnowledgeChunkRepository) DeactivateByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.chunks {
		if c.DocumentId != nil && *c.DocumentId == documentId {
			c.IsActive = false
		}
	}
	return nil
}

// Count ignores specifications and returns the number of stored chunks.
func (r *KnowledgeChunkRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.chunks)), nil
}

func tagMatches(tag, want string) bool {
	return want == "" || tag == "" || tag == "all" || tag == want
}

func (r *KnowledgeChunkRepository) SearchGlobal(ctx context.Context, embedding []float32, q contract.GlobalChunkQuery) ([]*contract.ScoredKnowledgeChunk, error) {
	return r.search(embedding, q.Threshold, q.Limit, func(c *entity.KnowledgeChunk) bool {
		return c.Population == entity.PopulationGlobal &&
			tagMatches(c.Region, q.Region) &&
			tagMatches(c.BusinessStage, q.BusinessStage) &&
			tagMatches(c.Season, q.Season)
	})
}

func (r *KnowledgeChunkRepository) SearchUser(ctx context.Context, embedding []float32, ownerId uuid.UUID, threshold float64, limit int) ([]*contract.ScoredKnowledgeChunk, error) {
	return r.search(embedding, threshold, limit, func(c *entity.KnowledgeChunk) bool {
		return c.Population == entity.PopulationUser && c.OwnerId != nil && *c.OwnerId == ownerId
	})
}

func (r *KnowledgeChunkRepository) search(embedding []float32, threshold float64, limit int, keep func(*entity.KnowledgeChunk) bool) ([]*contract.ScoredKnowledgeChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var scored []*contract.ScoredKnowledgeChunk
	for _, c := range r.chunks {
		if !c.IsActive || !keep(c) {
			continue
		}
		sim := CosineSimilarity(embedding, c.Embedding)
		if sim <= threshold {
			continue
		}
		cp := *c
		scored = append(scored, &contract.ScoredKnowledgeChunk{Chunk: &cp, Similarity: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Chunk.PriorityScore > scored[j].Chunk.PriorityScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// CosineSimilarity returns the cosine of the angle between a and b. Vectors of
// different length or zero magnitude score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

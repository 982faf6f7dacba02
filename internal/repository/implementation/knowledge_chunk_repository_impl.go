package implementation

import (
	"context"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/mapper"
	"trade-advisor-be/internal/model"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeChunkMapper
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeChunkMapper(),
	}
}

func (r *KnowledgeChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	for _, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
	}

	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	query := specification.ByDocumentID{DocumentID: documentId}.Apply(r.db.WithContext(ctx))
	return query.Delete(&model.KnowledgeChunk{}).Error
}

func (r *KnowledgeChunkRepositoryImpl) DeactivateByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	query := specification.ByDocumentID{DocumentID: documentId}.Apply(r.db.WithContext(ctx).Model(&model.KnowledgeChunk{}))
	return query.Update("is_active", false).Error
}

func (r *KnowledgeChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.KnowledgeChunk{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

type scoredChunkRow struct {
	model.KnowledgeChunk
	Similarity float64
}

// searchScored runs a cosine search. pgvector's <=> is cosine distance, so
// 1 - distance is the similarity.
func (r *KnowledgeChunkRepositoryImpl) searchScored(ctx context.Context, embedding []float32, threshold float64, limit int, specs ...specification.Specification) ([]*contract.ScoredKnowledgeChunk, error) {
	if limit <= 0 {
		limit = 5
	}
	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector)
	query = r.applySpecifications(query, specs...)

	var rows []scoredChunkRow
	err := query.
		Where("1 - (embedding <=> ?) > ?", queryVector, threshold).
		Order("similarity DESC").
		Order("priority_score DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeChunk, len(rows))
	for i := range rows {
		scored[i] = &contract.ScoredKnowledgeChunk{
			Chunk:      r.mapper.ToEntity(&rows[i].KnowledgeChunk),
			Similarity: rows[i].Similarity,
		}
	}
	return scored, nil
}

func (r *KnowledgeChunkRepositoryImpl) SearchGlobal(ctx context.Context, embedding []float32, q contract.GlobalChunkQuery) ([]*contract.ScoredKnowledgeChunk, error) {
	return r.searchScored(ctx, embedding, q.Threshold, q.Limit,
		specification.ByPopulation{Population: entity.PopulationGlobal},
		specification.ActiveChunks{},
		specification.TagMatches{Column: "region", Value: q.Region},
		specification.TagMatches{Column: "business_stage", Value: q.BusinessStage},
		specification.TagMatches{Column: "season", Value: q.Season},
	)
}

func (r *KnowledgeChunkRepositoryImpl) SearchUser(ctx context.Context, embedding []float32, ownerId uuid.UUID, threshold float64, limit int) ([]*contract.ScoredKnowledgeChunk, error) {
	return r.searchScored(ctx, embedding, threshold, limit,
		specification.ByPopulation{Population: entity.PopulationUser},
		specification.ChunkOwnedBy{OwnerID: ownerId},
		specification.ActiveChunks{},
	)
}

package mapper

import (
	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeChunkMapper struct{}

func NewKnowledgeChunkMapper() *KnowledgeChunkMapper {
	return &KnowledgeChunkMapper{}
}

func (m *KnowledgeChunkMapper) ToEntity(c *model.KnowledgeChunk) *entity.KnowledgeChunk {
	if c == nil {
		return nil
	}

	return &entity.KnowledgeChunk{
		Id:             c.Id,
		Content:        c.Content,
		Domain:         c.Domain,
		Topic:          c.Topic,
		Region:         c.Region,
		Season:         c.Season,
		BusinessStage:  c.BusinessStage,
		SourceDocument: c.SourceDocument,
		DocumentId:     c.DocumentId,
		ChunkIndex:     c.ChunkIndex,
		Keywords:       []string(c.Keywords),
		PriorityScore:  c.PriorityScore,
		Embedding:      c.Embedding.Slice(),
		Population:     c.Population,
		OwnerId:        c.OwnerId,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *KnowledgeChunkMapper) ToModel(c *entity.KnowledgeChunk) *model.KnowledgeChunk {
	if c == nil {
		return nil
	}

	return &model.KnowledgeChunk{
		Id:             c.Id,
		Content:        c.Content,
		Domain:         c.Domain,
		Topic:          c.Topic,
		Region:         c.Region,
		Season:         c.Season,
		BusinessStage:  c.BusinessStage,
		SourceDocument: c.SourceDocument,
		DocumentId:     c.DocumentId,
		ChunkIndex:     c.ChunkIndex,
		Keywords:       datatypes.NewJSONSlice(c.Keywords),
		PriorityScore:  c.PriorityScore,
		Embedding:      pgvector.NewVector(c.Embedding),
		Population:     c.Population,
		OwnerId:        c.OwnerId,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *KnowledgeChunkMapper) ToModels(chunks []*entity.KnowledgeChunk) []*model.KnowledgeChunk {
	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}

package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPopulation struct {
	Population string
}

func (s ByPopulation) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("knowledge_chunks.population = ?", s.Population)
}

type ChunkOwnedBy struct {
	OwnerID uuid.UUID
}

func (s ChunkOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("knowledge_chunks.owner_id = ?", s.OwnerID)
}

type ActiveChunks struct{}

func (s ActiveChunks) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("knowledge_chunks.is_active = ?", true)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// TagMatches narrows by a tag column. Untagged chunks (empty or "all") match every value.
// An empty Value disables the filter.
type TagMatches struct {
	Column string
	Value  string
}

func (s TagMatches) Apply(db *gorm.DB) *gorm.DB {
	if s.Value == "" {
		return db
	}
	col := fmt.Sprintf("knowledge_chunks.%s", s.Column)
	return db.Where(fmt.Sprintf("(%s = ? OR %s = '' OR %s IS NULL OR %s = 'all')", col, col, col, col), s.Value)
}

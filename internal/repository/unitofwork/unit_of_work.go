package unitofwork

import (
	"context"

	"trade-advisor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
	UserDocumentRepository() contract.UserDocumentRepository
	ModerationLogRepository() contract.ModerationLogRepository
	BusinessProfileRepository() contract.BusinessProfileRepository
}

package contract

import (
	"context"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserDocumentRepository interface {
	Create(ctx context.Context, document *entity.UserDocument) error
	Update(ctx context.Context, document *entity.UserDocument) error
	// UpdateStatus writes status and chunk count on an active document only and
	// reports whether a row was changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, chunkCount int) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserDocument, error)
}

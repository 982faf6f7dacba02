package contract

import (
	"context"

	"trade-advisor-be/internal/entity"

	"github.com/google/uuid"
)

type BusinessProfileRepository interface {
	// FindByUserId returns nil, nil when the user has no profile yet.
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.BusinessProfile, error)
}

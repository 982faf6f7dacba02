package contract

import (
	"context"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/repository/specification"
)

// ModerationLogRepository is append-only.
type ModerationLogRepository interface {
	Create(ctx context.Context, log *entity.ModerationLog) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package memory

import (
	"context"
	"sync"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ModerationLogRepository keeps audit rows in process for local runs and tests.
type ModerationLogRepository struct {
	mu   sync.RWMutex
	rows []*entity.ModerationLog
}

func NewModerationLogRepository() *ModerationLogRepository {
	return &ModerationLogRepository{}
}

func (r *ModerationLogRepository) Create(ctx context.Context, log *entity.ModerationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	cp := *log
	r.rows = append(r.rows, &cp)
	return nil
}

// Count ignores specifications and returns the number of stored rows.
func (r *ModerationLogRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

// All returns a snapshot of the stored rows in insertion order.
func (r *ModerationLogRepository) All() []*entity.ModerationLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*entity.ModerationLog(nil), r.rows...)
}

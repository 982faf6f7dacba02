package implementation

import (
	"context"
	"time"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/mapper"
	"trade-advisor-be/internal/model"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModerationLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ModerationLogMapper
}

func NewModerationLogRepository(db *gorm.DB) contract.ModerationLogRepository {
	return &ModerationLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewModerationLogMapper(),
	}
}

func (r *ModerationLogRepositoryImpl) Create(ctx context.Context, log *entity.ModerationLog) error {
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	m, err := r.mapper.ToModel(log)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ModerationLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.ModerationLog{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	err := query.Count(&count).Error
	return count, err
}

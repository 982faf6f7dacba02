package implementation

import (
	"context"
	"errors"
	"time"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/mapper"
	"trade-advisor-be/internal/model"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LookupCacheRepositoryImpl reads through the caller-scoped handle and writes
// through the service-role handle.
type LookupCacheRepositoryImpl struct {
	reader *gorm.DB
	writer *gorm.DB
	mapper *mapper.LookupCacheEntryMapper
}

func NewLookupCacheRepository(reader, writer *gorm.DB) contract.LookupCacheRepository {
	if writer == nil {
		writer = reader
	}
	return &LookupCacheRepositoryImpl{
		reader: reader,
		writer: writer,
		mapper: mapper.NewLookupCacheEntryMapper(),
	}
}

func (r *LookupCacheRepositoryImpl) FindFresh(ctx context.Context, provider, key string, since time.Time) (*entity.LookupCacheEntry, error) {
	var m model.LookupCacheEntry
	query := r.reader.WithContext(ctx).
		Where("provider = ? AND cache_key = ?", provider, key)
	query = specification.CreatedSince{Since: since}.Apply(query)
	query = specification.OrderBy{Field: "created_at", Desc: true}.Apply(query)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LookupCacheRepositoryImpl) Create(ctx context.Context, entry *entity.LookupCacheEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m := r.mapper.ToModel(entry)
	return r.writer.WithContext(ctx).Create(m).Error
}

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

type UserDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserDocumentMapper
}

func NewUserDocumentRepository(db *gorm.DB) contract.UserDocumentRepository {
	return &UserDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserDocumentMapper(),
	}
}

func (r *UserDocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserDocumentRepositoryImpl) Create(ctx context.Context, document *entity.UserDocument) error {
	if document.Id == uuid.Nil {
		document.Id = uuid.New()
	}
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserDocumentRepositoryImpl) Update(ctx context.Context, document *entity.UserDocument) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserDocumentRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string, chunkCount int) (bool, error) {
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UserDocument{}),
		specification.ByID{ID: id},
		specification.ActiveDocuments{},
	)
	res := query.Updates(map[string]interface{}{
		"status":      status,
		"chunk_count": chunkCount,
		"updated_at":  time.Now(),
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserDocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserDocument, error) {
	var m model.UserDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserDocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserDocument, error) {
	var models []*model.UserDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UserDocument, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

package implementation

import (
	"context"
	"errors"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/model"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewBusinessProfileRepository(db *gorm.DB) contract.BusinessProfileRepository {
	return &BusinessProfileRepositoryImpl{db: db}
}

func (r *BusinessProfileRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.BusinessProfile, error) {
	var m model.BusinessProfile
	query := specification.UserOwnedBy{UserID: userId}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.BusinessProfile{
		UserId:        m.UserId,
		BusinessName:  m.BusinessName,
		Trade:         m.Trade,
		City:          m.City,
		State:         m.State,
		ZipCode:       m.ZipCode,
		Region:        m.Region,
		BusinessStage: m.BusinessStage,
	}, nil
}

package mapper

import (
	"encoding/json"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/model"

	"gorm.io/datatypes"
)

type ModerationLogMapper struct{}

func NewModerationLogMapper() *ModerationLogMapper {
	return &ModerationLogMapper{}
}

func (m *ModerationLogMapper) ToModel(l *entity.ModerationLog) (*model.ModerationLog, error) {
	if l == nil {
		return nil, nil
	}

	categories := l.FlaggedCategories
	if categories == nil {
		categories = []string{}
	}
	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, err
	}

	scores := l.CategoryScores
	if scores == nil {
		scores = map[string]float64{}
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return nil, err
	}

	return &model.ModerationLog{
		Id:                l.Id,
		Content:           l.Content,
		ContentType:       l.ContentType,
		Flagged:           l.Flagged,
		FlaggedCategories: datatypes.JSON(categoriesJSON),
		CategoryScores:    datatypes.JSON(scoresJSON),
		Action:            l.Action,
		Reason:            l.Reason,
		CallerId:          l.CallerId,
		IpAddress:         l.IpAddress,
		UserAgent:         l.UserAgent,
		CreatedAt:         l.CreatedAt,
	}, nil
}

func (m *ModerationLogMapper) ToEntity(l *model.ModerationLog) *entity.ModerationLog {
	if l == nil {
		return nil
	}

	var categories []string
	_ = json.Unmarshal(l.FlaggedCategories, &categories)
	scores := map[string]float64{}
	_ = json.Unmarshal(l.CategoryScores, &scores)

	return &entity.ModerationLog{
		Id:                l.Id,
		Content:           l.Content,
		ContentType:       l.ContentType,
		Flagged:           l.Flagged,
		FlaggedCategories: categories,
		CategoryScores:    scores,
		Action:            l.Action,
		Reason:            l.Reason,
		CallerId:          l.CallerId,
		IpAddress:         l.IpAddress,
		UserAgent:         l.UserAgent,
		CreatedAt:         l.CreatedAt,
	}
}

package mapper

import (
	"time"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/model"
)

type UserDocumentMapper struct{}

func NewUserDocumentMapper() *UserDocumentMapper {
	return &UserDocumentMapper{}
}

func (m *UserDocumentMapper) ToEntity(d *model.UserDocument) *entity.UserDocument {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserDocument{
		Id:         d.Id,
		OwnerId:    d.OwnerId,
		FileName:   d.FileName,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		Status:     d.Status,
		IsActive:   d.IsActive,
		ChunkCount: d.ChunkCount,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *UserDocumentMapper) ToModel(d *entity.UserDocument) *model.UserDocument {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.UserDocument{
		Id:         d.Id,
		OwnerId:    d.OwnerId,
		FileName:   d.FileName,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		Status:     d.Status,
		IsActive:   d.IsActive,
		ChunkCount: d.ChunkCount,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

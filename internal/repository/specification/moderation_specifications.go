package specification

import "gorm.io/gorm"

type ByContentType struct {
	ContentType string
}

func (s ByContentType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content_type = ?", s.ContentType)
}

type ByModerationAction struct {
	Action string
}

func (s ByModerationAction) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("action = ?", s.Action)
}

type ByCallerID struct {
	CallerID string
}

func (s ByCallerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("caller_id = ?", s.CallerID)
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ModerationActionBlocked = "blocked"
	ModerationActionAllowed = "allowed"
)

type ModerationLog struct {
	Id                uuid.UUID
	Content           string
	ContentType       string
	Flagged           bool
	FlaggedCategories []string
	CategoryScores    map[string]float64
	Action            string
	Reason            string
	CallerId          string
	IpAddress         string
	UserAgent         string
	CreatedAt         time.Time
}

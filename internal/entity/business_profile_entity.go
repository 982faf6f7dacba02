package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type BusinessProfile struct {
	UserId        uuid.UUID
	BusinessName  string
	Trade         string
	City          string
	State         string
	ZipCode       string
	Region        string
	BusinessStage string
}

// LocationText picks the most precise location the profile carries: the zip code
// when present, otherwise "City, State".
func (p *BusinessProfile) LocationText() string {
	if p == nil {
		return ""
	}
	if zip := strings.TrimSpace(p.ZipCode); zip != "" {
		return zip
	}
	city := strings.TrimSpace(p.City)
	state := strings.TrimSpace(p.State)
	switch {
	case city != "" && state != "":
		return fmt.Sprintf("%s, %s", city, state)
	case city != "":
		return city
	default:
		return state
	}
}

package models

import "github.com/google/uuid"

type DancePerformance struct {
	Base
	WeddingID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"weddingId"`
	EventID         *uuid.UUID `gorm:"type:uuid;index" json:"eventId"`
	Title           string     `gorm:"not null" json:"title"`
	Song            string     `json:"song"`
	Artist          string     `json:"artist"`
	DurationMinutes int        `json:"durationMinutes"`
	Choreographer   string     `json:"choreographer"`
	Sequence        int        `json:"sequence"`
	Notes           string     `json:"notes"`
	SoftDelete
}

func (d *DancePerformance) Validate() error { return required("title", d.Title) }

// DanceParticipant is either a guest of the wedding or a free-text name.
type DanceParticipant struct {
	Base
	PerformanceID uuid.UUID  `gorm:"type:uuid;index;not null" json:"performanceId"`
	GuestID       *uuid.UUID `gorm:"type:uuid;index" json:"guestId"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
}

func (p *DanceParticipant) Validate() error {
	if p.GuestID == nil && isBlank(p.Name) {
		return &ValidationError{Field: "name", Message: "is required when no guestId is given"}
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Wedding is the tenancy root. Every other row traces back to one.
type Wedding struct {
	Base
	OwnerID      string     `gorm:"type:varchar(191);index;not null" json:"ownerId"`
	Name         string     `gorm:"not null" json:"name"`
	Partner1Name string     `json:"partner1Name"`
	Partner2Name string     `json:"partner2Name"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Location     string     `json:"location"`
	BudgetTotal  float64    `gorm:"type:decimal(12,2);default:0" json:"budgetTotal"`
	Currency     string     `gorm:"type:varchar(3)" json:"currency"`
	SoftDelete
}

func (w *Wedding) Validate() error {
	if err := required("name", w.Name); err != nil {
		return err
	}
	if w.StartDate != nil && w.EndDate != nil && w.EndDate.Before(*w.StartDate) {
		return &ValidationError{Field: "endDate", Message: "must not be before startDate"}
	}
	return nonNegative("budgetTotal", w.BudgetTotal)
}

// WeddingEvent is a sub-ceremony of a wedding (mehendi, sangeet, reception...).
type WeddingEvent struct {
	Base
	WeddingID   uuid.UUID `gorm:"type:uuid;index;not null" json:"weddingId"`
	Name        string    `gorm:"not null" json:"name"`
	EventType   string    `gorm:"not null" json:"eventType"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Venue       string    `json:"venue"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	SoftDelete
}

func (e *WeddingEvent) Validate() error {
	if err := firstErr(required("name", e.Name), required("eventType", e.EventType)); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "is required"}
	}
	return nil
}

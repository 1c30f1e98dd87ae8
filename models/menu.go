package models

import (
	"time"

	"github.com/google/uuid"
)

type Menu struct {
	Base
	WeddingID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"weddingId"`
	EventID    *uuid.UUID `gorm:"type:uuid;index" json:"eventId"`
	Name       string     `gorm:"not null" json:"name"`
	MealType   string     `json:"mealType"` // breakfast, lunch, dinner, snacks
	Caterer    string     `json:"caterer"`
	Approved   bool       `gorm:"default:false" json:"approved"`
	ApprovedBy string     `json:"approvedBy"`
	ApprovedAt *time.Time `json:"approvedAt"`
	Notes      string     `json:"notes"`
	SoftDelete
}

func (m *Menu) Validate() error { return required("name", m.Name) }

type MenuItem struct {
	Base
	MenuID      uuid.UUID `gorm:"type:uuid;index;not null" json:"menuId"`
	Name        string    `gorm:"not null" json:"name"`
	Course      string    `json:"course"`
	Vegetarian  bool      `json:"vegetarian"`
	Vegan       bool      `json:"vegan"`
	Jain        bool      `json:"jain"`
	GlutenFree  bool      `json:"glutenFree"`
	ServingSize string    `json:"servingSize"` // free text, e.g. "2 pieces per 1"
	Quantity    *int      `json:"quantity"`
	Notes       string    `json:"notes"`
	SoftDelete
}

func (m *MenuItem) Validate() error {
	if err := required("name", m.Name); err != nil {
		return err
	}
	if m.Quantity != nil && *m.Quantity < 0 {
		return &ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	return nil
}

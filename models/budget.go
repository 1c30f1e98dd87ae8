package models

import (
	"time"

	"github.com/google/uuid"
)

type BudgetCategory struct {
	Base
	WeddingID       uuid.UUID `gorm:"type:uuid;index;not null" json:"weddingId"`
	Name            string    `gorm:"not null" json:"name"`
	AllocatedAmount float64   `gorm:"type:decimal(12,2);default:0" json:"allocatedAmount"`
	Notes           string    `json:"notes"`
	SoftDelete
}

func (b *BudgetCategory) Validate() error {
	return firstErr(required("name", b.Name), nonNegative("allocatedAmount", b.AllocatedAmount))
}

type BudgetItem struct {
	Base
	CategoryID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"categoryId"`
	VendorID        *uuid.UUID `gorm:"type:uuid;index" json:"vendorId"`
	Name            string     `gorm:"not null" json:"name"`
	EstimatedAmount float64    `gorm:"type:decimal(12,2);default:0" json:"estimatedAmount"`
	ActualAmount    float64    `gorm:"type:decimal(12,2);default:0" json:"actualAmount"`
	Notes           string     `json:"notes"`
	SoftDelete
}

func (b *BudgetItem) Validate() error {
	return firstErr(
		required("name", b.Name),
		nonNegative("estimatedAmount", b.EstimatedAmount),
		nonNegative("actualAmount", b.ActualAmount),
	)
}

// Expense records money actually spent.
type Expense struct {
	Base
	WeddingID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"weddingId"`
	CategoryID    *uuid.UUID `gorm:"type:uuid;index" json:"categoryId"`
	BudgetItemID  *uuid.UUID `gorm:"type:uuid;index" json:"budgetItemId"`
	VendorID      *uuid.UUID `gorm:"type:uuid;index" json:"vendorId"`
	Description   string     `gorm:"not null" json:"description"`
	Amount        float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date          *time.Time `json:"date"`
	PaidBy        string     `json:"paidBy"`
	PaymentMethod string     `json:"paymentMethod"`
	SoftDelete
}

func (e *Expense) Validate() error {
	if err := required("description", e.Description); err != nil {
		return err
	}
	if e.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VendorPendingQuote = "pending_quote"
	VendorNegotiating  = "negotiating"
	VendorConfirmed    = "confirmed"
	VendorBooked       = "booked"
	VendorPaid         = "paid"
	VendorCancelled    = "cancelled"
)

var VendorStatuses = []string{VendorPendingQuote, VendorNegotiating, VendorConfirmed, VendorBooked, VendorPaid, VendorCancelled}

type Vendor struct {
	Base
	WeddingID     uuid.UUID `gorm:"type:uuid;index;not null" json:"weddingId"`
	Name          string    `gorm:"not null" json:"name"`
	Category      string    `gorm:"index;not null" json:"category"`
	ContactPerson string    `json:"contactPerson"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Website       string    `json:"website"`
	Status        string    `gorm:"type:varchar(20);default:'pending_quote'" json:"status"`
	QuotedAmount  float64   `gorm:"type:decimal(12,2);default:0" json:"quotedAmount"`
	Rating        *int      `json:"rating"`
	Notes         string    `json:"notes"`
	SoftDelete
}

func (v *Vendor) ApplyDefaults() {
	if v.Status == "" {
		v.Status = VendorPendingQuote
	}
}

func (v *Vendor) Validate() error {
	if err := firstErr(
		required("name", v.Name),
		required("category", v.Category),
		oneOf("status", v.Status, VendorStatuses...),
		nonNegative("quotedAmount", v.QuotedAmount),
	); err != nil {
		return err
	}
	return ValidateRating(v.Rating)
}

func ValidateRating(rating *int) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return &ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}
	return nil
}

const (
	TrancheDeposit = "deposit"
	TrancheAdvance = "advance"
	TrancheFinal   = "final"
)

var Tranches = []string{TrancheDeposit, TrancheAdvance, TrancheFinal}

// VendorContract is one payment tranche of a vendor agreement. Tranches are
// removed outright rather than soft-deleted.
type VendorContract struct {
	Base
	VendorID uuid.UUID  `gorm:"type:uuid;index;not null" json:"vendorId"`
	Tranche  string     `gorm:"type:varchar(20);not null" json:"tranche"`
	Amount   float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	DueDate  *time.Time `json:"dueDate"`
	Paid     bool       `gorm:"default:false" json:"paid"`
	PaidAt   *time.Time `json:"paidAt"`
	Notes    string     `json:"notes"`
}

func (c *VendorContract) Validate() error {
	return firstErr(
		oneOf("tranche", c.Tranche, Tranches...),
		nonNegative("amount", c.Amount),
	)
}

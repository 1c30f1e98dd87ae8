package models

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identity and timestamp columns shared by every table.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Initialize UUID and creation stamp before creating
func (b *Base) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = nextStamp()
		b.UpdatedAt = b.CreatedAt
	}
	return
}

var lastStamp atomic.Int64

// nextStamp is the current time at microsecond precision, strictly later
// than any stamp handed out before, so rows inserted in one batch keep their
// insertion order.
func nextStamp() time.Time {
	for {
		last := lastStamp.Load()
		now := time.Now().UTC().UnixMicro()
		if now <= last {
			now = last + 1
		}
		if lastStamp.CompareAndSwap(last, now) {
			return time.UnixMicro(now).UTC()
		}
	}
}

// SoftDelete marks a row as hidden without removing it.
type SoftDelete struct {
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

// ValidationError reports a user-correctable problem with a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func required(field, value string) error {
	if isBlank(value) {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if v < 0 {
		return &ValidationError{Field: field, Message: "must not be negative"}
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{Field: field, Message: "must be one of " + joinQuoted(allowed)}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

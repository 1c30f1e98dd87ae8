package models

import "github.com/google/uuid"

// EntityKind names the tables a note, file or communication can point at.
type EntityKind string

const (
	KindEvent          EntityKind = "event"
	KindGuest          EntityKind = "guest"
	KindVendor         EntityKind = "vendor"
	KindBudgetCategory EntityKind = "budget_category"
	KindExpense        EntityKind = "expense"
	KindTask           EntityKind = "task"
	KindMenu           EntityKind = "menu"
	KindDance          EntityKind = "dance"
	KindAccommodation  EntityKind = "accommodation"
	KindTransportation EntityKind = "transportation"
)

var EntityKinds = []EntityKind{
	KindEvent, KindGuest, KindVendor, KindBudgetCategory, KindExpense,
	KindTask, KindMenu, KindDance, KindAccommodation, KindTransportation,
}

func (k EntityKind) Valid() bool {
	for _, known := range EntityKinds {
		if k == known {
			return true
		}
	}
	return false
}

// EntityRef is an optional typed link to another row of the same wedding.
// Both columns are empty when the owner is not linked to anything.
type EntityRef struct {
	EntityType EntityKind `gorm:"type:varchar(32);index" json:"entityType,omitempty"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index" json:"entityId,omitempty"`
}

func (r EntityRef) IsZero() bool { return r.EntityType == "" && r.EntityID == nil }

func (r EntityRef) Validate() error {
	if r.IsZero() {
		return nil
	}
	if !r.EntityType.Valid() {
		return &ValidationError{Field: "entityType", Message: "unknown entity type"}
	}
	if r.EntityID == nil || *r.EntityID == uuid.Nil {
		return &ValidationError{Field: "entityId", Message: "is required with entityType"}
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
)

var ErrInvalidReference = errors.New("invalid reference")

// ReferenceError names the field whose id does not resolve inside the
// caller's wedding.
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s does not refer to a record in this wedding", e.Field)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrInvalidReference }

type existsFunc func(ctx context.Context, weddingID, id uuid.UUID) (bool, error)

// LinkValidator checks that ids supplied by a caller point at live rows of
// the same wedding.
type LinkValidator struct {
	store *repository.Store
	kinds map[models.EntityKind]existsFunc
}

func NewLinkValidator(store *repository.Store) *LinkValidator {
	v := &LinkValidator{store: store}
	v.kinds = map[models.EntityKind]existsFunc{
		models.KindEvent:          store.Events.Exists,
		models.KindGuest:          store.Guests.Exists,
		models.KindVendor:         store.Vendors.Exists,
		models.KindBudgetCategory: store.Categories.Exists,
		models.KindExpense:        store.Expenses.Exists,
		models.KindTask:           store.Tasks.Exists,
		models.KindMenu:           store.Menus.Exists,
		models.KindDance:          store.Dances.Exists,
		models.KindAccommodation:  store.Accommodations.Exists,
		models.KindTransportation: store.Transportation.Exists,
	}
	return v
}

// Ref validates a polymorphic link. The zero ref is always valid.
func (v *LinkValidator) Ref(ctx context.Context, weddingID uuid.UUID, ref models.EntityRef) error {
	if err := ref.Validate(); err != nil || ref.IsZero() {
		return err
	}
	return check(ctx, v.kinds[ref.EntityType], weddingID, ref.EntityID, "entityId")
}

func (v *LinkValidator) Event(ctx context.Context, weddingID uuid.UUID, id *uuid.UUID) error {
	return check(ctx, v.store.Events.Exists, weddingID, id, "eventId")
}

func (v *LinkValidator) Group(ctx context.Context, weddingID uuid.UUID, id *uuid.UUID) error {
	return check(ctx, v.store.GuestGroups.Exists, weddingID, id, "groupId")
}

func (v *LinkValidator) Guest(ctx context.Context, weddingID uuid.UUID, id *uuid.UUID) error {
	return check(ctx, v.store.Guests.Exists, weddingID, id, "guestId")
}

func (v *LinkValidator) Vendor(ctx context.Context, weddingID uuid.UUID, id *uuid.UUID) error {
	return check(ctx, v.store.Vendors.Exists, weddingID, id, "vendorId")
}

func (v *LinkValidator) Category(ctx context.Context, weddingID uuid.UUID, id *uuid.UUID) error {
	return check(ctx, v.store.Categories.Exists, weddingID, id, "categoryId")
}

func (v *LinkValidator) Task(ctx context.Context, weddingID uuid.UUID, id *uuid.UUID) error {
	return check(ctx, v.store.Tasks.Exists, weddingID, id, "dependsOnTaskId")
}

// BudgetItem resolves the item through its category, since items hang off
// categories rather than the wedding.
func (v *LinkValidator) BudgetItem(ctx context.Context, weddingID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	item, err := v.store.BudgetItems.GetByID(ctx, *id)
	if errors.Is(err, repository.ErrNotFound) {
		return &ReferenceError{Field: "budgetItemId"}
	}
	if err != nil {
		return err
	}
	return check(ctx, v.store.Categories.Exists, weddingID, &item.CategoryID, "budgetItemId")
}

// Expense checks every optional reference an expense carries.
func (v *LinkValidator) Expense(ctx context.Context, e *models.Expense) error {
	if err := v.Category(ctx, e.WeddingID, e.CategoryID); err != nil {
		return err
	}
	if err := v.BudgetItem(ctx, e.WeddingID, e.BudgetItemID); err != nil {
		return err
	}
	if err := v.Vendor(ctx, e.WeddingID, e.VendorID); err != nil {
		return err
	}
	return v.ItemInCategory(ctx, e.CategoryID, e.BudgetItemID)
}

// ItemInCategory rejects a budget item filed under another category than the
// one named alongside it. Either side may be absent.
func (v *LinkValidator) ItemInCategory(ctx context.Context, categoryID, itemID *uuid.UUID) error {
	if categoryID == nil || itemID == nil {
		return nil
	}
	item, err := v.store.BudgetItems.GetByID(ctx, *itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return &ReferenceError{Field: "budgetItemId"}
	}
	if err != nil {
		return err
	}
	if item.CategoryID != *categoryID {
		return &models.ValidationError{Field: "budgetItemId", Message: "belongs to a different category"}
	}
	return nil
}

func check(ctx context.Context, exists existsFunc, weddingID uuid.UUID, id *uuid.UUID, field string) error {
	if id == nil {
		return nil
	}
	if exists == nil || *id == uuid.Nil {
		return &ReferenceError{Field: field}
	}
	ok, err := exists(ctx, weddingID, *id)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceError{Field: field}
	}
	return nil
}

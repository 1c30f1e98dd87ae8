package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/testutil"
)

func TestLinkValidatorRef(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	links := NewLinkValidator(store)
	ctx := context.Background()

	a := testutil.SeedWedding(t, ctx, db, "p1")
	b := testutil.SeedWedding(t, ctx, db, "p2")
	guestA := testutil.SeedGuest(t, ctx, db, a.ID, "Asha", "")
	guestB := testutil.SeedGuest(t, ctx, db, b.ID, "Bina", "")
	eventA := testutil.SeedEvent(t, ctx, db, a.ID, "Haldi", time.Now().UTC())

	require.NoError(t, links.Ref(ctx, a.ID, models.EntityRef{}))
	require.NoError(t, links.Ref(ctx, a.ID, models.EntityRef{EntityType: models.KindGuest, EntityID: &guestA.ID}))
	require.NoError(t, links.Ref(ctx, a.ID, models.EntityRef{EntityType: models.KindEvent, EntityID: &eventA.ID}))

	err := links.Ref(ctx, a.ID, models.EntityRef{EntityType: models.KindGuest, EntityID: &guestB.ID})
	assert.ErrorIs(t, err, ErrInvalidReference)

	err = links.Ref(ctx, a.ID, models.EntityRef{EntityType: models.KindVendor, EntityID: &guestA.ID})
	assert.ErrorIs(t, err, ErrInvalidReference)

	var verr *models.ValidationError
	err = links.Ref(ctx, a.ID, models.EntityRef{EntityType: "invoice", EntityID: &guestA.ID})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "entityType", verr.Field)

	require.NoError(t, store.Guests.Delete(ctx, a.ID, guestA.ID))
	err = links.Ref(ctx, a.ID, models.EntityRef{EntityType: models.KindGuest, EntityID: &guestA.ID})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestLinkValidatorExpense(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	links := NewLinkValidator(store)
	ctx := context.Background()

	a := testutil.SeedWedding(t, ctx, db, "p1")
	b := testutil.SeedWedding(t, ctx, db, "p2")
	catA := &models.BudgetCategory{WeddingID: a.ID, Name: "Decor"}
	catB := &models.BudgetCategory{WeddingID: b.ID, Name: "Decor"}
	require.NoError(t, store.Categories.Create(ctx, catA))
	require.NoError(t, store.Categories.Create(ctx, catB))
	itemB := &models.BudgetItem{CategoryID: catB.ID, Name: "Marigolds"}
	require.NoError(t, store.BudgetItems.Create(ctx, itemB))

	ok := &models.Expense{WeddingID: a.ID, CategoryID: &catA.ID, Description: "Lights", Amount: 10}
	assert.NoError(t, links.Expense(ctx, ok))

	bad := &models.Expense{WeddingID: a.ID, CategoryID: &catB.ID, Description: "Lights", Amount: 10}
	var rerr *ReferenceError
	require.ErrorAs(t, links.Expense(ctx, bad), &rerr)
	assert.Equal(t, "categoryId", rerr.Field)

	bad = &models.Expense{WeddingID: a.ID, BudgetItemID: &itemB.ID, Description: "Lights", Amount: 10}
	require.ErrorAs(t, links.Expense(ctx, bad), &rerr)
	assert.Equal(t, "budgetItemId", rerr.Field)

	missing := uuid.New()
	bad = &models.Expense{WeddingID: a.ID, VendorID: &missing, Description: "Lights", Amount: 10}
	require.ErrorAs(t, links.Expense(ctx, bad), &rerr)
	assert.Equal(t, "vendorId", rerr.Field)
}

func TestLinkValidatorItemInCategory(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	links := NewLinkValidator(store)
	ctx := context.Background()

	w := testutil.SeedWedding(t, ctx, db, "p1")
	venue := &models.BudgetCategory{WeddingID: w.ID, Name: "Venue"}
	decor := &models.BudgetCategory{WeddingID: w.ID, Name: "Decor"}
	require.NoError(t, store.Categories.Create(ctx, venue))
	require.NoError(t, store.Categories.Create(ctx, decor))
	mandap := &models.BudgetItem{CategoryID: venue.ID, Name: "Mandap"}
	require.NoError(t, store.BudgetItems.Create(ctx, mandap))

	assert.NoError(t, links.Expense(ctx, &models.Expense{WeddingID: w.ID, CategoryID: &venue.ID, BudgetItemID: &mandap.ID}))
	assert.NoError(t, links.Expense(ctx, &models.Expense{WeddingID: w.ID, BudgetItemID: &mandap.ID}))

	var verr *models.ValidationError
	require.ErrorAs(t, links.Expense(ctx, &models.Expense{WeddingID: w.ID, CategoryID: &decor.ID, BudgetItemID: &mandap.ID}), &verr)
	assert.Equal(t, "budgetItemId", verr.Field)

	assert.NoError(t, links.ItemInCategory(ctx, &decor.ID, nil))
	assert.NoError(t, links.ItemInCategory(ctx, nil, &mandap.ID))
	require.ErrorAs(t, links.ItemInCategory(ctx, &decor.ID, &mandap.ID), &verr)
}

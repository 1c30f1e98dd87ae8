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

func TestAttachGroupsInLoadOrder(t *testing.T) {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	type child struct {
		parent uuid.UUID
		name   string
	}
	calls := 0
	load := func(_ context.Context, ids []uuid.UUID) ([]child, error) {
		calls++
		assert.Len(t, ids, 3)
		return []child{{p1, "a"}, {p2, "b"}, {p1, "c"}, {uuid.New(), "stray"}}, nil
	}
	grouped, err := Attach(context.Background(), []uuid.UUID{p1, p2, p3}, load, func(c child) uuid.UUID { return c.parent })
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []child{{p1, "a"}, {p1, "c"}}, grouped[p1])
	assert.Len(t, grouped[p2], 1)
	assert.NotNil(t, grouped[p3])
	assert.Empty(t, grouped[p3])
	assert.Len(t, grouped, 3)
}

func TestComposePerformancesResolvesGuestNames(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	composer := NewComposer(store)
	ctx := context.Background()

	w := testutil.SeedWedding(t, ctx, db, "p1")
	other := testutil.SeedWedding(t, ctx, db, "p2")
	ravi := testutil.SeedGuest(t, ctx, db, w.ID, "Ravi", "Kumar")
	outsider := testutil.SeedGuest(t, ctx, db, other.ID, "Out", "Sider")

	opening := testutil.SeedPerformance(t, ctx, db, w.ID, "Opening")
	finale := testutil.SeedPerformance(t, ctx, db, w.ID, "Finale")
	require.NoError(t, store.Participants.CreateMany(ctx, []*models.DanceParticipant{
		{PerformanceID: opening.ID, GuestID: &ravi.ID, Role: "lead"},
		{PerformanceID: opening.ID, Name: "Cousin Meera"},
		{PerformanceID: opening.ID, GuestID: &outsider.ID, Name: "Walk-in"},
	}))

	perfs, err := store.Dances.ListByParent(ctx, w.ID, repository.Filter{})
	require.NoError(t, err)

	count := testutil.CountQueries(t, db)
	views, err := composer.Performances(ctx, w.ID, perfs)
	require.NoError(t, err)
	assert.Equal(t, 2, count())

	require.Len(t, views, 2)
	byTitle := map[string]PerformanceView{}
	for _, v := range views {
		byTitle[v.Title] = v
	}
	parts := byTitle["Opening"].Participants
	require.Len(t, parts, 3)
	assert.Equal(t, "Ravi Kumar", parts[0].DisplayName)
	require.NotNil(t, parts[0].Guest)
	assert.Equal(t, ravi.ID, parts[0].Guest.ID)
	assert.Equal(t, "Cousin Meera", parts[1].DisplayName)
	assert.Nil(t, parts[1].Guest)
	assert.Equal(t, "Walk-in", parts[2].DisplayName)
	assert.Nil(t, parts[2].Guest)

	assert.NotNil(t, byTitle[finale.Title].Participants)
	assert.Empty(t, byTitle[finale.Title].Participants)
}

func TestComposeTasksProgressAndDependencies(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	composer := NewComposer(store)
	ctx := context.Background()

	w := testutil.SeedWedding(t, ctx, db, "p1")
	cake := testutil.SeedTask(t, ctx, db, w.ID, "Order cake")
	flavour := testutil.SeedTask(t, ctx, db, w.ID, "Pick flavour")
	require.NoError(t, store.Checklist.CreateMany(ctx, []*models.ChecklistItem{
		{TaskID: cake.ID, Title: "Call baker", Order: 2, Completed: true},
		{TaskID: cake.ID, Title: "Shortlist", Order: 1, Completed: true},
		{TaskID: cake.ID, Title: "Tasting", Order: 3, Completed: true},
		{TaskID: cake.ID, Title: "Pay", Order: 4},
	}))
	require.NoError(t, store.Dependencies.Create(ctx, &models.TaskDependency{TaskID: cake.ID, DependsOnTaskID: flavour.ID}))

	tasks, err := store.Tasks.ListByParent(ctx, w.ID, repository.Filter{})
	require.NoError(t, err)

	count := testutil.CountQueries(t, db)
	views, err := composer.Tasks(ctx, w.ID, tasks)
	require.NoError(t, err)
	assert.Equal(t, 3, count())

	var cakeView TaskView
	for _, v := range views {
		if v.ID == cake.ID {
			cakeView = v
		}
	}
	assert.Equal(t, 75.0, cakeView.Progress)
	require.Len(t, cakeView.Checklist, 4)
	assert.Equal(t, "Shortlist", cakeView.Checklist[0].Title)
	assert.Equal(t, "Pay", cakeView.Checklist[3].Title)
	require.Len(t, cakeView.Dependencies, 1)
	assert.Equal(t, "Pick flavour", cakeView.Dependencies[0].DependsOnTitle)

	require.NoError(t, store.Tasks.Delete(ctx, w.ID, flavour.ID))
	views, err = composer.Tasks(ctx, w.ID, []models.Task{*cake})
	require.NoError(t, err)
	assert.Empty(t, views[0].Dependencies)
}

func TestComposeMenusSuggestsQuantities(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	composer := NewComposer(store)
	ctx := context.Background()

	w := testutil.SeedWedding(t, ctx, db, "p1")
	menu := &models.Menu{WeddingID: w.ID, Name: "Reception dinner"}
	require.NoError(t, store.Menus.Create(ctx, menu))
	require.NoError(t, store.MenuItems.CreateMany(ctx, []*models.MenuItem{
		{MenuID: menu.ID, Name: "Biryani", ServingSize: "per 2"},
		{MenuID: menu.ID, Name: "Gulab jamun", ServingSize: "2 pieces per 1", Quantity: testutil.PtrInt(150)},
	}))

	views, err := composer.Menus(ctx, []models.Menu{*menu}, 100)
	require.NoError(t, err)
	require.Len(t, views[0].Items, 2)
	assert.Equal(t, 100, views[0].GuestCount)
	assert.Equal(t, 50, views[0].Items[0].SuggestedQuantity)
	assert.Equal(t, 50, views[0].Items[0].EffectiveQuantity)
	assert.Equal(t, 200, views[0].Items[1].SuggestedQuantity)
	assert.Equal(t, 150, views[0].Items[1].EffectiveQuantity)
}

func TestComposeGuestsVendorsCategories(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	composer := NewComposer(store)
	ctx := context.Background()

	w := testutil.SeedWedding(t, ctx, db, "p1")
	g := testutil.SeedGuest(t, ctx, db, w.ID, "Asha", "Rao")
	arrival := time.Date(2026, 12, 9, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Travel.Create(ctx, &models.GuestTravelDetail{WeddingID: w.ID, GuestID: g.ID, ArrivalAt: &arrival, Mode: "flight"}))

	guests, err := composer.Guests(ctx, []models.Guest{*g})
	require.NoError(t, err)
	require.Len(t, guests[0].Travel, 1)
	assert.Equal(t, "flight", guests[0].Travel[0].Mode)

	v := &models.Vendor{WeddingID: w.ID, Name: "Lens & Light", Category: "photography"}
	require.NoError(t, store.Vendors.Create(ctx, v))
	require.NoError(t, store.Contracts.CreateMany(ctx, []*models.VendorContract{
		{VendorID: v.ID, Tranche: models.TrancheDeposit, Amount: 20000, Paid: true},
		{VendorID: v.ID, Tranche: models.TrancheFinal, Amount: 30000},
	}))
	vendors, err := composer.Vendors(ctx, []models.Vendor{*v})
	require.NoError(t, err)
	assert.Equal(t, 50000.0, vendors[0].ContractedAmount)
	assert.Equal(t, 20000.0, vendors[0].PaidAmount)
	assert.Equal(t, 30000.0, vendors[0].OutstandingAmount)

	cat := &models.BudgetCategory{WeddingID: w.ID, Name: "Photography", AllocatedAmount: 0}
	require.NoError(t, store.Categories.Create(ctx, cat))
	require.NoError(t, store.Expenses.Create(ctx, &models.Expense{WeddingID: w.ID, CategoryID: &cat.ID, Description: "Deposit", Amount: 20000}))
	cats, err := composer.Categories(ctx, []models.BudgetCategory{*cat})
	require.NoError(t, err)
	assert.Equal(t, 20000.0, cats[0].Spent)
	assert.Equal(t, 0.0, cats[0].SpentPercentage)
	assert.Equal(t, -20000.0, cats[0].Remaining)
	assert.NotNil(t, cats[0].Items)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner-backend/models"
	"weddingplanner-backend/reports"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/testutil"
)

func TestDashboardAggregates(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	loader := NewLoader(store)
	ctx := context.Background()
	now := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	loader.now = func() time.Time { return now }

	start := time.Date(2026, 11, 11, 0, 0, 0, 0, time.UTC)
	w := &models.Wedding{OwnerID: "p1", Name: "A & B", StartDate: &start, Currency: "INR"}
	require.NoError(t, store.Weddings.Create(ctx, w))

	testutil.SeedEvent(t, ctx, db, w.ID, "Roka", now.AddDate(0, 0, -30))
	testutil.SeedEvent(t, ctx, db, w.ID, "Sangeet", start.AddDate(0, 0, -1))
	require.NoError(t, store.Guests.CreateMany(ctx, []*models.Guest{
		{WeddingID: w.ID, FirstName: "A", RSVPStatus: models.RSVPConfirmed, PlusOne: true},
		{WeddingID: w.ID, FirstName: "B"},
		{WeddingID: w.ID, FirstName: "C", RSVPStatus: models.RSVPConfirmed},
	}))
	cat := &models.BudgetCategory{WeddingID: w.ID, Name: "Venue", AllocatedAmount: 100000}
	require.NoError(t, store.Categories.Create(ctx, cat))
	require.NoError(t, store.Expenses.Create(ctx, &models.Expense{WeddingID: w.ID, CategoryID: &cat.ID, Description: "Advance", Amount: 25000}))
	overdue := now.AddDate(0, 0, -2)
	require.NoError(t, store.Tasks.Create(ctx, &models.Task{WeddingID: w.ID, Title: "Send invites", DueDate: &overdue}))
	require.NoError(t, store.Vendors.Create(ctx, &models.Vendor{WeddingID: w.ID, Name: "DJ", Category: "music", Status: models.VendorBooked}))

	d, err := loader.Dashboard(ctx, w)
	require.NoError(t, err)

	require.NotNil(t, d.DaysUntilWedding)
	assert.Equal(t, 10, *d.DaysUntilWedding)
	assert.Equal(t, 3, d.RSVP.ConfirmedIndividuals)
	assert.Equal(t, 2, d.RSVP.ConfirmedEntries)
	assert.Equal(t, 25.0, d.Budget.SpentPercentage)
	assert.Equal(t, "₹25,000.00", d.Budget.Formatted["totalSpent"])
	assert.Equal(t, 1, d.Tasks.Overdue)
	require.Len(t, d.OverdueTasks, 1)
	require.Len(t, d.UpcomingEvents, 1)
	assert.Equal(t, "Sangeet", d.UpcomingEvents[0].Name)
	assert.Equal(t, 1, d.Vendors[models.VendorBooked])
	assert.Equal(t, 0, d.Vendors[models.VendorPaid])
	assert.Equal(t, 3, d.Counts["guests"])

	headcount, err := loader.ConfirmedHeadcount(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, headcount)

	summary, err := loader.BudgetSummary(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, 75000.0, summary.Remaining)
}

func TestDatasetLoadsOnlyRequestedSections(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	loader := NewLoader(store)
	ctx := context.Background()

	w := testutil.SeedWedding(t, ctx, db, "p1")
	task := testutil.SeedTask(t, ctx, db, w.ID, "Cake")
	require.NoError(t, store.Checklist.Create(ctx, &models.ChecklistItem{TaskID: task.ID, Title: "Taste"}))
	testutil.SeedGuest(t, ctx, db, w.ID, "Asha", "")

	sections, err := reports.SectionsFor("tasks")
	require.NoError(t, err)
	d, err := loader.Dataset(ctx, w, sections)
	require.NoError(t, err)
	assert.Len(t, d.Tasks, 1)
	assert.Len(t, d.Checklist, 1)
	assert.Empty(t, d.Guests)

	sections, err = reports.SectionsFor("all")
	require.NoError(t, err)
	d, err = loader.Dataset(ctx, w, sections)
	require.NoError(t, err)
	assert.Len(t, d.Guests, 1)

	out, err := reports.Export("all", d)
	require.NoError(t, err)
	assert.Len(t, out[reports.SectionGuests], 1)
	assert.Equal(t, "Cake", out[reports.SectionTasks][0].Get("Title"))
}

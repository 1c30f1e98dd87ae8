package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner-backend/models"
	"weddingplanner-backend/testutil"
)

func TestCreateAppliesDefaultsAndValidates(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")

	guest := &models.Guest{WeddingID: w.ID, FirstName: "Asha"}
	require.NoError(t, store.Guests.Create(ctx, guest))
	assert.NotEqual(t, uuid.Nil, guest.ID)
	assert.Equal(t, models.RSVPPending, guest.RSVPStatus)
	assert.False(t, guest.CreatedAt.IsZero())

	task := &models.Task{WeddingID: w.ID, Title: "Book priest"}
	require.NoError(t, store.Tasks.Create(ctx, task))
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.TaskNotStarted, task.Status)

	err := store.Guests.Create(ctx, &models.Guest{WeddingID: w.ID})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "firstName", verr.Field)

	err = store.Events.Create(ctx, &models.WeddingEvent{WeddingID: w.ID, Name: "Sangeet", EventType: "music"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)

	err = store.Guests.Create(ctx, &models.Guest{WeddingID: w.ID, FirstName: "X", RSVPStatus: "attending"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rsvpStatus", verr.Field)
}

func TestSoftDeleteHidesRow(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")
	keep := testutil.SeedGuest(t, ctx, db, w.ID, "Keep", "Me")
	gone := testutil.SeedGuest(t, ctx, db, w.ID, "Gone", "Soon")

	require.NoError(t, store.Guests.Delete(ctx, w.ID, gone.ID))

	list, err := store.Guests.ListByParent(ctx, w.ID, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	_, err = store.Guests.GetByID(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Guests.Delete(ctx, w.ID, gone.ID), ErrNotFound)

	// The row is still there for audit.
	var raw models.Guest
	require.NoError(t, db.Unscoped().Where("id = ?", gone.ID).First(&raw).Error)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestChecklistItemsAreHardDeleted(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")
	task := testutil.SeedTask(t, ctx, db, w.ID, "Invitations")

	item := &models.ChecklistItem{TaskID: task.ID, Title: "Print cards"}
	require.NoError(t, store.Checklist.Create(ctx, item))
	require.NoError(t, store.Checklist.Delete(ctx, task.ID, item.ID))

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.ChecklistItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPatchOnlyTouchesGivenFields(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")

	task := &models.Task{WeddingID: w.ID, Title: "Order flowers", Priority: models.PriorityHigh}
	require.NoError(t, store.Tasks.Create(ctx, task))
	before := task.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	updated, err := store.Tasks.Patch(ctx, w.ID, task.ID, map[string]any{"status": models.TaskCompleted})
	require.NoError(t, err)

	assert.Equal(t, models.TaskCompleted, updated.Status)
	assert.Equal(t, "Order flowers", updated.Title)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
	assert.True(t, updated.UpdatedAt.After(before))

	_, err = store.Tasks.Patch(ctx, uuid.New(), task.ID, map[string]any{"status": models.TaskDelayed})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByParentOrderingAndFilters(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")
	other := testutil.SeedWedding(t, ctx, db, "p2")

	day := time.Date(2026, 12, 10, 0, 0, 0, 0, time.UTC)
	testutil.SeedEvent(t, ctx, db, w.ID, "Reception", day.AddDate(0, 0, 2))
	testutil.SeedEvent(t, ctx, db, w.ID, "Haldi", day)
	testutil.SeedEvent(t, ctx, db, w.ID, "Pheras", day.AddDate(0, 0, 1))
	testutil.SeedEvent(t, ctx, db, other.ID, "Elsewhere", day)

	events, err := store.Events.ListByParent(ctx, w.ID, Filter{})
	require.NoError(t, err)
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Haldi", "Pheras", "Reception"}, names)

	g1 := testutil.SeedGuest(t, ctx, db, w.ID, "Ravi", "Kumar")
	testutil.SeedGuest(t, ctx, db, w.ID, "Meera", "Shah")
	_, err = store.Guests.Patch(ctx, w.ID, g1.ID, map[string]any{"rsvp_status": models.RSVPConfirmed})
	require.NoError(t, err)

	confirmed, err := store.Guests.ListByParent(ctx, w.ID, Filter{Equals: map[string]string{"rsvpStatus": "confirmed"}})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, g1.ID, confirmed[0].ID)

	found, err := store.Guests.ListByParent(ctx, w.ID, Filter{Search: "sHa"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Meera", found[0].FirstName)

	// Undeclared filter keys never reach SQL.
	all, err := store.Guests.ListByParent(ctx, w.ID, Filter{Equals: map[string]string{"1=1; --": "x"}})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListByParentsBatches(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")
	t1 := testutil.SeedTask(t, ctx, db, w.ID, "one")
	t2 := testutil.SeedTask(t, ctx, db, w.ID, "two")

	require.NoError(t, store.Checklist.CreateMany(ctx, []*models.ChecklistItem{
		{TaskID: t1.ID, Title: "b", Order: 2},
		{TaskID: t1.ID, Title: "a", Order: 1},
		{TaskID: t2.ID, Title: "c", Order: 1},
	}))

	done := testutil.CountQueries(t, db)
	items, err := store.Checklist.ListByParents(ctx, []uuid.UUID{t1.ID, t2.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, done())
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].Order)
	assert.Equal(t, 2, items[len(items)-1].Order)

	empty, err := store.Checklist.ListByParents(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPatchRejectsInvalidResult(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")
	g := testutil.SeedGuest(t, ctx, db, w.ID, "Ravi", "Kumar")

	_, err := store.Guests.Patch(ctx, w.ID, g.ID, map[string]any{"rsvp_status": "attending"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rsvpStatus", verr.Field)

	stored, err := store.Guests.GetScoped(ctx, w.ID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RSVPPending, stored.RSVPStatus)
}

func TestStoreTransactionRollsBack(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")

	err := store.Transaction(ctx, func(tx *Store) error {
		menu := &models.Menu{WeddingID: w.ID, Name: "Sangeet dinner"}
		if err := tx.Menus.Create(ctx, menu); err != nil {
			return err
		}
		return tx.MenuItems.CreateMany(ctx, []*models.MenuItem{
			{MenuID: menu.ID, Name: "Paneer tikka"},
			{MenuID: menu.ID},
		})
	})
	require.Error(t, err)

	menus, err := store.Menus.ListByParent(ctx, w.ID, Filter{})
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestTravelFollowsGuestDeletion(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")
	gone := testutil.SeedGuest(t, ctx, db, w.ID, "Ravi", "Kumar")
	kept := testutil.SeedGuest(t, ctx, db, w.ID, "Meera", "Shah")

	orphan := &models.GuestTravelDetail{WeddingID: w.ID, GuestID: gone.ID, Mode: "flight"}
	live := &models.GuestTravelDetail{WeddingID: w.ID, GuestID: kept.ID, Mode: "train"}
	require.NoError(t, store.Travel.CreateMany(ctx, []*models.GuestTravelDetail{orphan, live}))
	require.NoError(t, store.Guests.Delete(ctx, w.ID, gone.ID))

	rows, err := store.Travel.ListByParent(ctx, w.ID, Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, live.ID, rows[0].ID)

	_, err = store.Travel.GetScoped(ctx, w.ID, orphan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	exists, err := store.Travel.Exists(ctx, w.ID, orphan.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = store.Travel.Patch(ctx, w.ID, orphan.ID, map[string]any{"mode": "road"})
	assert.ErrorIs(t, err, ErrNotFound)

	batch, err := store.Travel.ListIn(ctx, "guest_id", []uuid.UUID{gone.ID, kept.ID})
	require.NoError(t, err)
	assert.Len(t, batch, 1)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")
	testutil.SeedGuest(t, ctx, db, w.ID, "Ravi", "Kumar")
	testutil.SeedGuest(t, ctx, db, w.ID, "Meera", "100%_Shah")

	for search, want := range map[string]int{"%": 1, "_": 1, "0%_s": 1, "a_i": 0, `\`: 0} {
		found, err := store.Guests.ListByParent(ctx, w.ID, Filter{Search: search})
		require.NoError(t, err, search)
		assert.Len(t, found, want, search)
	}
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner-backend/repository"
	"weddingplanner-backend/testutil"
)

func TestAuthorizeWedding(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	guard := NewOwnershipGuard(store)
	ctx := context.Background()

	mine := testutil.SeedWedding(t, ctx, db, "p1")
	theirs := testutil.SeedWedding(t, ctx, db, "p2")
	gone := testutil.SeedWedding(t, ctx, db, "p1")
	require.NoError(t, store.Weddings.Delete(ctx, gone.ID, gone.ID))

	w, err := guard.AuthorizeWedding(ctx, "p1", mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, w.ID)

	for name, id := range map[string]uuid.UUID{
		"foreign": theirs.ID,
		"deleted": gone.ID,
		"missing": uuid.New(),
		"nil":     uuid.Nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := guard.AuthorizeWedding(ctx, "p1", id)
			assert.ErrorIs(t, err, ErrWeddingNotAccessible)
		})
	}

	_, err = guard.AuthorizeWedding(ctx, "", mine.ID)
	assert.ErrorIs(t, err, ErrWeddingNotAccessible)

	owned, err := guard.OwnedWeddings(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, mine.ID, owned[0].ID)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/testutil"
)

type sentMessage struct {
	channel, to, body string
}

type fakeMessenger struct {
	sent []sentMessage
	fail map[string]bool
}

func (f *fakeMessenger) Send(_ context.Context, channel, to, body string) (string, error) {
	if f.fail[to] {
		return "", errors.New("carrier rejected")
	}
	f.sent = append(f.sent, sentMessage{channel, to, body})
	return "SM" + to, nil
}

func TestBroadcastLogsEveryRecipient(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")

	asha := &models.Guest{WeddingID: w.ID, FirstName: "Asha", Phone: "91 98765 43210", RSVPStatus: models.RSVPConfirmed}
	ravi := &models.Guest{WeddingID: w.ID, FirstName: "Ravi", Phone: "+919812345678", RSVPStatus: models.RSVPConfirmed}
	nophone := &models.Guest{WeddingID: w.ID, FirstName: "Dev", RSVPStatus: models.RSVPConfirmed}
	pending := &models.Guest{WeddingID: w.ID, FirstName: "Lata", Phone: "+919800000000"}
	for _, g := range []*models.Guest{asha, ravi, nophone, pending} {
		require.NoError(t, store.Guests.Create(ctx, g))
	}

	messenger := &fakeMessenger{fail: map[string]bool{"+919812345678": true}}
	b := NewBroadcaster(store, messenger, testutil.Logger(t))

	entries, err := b.Send(ctx, w.ID, BroadcastRequest{
		Channel:    models.ChannelWhatsApp,
		Body:       "Hi [GuestName], the sangeet starts at 7.",
		RSVPStatus: models.RSVPConfirmed,
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "+919876543210", messenger.sent[0].to)
	assert.Equal(t, "Hi Asha, the sangeet starts at 7.", messenger.sent[0].body)

	status := map[string]string{}
	for _, e := range entries {
		require.NotNil(t, e.EntityID)
		status[e.Body] = e.Status
	}
	assert.Equal(t, "sent", status["Hi Asha, the sangeet starts at 7."])
	assert.Equal(t, "failed", status["Hi Ravi, the sangeet starts at 7."])
	assert.Equal(t, "failed", status["Hi Dev, the sangeet starts at 7."])

	logged, err := store.Communications.ListByParent(ctx, w.ID, repository.Filter{
		Equals: map[string]string{"channel": models.ChannelWhatsApp},
	})
	require.NoError(t, err)
	assert.Len(t, logged, 3)
}

func TestBroadcastValidation(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	ctx := context.Background()
	w := testutil.SeedWedding(t, ctx, db, "p1")
	other := testutil.SeedWedding(t, ctx, db, "p2")
	foreign := testutil.SeedGuest(t, ctx, db, other.ID, "Zoya", "")

	_, err := NewBroadcaster(store, nil, testutil.Logger(t)).Send(ctx, w.ID, BroadcastRequest{Channel: models.ChannelSMS, Body: "hi"})
	assert.ErrorIs(t, err, ErrMessagingDisabled)

	b := NewBroadcaster(store, &fakeMessenger{}, testutil.Logger(t))
	var verr *models.ValidationError
	_, err = b.Send(ctx, w.ID, BroadcastRequest{Channel: models.ChannelEmail, Body: "hi"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "channel", verr.Field)

	_, err = b.Send(ctx, w.ID, BroadcastRequest{Channel: models.ChannelSMS, Body: "  "})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "body", verr.Field)

	_, err = b.Send(ctx, w.ID, BroadcastRequest{Channel: models.ChannelSMS, Body: "hi", GuestIDs: []uuid.UUID{foreign.ID}})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

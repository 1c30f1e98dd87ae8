package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"weddingplanner-backend/models"
)

func SeedWedding(tb testing.TB, ctx context.Context, tx *gorm.DB, owner string) *models.Wedding {
	tb.Helper()
	w := &models.Wedding{
		OwnerID:      owner,
		Name:         "Wedding of " + owner,
		Partner1Name: "A",
		Partner2Name: "B",
		Currency:     "INR",
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed wedding: %v", err)
	}
	return w
}

func SeedEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, name string, date time.Time) *models.WeddingEvent {
	tb.Helper()
	e := &models.WeddingEvent{WeddingID: weddingID, Name: name, EventType: "ceremony", Date: date}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed event: %v", err)
	}
	return e
}

func SeedGuest(tb testing.TB, ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, first, last string) *models.Guest {
	tb.Helper()
	g := &models.Guest{WeddingID: weddingID, FirstName: first, LastName: last, RSVPStatus: models.RSVPPending}
	g.ApplyDefaults()
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed guest: %v", err)
	}
	return g
}

func SeedTask(tb testing.TB, ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, title string) *models.Task {
	tb.Helper()
	t := &models.Task{WeddingID: weddingID, Title: title}
	t.ApplyDefaults()
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed task: %v", err)
	}
	return t
}

func SeedPerformance(tb testing.TB, ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, title string) *models.DancePerformance {
	tb.Helper()
	p := &models.DancePerformance{WeddingID: weddingID, Title: title}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed performance: %v", err)
	}
	return p
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }

func PtrInt(v int) *int { return &v }

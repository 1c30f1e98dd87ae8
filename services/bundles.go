package services

import (
	"context"

	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
)

// BundleWriter creates a parent together with its children in a single
// transaction, so a failed child never leaves an orphaned parent.
type BundleWriter struct {
	store *repository.Store
	links *LinkValidator
}

func NewBundleWriter(store *repository.Store, links *LinkValidator) *BundleWriter {
	return &BundleWriter{store: store, links: links}
}

func (b *BundleWriter) Performance(ctx context.Context, perf *models.DancePerformance, participants []*models.DanceParticipant) error {
	if err := b.links.Event(ctx, perf.WeddingID, perf.EventID); err != nil {
		return err
	}
	for _, p := range participants {
		if err := b.links.Guest(ctx, perf.WeddingID, p.GuestID); err != nil {
			return err
		}
	}
	return b.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Dances.Create(ctx, perf); err != nil {
			return err
		}
		for _, p := range participants {
			p.PerformanceID = perf.ID
		}
		return tx.Participants.CreateMany(ctx, participants)
	})
}

func (b *BundleWriter) Menu(ctx context.Context, menu *models.Menu, items []*models.MenuItem) error {
	if err := b.links.Event(ctx, menu.WeddingID, menu.EventID); err != nil {
		return err
	}
	return b.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Menus.Create(ctx, menu); err != nil {
			return err
		}
		for _, it := range items {
			it.MenuID = menu.ID
		}
		return tx.MenuItems.CreateMany(ctx, items)
	})
}

func (b *BundleWriter) Vendor(ctx context.Context, vendor *models.Vendor, contracts []*models.VendorContract) error {
	return b.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Vendors.Create(ctx, vendor); err != nil {
			return err
		}
		for _, c := range contracts {
			c.VendorID = vendor.ID
		}
		return tx.Contracts.CreateMany(ctx, contracts)
	})
}

func (b *BundleWriter) Category(ctx context.Context, category *models.BudgetCategory, items []*models.BudgetItem) error {
	for _, it := range items {
		if err := b.links.Vendor(ctx, category.WeddingID, it.VendorID); err != nil {
			return err
		}
	}
	return b.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Categories.Create(ctx, category); err != nil {
			return err
		}
		for _, it := range items {
			it.CategoryID = category.ID
		}
		return tx.BudgetItems.CreateMany(ctx, items)
	})
}

// services/guard.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/utils"
)

// ErrWeddingNotAccessible covers a missing, deleted or foreign wedding alike.
var ErrWeddingNotAccessible = errors.New("wedding not found")

// OwnershipGuard is the single check every wedding-scoped request passes
// before it touches a child row.
type OwnershipGuard struct {
	weddings *repository.Repository[models.Wedding]
}

func NewOwnershipGuard(store *repository.Store) *OwnershipGuard {
	return &OwnershipGuard{weddings: store.Weddings}
}

func (g *OwnershipGuard) AuthorizeWedding(ctx context.Context, principal utils.PrincipalID, weddingID uuid.UUID) (*models.Wedding, error) {
	if principal == "" || weddingID == uuid.Nil {
		return nil, ErrWeddingNotAccessible
	}
	w, err := g.weddings.GetByID(ctx, weddingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrWeddingNotAccessible
	}
	if err != nil {
		return nil, err
	}
	if w.OwnerID != string(principal) {
		return nil, ErrWeddingNotAccessible
	}
	return w, nil
}

// OwnedWeddings lists the principal's live weddings, oldest first.
func (g *OwnershipGuard) OwnedWeddings(ctx context.Context, principal utils.PrincipalID) ([]models.Wedding, error) {
	return g.weddings.ListBy(ctx, "owner_id", string(principal))
}

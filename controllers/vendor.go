package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weddingplanner-backend/models"
)

type ContractInput struct {
	Tranche string     `json:"tranche"`
	Amount  float64    `json:"amount"`
	DueDate *time.Time `json:"dueDate"`
	Paid    bool       `json:"paid"`
	PaidAt  *time.Time `json:"paidAt"`
	Notes   string     `json:"notes"`
}

func (in ContractInput) model(vendorID uuid.UUID) *models.VendorContract {
	ct := &models.VendorContract{
		VendorID: vendorID,
		Tranche:  in.Tranche,
		Amount:   in.Amount,
		DueDate:  in.DueDate,
		Paid:     in.Paid,
		PaidAt:   in.PaidAt,
		Notes:    in.Notes,
	}
	if ct.Paid && ct.PaidAt == nil {
		now := time.Now().UTC()
		ct.PaidAt = &now
	}
	return ct
}

type UpdateContractInput struct {
	Tranche *string             `json:"tranche"`
	Amount  *float64            `json:"amount"`
	DueDate Nullable[time.Time] `json:"dueDate"`
	Paid    *bool               `json:"paid"`
	PaidAt  *time.Time          `json:"paidAt"`
	Notes   *string             `json:"notes"`
}

type CreateVendorInput struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	ContactPerson string          `json:"contactPerson"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	Website       string          `json:"website"`
	Status        string          `json:"status"`
	QuotedAmount  float64         `json:"quotedAmount"`
	Rating        *int            `json:"rating"`
	Notes         string          `json:"notes"`
	Contracts     []ContractInput `json:"contracts"`
}

type UpdateVendorInput struct {
	Name          *string       `json:"name"`
	Category      *string       `json:"category"`
	ContactPerson *string       `json:"contactPerson"`
	Phone         *string       `json:"phone"`
	Email         *string       `json:"email"`
	Website       *string       `json:"website"`
	Status        *string       `json:"status"`
	QuotedAmount  *float64      `json:"quotedAmount"`
	Rating        Nullable[int] `json:"rating"`
	Notes         *string       `json:"notes"`
}

func (h *Handler) Vendors() *crud[models.Vendor, CreateVendorInput, UpdateVendorInput] {
	return &crud[models.Vendor, CreateVendorInput, UpdateVendorInput]{
		h: h, label: "vendor", repo: h.store.Vendors,
		build: func(_ context.Context, w *models.Wedding, _ uuid.UUID, in *CreateVendorInput) (*models.Vendor, error) {
			if err := checkPhone(in.Phone); err != nil {
				return nil, err
			}
			return &models.Vendor{
				WeddingID:     w.ID,
				Name:          in.Name,
				Category:      in.Category,
				ContactPerson: in.ContactPerson,
				Phone:         in.Phone,
				Email:         in.Email,
				Website:       in.Website,
				Status:        in.Status,
				QuotedAmount:  in.QuotedAmount,
				Rating:        in.Rating,
				Notes:         in.Notes,
			}, nil
		},
		save: func(ctx context.Context, v *models.Vendor, in *CreateVendorInput) error {
			contracts := make([]*models.VendorContract, len(in.Contracts))
			for i, ct := range in.Contracts {
				contracts[i] = ct.model(uuid.Nil)
			}
			return h.svc.Bundles.Vendor(ctx, v, contracts)
		},
		changes: func(_ context.Context, _ *models.Wedding, _ *models.Vendor, in *UpdateVendorInput) (map[string]any, error) {
			fields := map[string]any{}
			if in.Phone != nil {
				if err := checkPhone(*in.Phone); err != nil {
					return nil, err
				}
				fields["phone"] = *in.Phone
			}
			setIf(fields, "name", in.Name)
			setIf(fields, "category", in.Category)
			setIf(fields, "contact_person", in.ContactPerson)
			setIf(fields, "email", in.Email)
			setIf(fields, "website", in.Website)
			setIf(fields, "status", in.Status)
			setIf(fields, "quoted_amount", in.QuotedAmount)
			setNullable(fields, "rating", in.Rating)
			setIf(fields, "notes", in.Notes)
			return fields, nil
		},
		present: func(c *gin.Context, _ *models.Wedding, rows []models.Vendor) ([]any, error) {
			return views(h.svc.Composer.Vendors(c.Request.Context(), rows))
		},
	}
}

// Contracts serves /vendors/:id/contracts. Tranches are hard-deleted.
func (h *Handler) Contracts() *crud[models.VendorContract, ContractInput, UpdateContractInput] {
	return &crud[models.VendorContract, ContractInput, UpdateContractInput]{
		h: h, label: "contract", repo: h.store.Contracts,
		parent: parentIn(h, h.store.Vendors, "vendor"),
		build: func(_ context.Context, _ *models.Wedding, vendorID uuid.UUID, in *ContractInput) (*models.VendorContract, error) {
			return in.model(vendorID), nil
		},
		changes: func(_ context.Context, _ *models.Wedding, _ *models.VendorContract, in *UpdateContractInput) (map[string]any, error) {
			fields := map[string]any{}
			setIf(fields, "tranche", in.Tranche)
			setIf(fields, "amount", in.Amount)
			setNullable(fields, "due_date", in.DueDate)
			setIf(fields, "notes", in.Notes)
			if in.Paid != nil {
				fields["paid"] = *in.Paid
				switch {
				case in.PaidAt != nil:
					fields["paid_at"] = *in.PaidAt
				case *in.Paid:
					fields["paid_at"] = time.Now().UTC()
				default:
					fields["paid_at"] = nil
				}
			}
			return fields, nil
		},
	}
}

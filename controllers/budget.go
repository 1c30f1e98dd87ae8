package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weddingplanner-backend/models"
	"weddingplanner-backend/utils"
)

type BudgetItemInput struct {
	VendorID        *uuid.UUID `json:"vendorId"`
	Name            string     `json:"name"`
	EstimatedAmount float64    `json:"estimatedAmount"`
	ActualAmount    float64    `json:"actualAmount"`
	Notes           string     `json:"notes"`
}

type UpdateBudgetItemInput struct {
	VendorID        Nullable[uuid.UUID] `json:"vendorId"`
	Name            *string             `json:"name"`
	EstimatedAmount *float64            `json:"estimatedAmount"`
	ActualAmount    *float64            `json:"actualAmount"`
	Notes           *string             `json:"notes"`
}

type CreateCategoryInput struct {
	Name            string            `json:"name"`
	AllocatedAmount float64           `json:"allocatedAmount"`
	Notes           string            `json:"notes"`
	Items           []BudgetItemInput `json:"items"`
}

type UpdateCategoryInput struct {
	Name            *string  `json:"name"`
	AllocatedAmount *float64 `json:"allocatedAmount"`
	Notes           *string  `json:"notes"`
}

func (in BudgetItemInput) model(categoryID uuid.UUID) *models.BudgetItem {
	return &models.BudgetItem{
		CategoryID:      categoryID,
		VendorID:        in.VendorID,
		Name:            in.Name,
		EstimatedAmount: in.EstimatedAmount,
		ActualAmount:    in.ActualAmount,
		Notes:           in.Notes,
	}
}

func (h *Handler) BudgetCategories() *crud[models.BudgetCategory, CreateCategoryInput, UpdateCategoryInput] {
	return &crud[models.BudgetCategory, CreateCategoryInput, UpdateCategoryInput]{
		h: h, label: "budget category", repo: h.store.Categories,
		build: func(_ context.Context, w *models.Wedding, _ uuid.UUID, in *CreateCategoryInput) (*models.BudgetCategory, error) {
			return &models.BudgetCategory{WeddingID: w.ID, Name: in.Name, AllocatedAmount: in.AllocatedAmount, Notes: in.Notes}, nil
		},
		save: func(ctx context.Context, cat *models.BudgetCategory, in *CreateCategoryInput) error {
			items := make([]*models.BudgetItem, len(in.Items))
			for i, it := range in.Items {
				items[i] = it.model(uuid.Nil)
			}
			return h.svc.Bundles.Category(ctx, cat, items)
		},
		changes: func(_ context.Context, _ *models.Wedding, _ *models.BudgetCategory, in *UpdateCategoryInput) (map[string]any, error) {
			fields := map[string]any{}
			setIf(fields, "name", in.Name)
			setIf(fields, "allocated_amount", in.AllocatedAmount)
			setIf(fields, "notes", in.Notes)
			return fields, nil
		},
		present: func(c *gin.Context, _ *models.Wedding, rows []models.BudgetCategory) ([]any, error) {
			return views(h.svc.Composer.Categories(c.Request.Context(), rows))
		},
	}
}

// BudgetItems serves /budget/categories/:id/items.
func (h *Handler) BudgetItems() *crud[models.BudgetItem, BudgetItemInput, UpdateBudgetItemInput] {
	return &crud[models.BudgetItem, BudgetItemInput, UpdateBudgetItemInput]{
		h: h, label: "budget item", repo: h.store.BudgetItems,
		parent: parentIn(h, h.store.Categories, "budget category"),
		build: func(ctx context.Context, w *models.Wedding, categoryID uuid.UUID, in *BudgetItemInput) (*models.BudgetItem, error) {
			if err := h.svc.Links.Vendor(ctx, w.ID, in.VendorID); err != nil {
				return nil, err
			}
			return in.model(categoryID), nil
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.BudgetItem, in *UpdateBudgetItemInput) (map[string]any, error) {
			fields := map[string]any{}
			if in.VendorID.Set {
				if err := h.svc.Links.Vendor(ctx, w.ID, in.VendorID.Value); err != nil {
					return nil, err
				}
				fields["vendor_id"] = in.VendorID.column()
			}
			setIf(fields, "name", in.Name)
			setIf(fields, "estimated_amount", in.EstimatedAmount)
			setIf(fields, "actual_amount", in.ActualAmount)
			setIf(fields, "notes", in.Notes)
			return fields, nil
		},
	}
}

type CreateExpenseInput struct {
	CategoryID    *uuid.UUID `json:"categoryId"`
	BudgetItemID  *uuid.UUID `json:"budgetItemId"`
	VendorID      *uuid.UUID `json:"vendorId"`
	Description   string     `json:"description"`
	Amount        float64    `json:"amount"`
	Date          *time.Time `json:"date"`
	PaidBy        string     `json:"paidBy"`
	PaymentMethod string     `json:"paymentMethod"`
}

type UpdateExpenseInput struct {
	CategoryID    Nullable[uuid.UUID] `json:"categoryId"`
	BudgetItemID  Nullable[uuid.UUID] `json:"budgetItemId"`
	VendorID      Nullable[uuid.UUID] `json:"vendorId"`
	Description   *string             `json:"description"`
	Amount        *float64            `json:"amount"`
	Date          Nullable[time.Time] `json:"date"`
	PaidBy        *string             `json:"paidBy"`
	PaymentMethod *string             `json:"paymentMethod"`
}

func (h *Handler) Expenses() *crud[models.Expense, CreateExpenseInput, UpdateExpenseInput] {
	return &crud[models.Expense, CreateExpenseInput, UpdateExpenseInput]{
		h: h, label: "expense", repo: h.store.Expenses,
		build: func(ctx context.Context, w *models.Wedding, _ uuid.UUID, in *CreateExpenseInput) (*models.Expense, error) {
			e := &models.Expense{
				WeddingID:     w.ID,
				CategoryID:    in.CategoryID,
				BudgetItemID:  in.BudgetItemID,
				VendorID:      in.VendorID,
				Description:   in.Description,
				Amount:        in.Amount,
				Date:          in.Date,
				PaidBy:        in.PaidBy,
				PaymentMethod: in.PaymentMethod,
			}
			if err := h.svc.Links.Expense(ctx, e); err != nil {
				return nil, err
			}
			return e, nil
		},
		changes: func(ctx context.Context, w *models.Wedding, current *models.Expense, in *UpdateExpenseInput) (map[string]any, error) {
			refs := &models.Expense{
				WeddingID:    w.ID,
				CategoryID:   in.CategoryID.Value,
				BudgetItemID: in.BudgetItemID.Value,
				VendorID:     in.VendorID.Value,
			}
			if err := h.svc.Links.Expense(ctx, refs); err != nil {
				return nil, err
			}
			if in.CategoryID.Set || in.BudgetItemID.Set {
				category, item := in.CategoryID.or(current.CategoryID), in.BudgetItemID.or(current.BudgetItemID)
				if err := h.svc.Links.ItemInCategory(ctx, category, item); err != nil {
					return nil, err
				}
			}
			fields := map[string]any{}
			setNullable(fields, "category_id", in.CategoryID)
			setNullable(fields, "budget_item_id", in.BudgetItemID)
			setNullable(fields, "vendor_id", in.VendorID)
			setIf(fields, "description", in.Description)
			setIf(fields, "amount", in.Amount)
			setNullable(fields, "date", in.Date)
			setIf(fields, "paid_by", in.PaidBy)
			setIf(fields, "payment_method", in.PaymentMethod)
			return fields, nil
		},
	}
}

// GetBudgetSummary returns totals, per-category spend and display strings.
func (h *Handler) GetBudgetSummary(c *gin.Context) {
	w, ok := h.wedding(c)
	if !ok {
		return
	}
	summary, err := h.svc.Loader.BudgetSummary(c.Request.Context(), w)
	if err != nil {
		h.fail(c, err, "budget")
		return
	}
	utils.RespondOK(c, summary)
}

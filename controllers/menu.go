package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weddingplanner-backend/models"
	"weddingplanner-backend/utils"
)

type MenuItemInput struct {
	Name        string `json:"name"`
	Course      string `json:"course"`
	Vegetarian  bool   `json:"vegetarian"`
	Vegan       bool   `json:"vegan"`
	Jain        bool   `json:"jain"`
	GlutenFree  bool   `json:"glutenFree"`
	ServingSize string `json:"servingSize"`
	Quantity    *int   `json:"quantity"`
	Notes       string `json:"notes"`
}

type UpdateMenuItemInput struct {
	Name        *string       `json:"name"`
	Course      *string       `json:"course"`
	Vegetarian  *bool         `json:"vegetarian"`
	Vegan       *bool         `json:"vegan"`
	Jain        *bool         `json:"jain"`
	GlutenFree  *bool         `json:"glutenFree"`
	ServingSize *string       `json:"servingSize"`
	Quantity    Nullable[int] `json:"quantity"`
	Notes       *string       `json:"notes"`
}

func (in MenuItemInput) model(menuID uuid.UUID) *models.MenuItem {
	return &models.MenuItem{
		MenuID:      menuID,
		Name:        in.Name,
		Course:      in.Course,
		Vegetarian:  in.Vegetarian,
		Vegan:       in.Vegan,
		Jain:        in.Jain,
		GlutenFree:  in.GlutenFree,
		ServingSize: in.ServingSize,
		Quantity:    in.Quantity,
		Notes:       in.Notes,
	}
}

type CreateMenuInput struct {
	EventID  *uuid.UUID      `json:"eventId"`
	Name     string          `json:"name"`
	MealType string          `json:"mealType"`
	Caterer  string          `json:"caterer"`
	Notes    string          `json:"notes"`
	Items    []MenuItemInput `json:"items"`
}

type UpdateMenuInput struct {
	EventID  Nullable[uuid.UUID] `json:"eventId"`
	Name     *string             `json:"name"`
	MealType *string             `json:"mealType"`
	Caterer  *string             `json:"caterer"`
	Notes    *string             `json:"notes"`
}

// guestCount is the ?guestCount override when given, otherwise the wedding's
// confirmed headcount.
func (h *Handler) guestCount(c *gin.Context, weddingID uuid.UUID) (int, error) {
	if raw := c.Query("guestCount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, &models.ValidationError{Field: "guestCount", Message: "must be a non-negative integer"}
		}
		return n, nil
	}
	return h.svc.Loader.ConfirmedHeadcount(c.Request.Context(), weddingID)
}

func (h *Handler) Menus() *crud[models.Menu, CreateMenuInput, UpdateMenuInput] {
	return &crud[models.Menu, CreateMenuInput, UpdateMenuInput]{
		h: h, label: "menu", repo: h.store.Menus,
		build: func(_ context.Context, w *models.Wedding, _ uuid.UUID, in *CreateMenuInput) (*models.Menu, error) {
			return &models.Menu{
				WeddingID: w.ID,
				EventID:   in.EventID,
				Name:      in.Name,
				MealType:  in.MealType,
				Caterer:   in.Caterer,
				Notes:     in.Notes,
			}, nil
		},
		save: func(ctx context.Context, m *models.Menu, in *CreateMenuInput) error {
			items := make([]*models.MenuItem, len(in.Items))
			for i, it := range in.Items {
				items[i] = it.model(uuid.Nil)
			}
			return h.svc.Bundles.Menu(ctx, m, items)
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.Menu, in *UpdateMenuInput) (map[string]any, error) {
			fields := map[string]any{}
			if in.EventID.Set {
				if err := h.svc.Links.Event(ctx, w.ID, in.EventID.Value); err != nil {
					return nil, err
				}
				fields["event_id"] = in.EventID.column()
			}
			setIf(fields, "name", in.Name)
			setIf(fields, "meal_type", in.MealType)
			setIf(fields, "caterer", in.Caterer)
			setIf(fields, "notes", in.Notes)
			return fields, nil
		},
		present: func(c *gin.Context, w *models.Wedding, rows []models.Menu) ([]any, error) {
			n, err := h.guestCount(c, w.ID)
			if err != nil {
				return nil, err
			}
			return views(h.svc.Composer.Menus(c.Request.Context(), rows, n))
		},
	}
}

// MenuItems serves /menus/:id/items.
func (h *Handler) MenuItems() *crud[models.MenuItem, MenuItemInput, UpdateMenuItemInput] {
	return &crud[models.MenuItem, MenuItemInput, UpdateMenuItemInput]{
		h: h, label: "menu item", repo: h.store.MenuItems,
		parent: parentIn(h, h.store.Menus, "menu"),
		build: func(_ context.Context, _ *models.Wedding, menuID uuid.UUID, in *MenuItemInput) (*models.MenuItem, error) {
			return in.model(menuID), nil
		},
		changes: func(_ context.Context, _ *models.Wedding, _ *models.MenuItem, in *UpdateMenuItemInput) (map[string]any, error) {
			fields := map[string]any{}
			setIf(fields, "name", in.Name)
			setIf(fields, "course", in.Course)
			setIf(fields, "vegetarian", in.Vegetarian)
			setIf(fields, "vegan", in.Vegan)
			setIf(fields, "jain", in.Jain)
			setIf(fields, "gluten_free", in.GlutenFree)
			setIf(fields, "serving_size", in.ServingSize)
			setNullable(fields, "quantity", in.Quantity)
			setIf(fields, "notes", in.Notes)
			return fields, nil
		},
	}
}

// ApproveMenu marks the menu approved by the calling principal.
func (h *Handler) ApproveMenu(c *gin.Context) {
	w, ok := h.wedding(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "menu")
	if !ok {
		return
	}
	principal, _ := utils.PrincipalFrom(c)
	ctx := c.Request.Context()
	menu, err := h.store.Menus.Patch(ctx, w.ID, id, map[string]any{
		"approved":    true,
		"approved_by": string(principal),
		"approved_at": time.Now().UTC(),
	})
	if err != nil {
		h.fail(c, err, "menu")
		return
	}
	n, err := h.guestCount(c, w.ID)
	if err != nil {
		h.fail(c, err, "menu")
		return
	}
	vs, err := h.svc.Composer.Menus(ctx, []models.Menu{*menu}, n)
	if err != nil {
		h.fail(c, err, "menu")
		return
	}
	utils.RespondOK(c, vs[0])
}

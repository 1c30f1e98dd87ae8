package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"weddingplanner-backend/models"
	"weddingplanner-backend/utils"
)

type CreateWeddingInput struct {
	Name         string     `json:"name"`
	Partner1Name string     `json:"partner1Name"`
	Partner2Name string     `json:"partner2Name"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Location     string     `json:"location"`
	BudgetTotal  float64    `json:"budgetTotal"`
	Currency     string     `json:"currency"`
}

type UpdateWeddingInput struct {
	Name         *string             `json:"name"`
	Partner1Name *string             `json:"partner1Name"`
	Partner2Name *string             `json:"partner2Name"`
	StartDate    Nullable[time.Time] `json:"startDate"`
	EndDate      Nullable[time.Time] `json:"endDate"`
	Location     *string             `json:"location"`
	BudgetTotal  *float64            `json:"budgetTotal"`
	Currency     *string             `json:"currency"`
}

// GetWeddings lists the caller's weddings.
func (h *Handler) GetWeddings(c *gin.Context) {
	principal, _ := utils.PrincipalFrom(c)
	weddings, err := h.svc.Guard.OwnedWeddings(c.Request.Context(), principal)
	if err != nil {
		h.fail(c, err, "wedding")
		return
	}
	utils.RespondOK(c, weddings)
}

func (h *Handler) CreateWedding(c *gin.Context) {
	principal, _ := utils.PrincipalFrom(c)
	var input CreateWeddingInput
	if !bindJSON(c, &input) {
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = h.defaultCurrency
	}
	w := &models.Wedding{
		OwnerID:      string(principal),
		Name:         input.Name,
		Partner1Name: input.Partner1Name,
		Partner2Name: input.Partner2Name,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Location:     input.Location,
		BudgetTotal:  input.BudgetTotal,
		Currency:     currency,
	}
	if err := h.store.Weddings.Create(c.Request.Context(), w); err != nil {
		h.fail(c, err, "wedding")
		return
	}
	utils.RespondCreated(c, w)
}

// weddingFromPath authorizes the :id path parameter as the active wedding.
func (h *Handler) weddingFromPath(c *gin.Context) (*models.Wedding, bool) {
	principal, _ := utils.PrincipalFrom(c)
	id, ok := parseID(c, "id", "wedding")
	if !ok {
		return nil, false
	}
	w, err := h.svc.Guard.AuthorizeWedding(c.Request.Context(), principal, id)
	if err != nil {
		h.fail(c, err, "wedding")
		return nil, false
	}
	return w, true
}

func (h *Handler) GetWedding(c *gin.Context) {
	w, ok := h.weddingFromPath(c)
	if !ok {
		return
	}
	utils.RespondOK(c, w)
}

func (h *Handler) UpdateWedding(c *gin.Context) {
	w, ok := h.weddingFromPath(c)
	if !ok {
		return
	}
	var input UpdateWeddingInput
	if !bindJSON(c, &input) {
		return
	}
	fields := map[string]any{}
	setIf(fields, "name", input.Name)
	setIf(fields, "partner1_name", input.Partner1Name)
	setIf(fields, "partner2_name", input.Partner2Name)
	setNullable(fields, "start_date", input.StartDate)
	setNullable(fields, "end_date", input.EndDate)
	setIf(fields, "location", input.Location)
	setIf(fields, "budget_total", input.BudgetTotal)
	if input.Currency != nil {
		fields["currency"] = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	updated, err := h.store.Weddings.Patch(c.Request.Context(), w.ID, w.ID, fields)
	if err != nil {
		h.fail(c, err, "wedding")
		return
	}
	utils.RespondOK(c, updated)
}

// DeleteWedding soft-deletes the wedding, which hides everything beneath it.
func (h *Handler) DeleteWedding(c *gin.Context) {
	w, ok := h.weddingFromPath(c)
	if !ok {
		return
	}
	if err := h.store.Weddings.Delete(c.Request.Context(), w.ID, w.ID); err != nil {
		h.fail(c, err, "wedding")
		return
	}
	c.JSON(http.StatusOK, utils.Envelope{Success: true, Message: "Wedding deleted successfully"})
}

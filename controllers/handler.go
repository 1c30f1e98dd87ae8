package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"weddingplanner-backend/logger"
	"weddingplanner-backend/models"
	"weddingplanner-backend/reports"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/services"
	"weddingplanner-backend/utils"
)

// WeddingHeader carries the active wedding when neither the query string nor
// the body names one.
const WeddingHeader = "X-Wedding-ID"

// Handler holds what every controller needs.
type Handler struct {
	svc             *services.Services
	store           *repository.Store
	log             *logger.Logger
	defaultCurrency string
}

func NewHandler(svc *services.Services, log *logger.Logger, defaultCurrency string) *Handler {
	return &Handler{
		svc:             svc,
		store:           svc.Store,
		log:             log.With("component", "controllers"),
		defaultCurrency: defaultCurrency,
	}
}

// weddingIDFrom reads the active wedding from the query, the header, or the
// JSON body, in that order.
func weddingIDFrom(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("weddingId")
	if raw == "" {
		raw = c.GetHeader(WeddingHeader)
	}
	if raw == "" && c.Request.Body != nil && c.Request.ContentLength != 0 {
		var body struct {
			WeddingID string `json:"weddingId"`
		}
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil {
			raw = body.WeddingID
		}
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// wedding resolves the principal and the active wedding and runs the
// ownership guard. On failure the response is already written.
func (h *Handler) wedding(c *gin.Context) (*models.Wedding, bool) {
	principal, ok := utils.PrincipalFrom(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	weddingID, ok := weddingIDFrom(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "weddingId is required")
		return nil, false
	}
	w, err := h.svc.Guard.AuthorizeWedding(c.Request.Context(), principal, weddingID)
	if err != nil {
		h.fail(c, err, "wedding")
		return nil, false
	}
	return w, true
}

func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds through the cached body so weddingIDFrom may read it too.
func bindJSON(c *gin.Context, input any) bool {
	if err := c.ShouldBindBodyWith(input, binding.JSON); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return false
	}
	return true
}

// fail maps an error to the response envelope. Only validation messages are
// echoed; anything unexpected is logged and answered generically.
func (h *Handler) fail(c *gin.Context, err error, label string) {
	var verr *models.ValidationError
	var rerr *services.ReferenceError
	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(c, http.StatusBadRequest, verr.Error())
	case errors.As(err, &rerr):
		utils.RespondWithError(c, http.StatusBadRequest, rerr.Error())
	case errors.Is(err, services.ErrWeddingNotAccessible):
		utils.RespondWithError(c, http.StatusNotFound, "Wedding not found")
	case errors.Is(err, repository.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, capitalize(label)+" not found")
	case errors.Is(err, reports.ErrUnknownExportType):
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown export type")
	case errors.Is(err, services.ErrMessagingDisabled):
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Messaging is not configured")
	default:
		h.log.Error("Request failed", "path", c.FullPath(), "method", c.Request.Method, "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Something went wrong")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func setIf[T any](fields map[string]any, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}

// filterFrom keeps the query parameters kind declares as filters.
func filterFrom(c *gin.Context, kind repository.Kind) repository.Filter {
	f := repository.Filter{Equals: map[string]string{}, Search: c.Query("search")}
	for param := range kind.Filters {
		if v := c.Query(param); v != "" {
			f.Equals[param] = v
		}
	}
	return f
}

package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"weddingplanner-backend/models"
	"weddingplanner-backend/reports"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/utils"
)

type CreateGuestGroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateGuestGroupInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) GuestGroups() *crud[models.GuestGroup, CreateGuestGroupInput, UpdateGuestGroupInput] {
	return &crud[models.GuestGroup, CreateGuestGroupInput, UpdateGuestGroupInput]{
		h: h, label: "guest group", repo: h.store.GuestGroups,
		build: func(_ context.Context, w *models.Wedding, _ uuid.UUID, in *CreateGuestGroupInput) (*models.GuestGroup, error) {
			return &models.GuestGroup{WeddingID: w.ID, Name: in.Name, Description: in.Description}, nil
		},
		changes: func(_ context.Context, _ *models.Wedding, _ *models.GuestGroup, in *UpdateGuestGroupInput) (map[string]any, error) {
			fields := map[string]any{}
			setIf(fields, "name", in.Name)
			setIf(fields, "description", in.Description)
			return fields, nil
		},
	}
}

// CreateGuestInput defines the expected JSON structure for creating a guest
type CreateGuestInput struct {
	GroupID            *uuid.UUID `json:"groupId"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	Side               string     `json:"side"`
	RSVPStatus         string     `json:"rsvpStatus"`
	PlusOne            bool       `json:"plusOne"`
	PlusOneName        string     `json:"plusOneName"`
	DietaryPreferences []string   `json:"dietaryPreferences"`
	Notes              string     `json:"notes"`
}

// UpdateGuestInput defines the expected JSON structure for updating a guest
type UpdateGuestInput struct {
	GroupID            Nullable[uuid.UUID] `json:"groupId"`
	FirstName          *string             `json:"firstName"`
	LastName           *string             `json:"lastName"`
	Email              *string             `json:"email"`
	Phone              *string             `json:"phone"`
	Side               *string             `json:"side"`
	RSVPStatus         *string             `json:"rsvpStatus"`
	PlusOne            *bool               `json:"plusOne"`
	PlusOneName        *string             `json:"plusOneName"`
	DietaryPreferences *[]string           `json:"dietaryPreferences"`
	Notes              *string             `json:"notes"`
}

func checkPhone(phone string) error {
	if phone != "" && !utils.ValidatePhone(phone) {
		return &models.ValidationError{Field: "phone", Message: "invalid phone number format"}
	}
	return nil
}

// dietarySet trims, lowercases and de-duplicates preferences.
func dietarySet(prefs []string) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	seen := map[string]bool{}
	for _, p := range prefs {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func (h *Handler) Guests() *crud[models.Guest, CreateGuestInput, UpdateGuestInput] {
	return &crud[models.Guest, CreateGuestInput, UpdateGuestInput]{
		h: h, label: "guest", repo: h.store.Guests,
		build: func(ctx context.Context, w *models.Wedding, _ uuid.UUID, in *CreateGuestInput) (*models.Guest, error) {
			if err := checkPhone(in.Phone); err != nil {
				return nil, err
			}
			if err := h.svc.Links.Group(ctx, w.ID, in.GroupID); err != nil {
				return nil, err
			}
			return &models.Guest{
				WeddingID:          w.ID,
				GroupID:            in.GroupID,
				FirstName:          in.FirstName,
				LastName:           in.LastName,
				Email:              in.Email,
				Phone:              in.Phone,
				Side:               in.Side,
				RSVPStatus:         in.RSVPStatus,
				PlusOne:            in.PlusOne,
				PlusOneName:        in.PlusOneName,
				DietaryPreferences: dietarySet(in.DietaryPreferences),
				Notes:              in.Notes,
			}, nil
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.Guest, in *UpdateGuestInput) (map[string]any, error) {
			fields := map[string]any{}
			if in.Phone != nil {
				if err := checkPhone(*in.Phone); err != nil {
					return nil, err
				}
				fields["phone"] = *in.Phone
			}
			if in.GroupID.Set {
				if err := h.svc.Links.Group(ctx, w.ID, in.GroupID.Value); err != nil {
					return nil, err
				}
				fields["group_id"] = in.GroupID.column()
			}
			setIf(fields, "first_name", in.FirstName)
			setIf(fields, "last_name", in.LastName)
			setIf(fields, "email", in.Email)
			setIf(fields, "side", in.Side)
			setIf(fields, "rsvp_status", in.RSVPStatus)
			setIf(fields, "plus_one", in.PlusOne)
			setIf(fields, "plus_one_name", in.PlusOneName)
			setIf(fields, "notes", in.Notes)
			if in.DietaryPreferences != nil {
				fields["dietary_preferences"] = dietarySet(*in.DietaryPreferences)
			}
			return fields, nil
		},
		present: func(c *gin.Context, _ *models.Wedding, rows []models.Guest) ([]any, error) {
			return views(h.svc.Composer.Guests(c.Request.Context(), rows))
		},
	}
}

// GuestSummary is the RSVP and dietary breakdown for the wedding's guests.
func (h *Handler) GuestSummary(c *gin.Context) {
	w, ok := h.wedding(c)
	if !ok {
		return
	}
	guests, err := h.store.Guests.ListByParent(c.Request.Context(), w.ID, repository.Filter{})
	if err != nil {
		h.fail(c, err, "guest")
		return
	}
	utils.RespondOK(c, gin.H{
		"rsvp":    reports.CountRSVP(guests),
		"dietary": reports.DietaryCounts(guests),
	})
}

type CreateTravelInput struct {
	GuestID         uuid.UUID  `json:"guestId"`
	TripType        string     `json:"tripType"`
	Mode            string     `json:"mode"`
	ArrivalAt       *time.Time `json:"arrivalAt"`
	ArrivalCarrier  string     `json:"arrivalCarrier"`
	ArrivalNumber   string     `json:"arrivalNumber"`
	ArrivalFrom     string     `json:"arrivalFrom"`
	DepartureAt     *time.Time `json:"departureAt"`
	DepartureNumber string     `json:"departureNumber"`
	PickupRequired  bool       `json:"pickupRequired"`
	Notes           string     `json:"notes"`
}

type UpdateTravelInput struct {
	TripType        *string             `json:"tripType"`
	Mode            *string             `json:"mode"`
	ArrivalAt       Nullable[time.Time] `json:"arrivalAt"`
	ArrivalCarrier  *string             `json:"arrivalCarrier"`
	ArrivalNumber   *string             `json:"arrivalNumber"`
	ArrivalFrom     *string             `json:"arrivalFrom"`
	DepartureAt     Nullable[time.Time] `json:"departureAt"`
	DepartureNumber *string             `json:"departureNumber"`
	PickupRequired  *bool               `json:"pickupRequired"`
	Notes           *string             `json:"notes"`
}

func (h *Handler) Travel() *crud[models.GuestTravelDetail, CreateTravelInput, UpdateTravelInput] {
	return &crud[models.GuestTravelDetail, CreateTravelInput, UpdateTravelInput]{
		h: h, label: "travel detail", repo: h.store.Travel,
		build: func(ctx context.Context, w *models.Wedding, _ uuid.UUID, in *CreateTravelInput) (*models.GuestTravelDetail, error) {
			if in.GuestID == uuid.Nil {
				return nil, &models.ValidationError{Field: "guestId", Message: "is required"}
			}
			if err := h.svc.Links.Guest(ctx, w.ID, &in.GuestID); err != nil {
				return nil, err
			}
			return &models.GuestTravelDetail{
				WeddingID:       w.ID,
				GuestID:         in.GuestID,
				TripType:        in.TripType,
				Mode:            in.Mode,
				ArrivalAt:       in.ArrivalAt,
				ArrivalCarrier:  in.ArrivalCarrier,
				ArrivalNumber:   in.ArrivalNumber,
				ArrivalFrom:     in.ArrivalFrom,
				DepartureAt:     in.DepartureAt,
				DepartureNumber: in.DepartureNumber,
				PickupRequired:  in.PickupRequired,
				Notes:           in.Notes,
			}, nil
		},
		changes: func(_ context.Context, _ *models.Wedding, _ *models.GuestTravelDetail, in *UpdateTravelInput) (map[string]any, error) {
			fields := map[string]any{}
			setIf(fields, "trip_type", in.TripType)
			setIf(fields, "mode", in.Mode)
			setNullable(fields, "arrival_at", in.ArrivalAt)
			setIf(fields, "arrival_carrier", in.ArrivalCarrier)
			setIf(fields, "arrival_number", in.ArrivalNumber)
			setIf(fields, "arrival_from", in.ArrivalFrom)
			setNullable(fields, "departure_at", in.DepartureAt)
			setIf(fields, "departure_number", in.DepartureNumber)
			setIf(fields, "pickup_required", in.PickupRequired)
			setIf(fields, "notes", in.Notes)
			return fields, nil
		},
	}
}

// GetGuestTravel lists the travel records of one guest.
func (h *Handler) GetGuestTravel(c *gin.Context) {
	w, ok := h.wedding(c)
	if !ok {
		return
	}
	guestID, ok := parseID(c, "id", "guest")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	exists, err := h.store.Guests.Exists(ctx, w.ID, guestID)
	if err != nil {
		h.fail(c, err, "guest")
		return
	}
	if !exists {
		utils.RespondWithError(c, http.StatusNotFound, "Guest not found")
		return
	}
	travel, err := h.store.Travel.ListByParent(ctx, w.ID, repository.Filter{
		Equals: map[string]string{"guestId": guestID.String()},
	})
	if err != nil {
		h.fail(c, err, "travel detail")
		return
	}
	utils.RespondOK(c, travel)
}

package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weddingplanner-backend/models"
)

type ParticipantInput struct {
	GuestID *uuid.UUID `json:"guestId"`
	Name    string     `json:"name"`
	Role    string     `json:"role"`
}

type UpdateParticipantInput struct {
	GuestID *uuid.UUID `json:"guestId"`
	Name    *string    `json:"name"`
	Role    *string    `json:"role"`
}

type CreateDanceInput struct {
	EventID         *uuid.UUID         `json:"eventId"`
	Title           string             `json:"title"`
	Song            string             `json:"song"`
	Artist          string             `json:"artist"`
	DurationMinutes int                `json:"durationMinutes"`
	Choreographer   string             `json:"choreographer"`
	Sequence        int                `json:"sequence"`
	Notes           string             `json:"notes"`
	Participants    []ParticipantInput `json:"participants"`
}

type UpdateDanceInput struct {
	EventID         Nullable[uuid.UUID] `json:"eventId"`
	Title           *string             `json:"title"`
	Song            *string             `json:"song"`
	Artist          *string             `json:"artist"`
	DurationMinutes *int                `json:"durationMinutes"`
	Choreographer   *string             `json:"choreographer"`
	Sequence        *int                `json:"sequence"`
	Notes           *string             `json:"notes"`
}

func (h *Handler) Dances() *crud[models.DancePerformance, CreateDanceInput, UpdateDanceInput] {
	return &crud[models.DancePerformance, CreateDanceInput, UpdateDanceInput]{
		h: h, label: "dance performance", repo: h.store.Dances,
		build: func(_ context.Context, w *models.Wedding, _ uuid.UUID, in *CreateDanceInput) (*models.DancePerformance, error) {
			return &models.DancePerformance{
				WeddingID:       w.ID,
				EventID:         in.EventID,
				Title:           in.Title,
				Song:            in.Song,
				Artist:          in.Artist,
				DurationMinutes: in.DurationMinutes,
				Choreographer:   in.Choreographer,
				Sequence:        in.Sequence,
				Notes:           in.Notes,
			}, nil
		},
		save: func(ctx context.Context, perf *models.DancePerformance, in *CreateDanceInput) error {
			parts := make([]*models.DanceParticipant, len(in.Participants))
			for i, p := range in.Participants {
				parts[i] = &models.DanceParticipant{GuestID: p.GuestID, Name: p.Name, Role: p.Role}
			}
			return h.svc.Bundles.Performance(ctx, perf, parts)
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.DancePerformance, in *UpdateDanceInput) (map[string]any, error) {
			fields := map[string]any{}
			if in.EventID.Set {
				if err := h.svc.Links.Event(ctx, w.ID, in.EventID.Value); err != nil {
					return nil, err
				}
				fields["event_id"] = in.EventID.column()
			}
			setIf(fields, "title", in.Title)
			setIf(fields, "song", in.Song)
			setIf(fields, "artist", in.Artist)
			setIf(fields, "duration_minutes", in.DurationMinutes)
			setIf(fields, "choreographer", in.Choreographer)
			setIf(fields, "sequence", in.Sequence)
			setIf(fields, "notes", in.Notes)
			return fields, nil
		},
		present: func(c *gin.Context, w *models.Wedding, rows []models.DancePerformance) ([]any, error) {
			return views(h.svc.Composer.Performances(c.Request.Context(), w.ID, rows))
		},
	}
}

// Participants serves /dances/:id/participants. Rows are hard-deleted.
func (h *Handler) Participants() *crud[models.DanceParticipant, ParticipantInput, UpdateParticipantInput] {
	return &crud[models.DanceParticipant, ParticipantInput, UpdateParticipantInput]{
		h: h, label: "participant", repo: h.store.Participants,
		parent: parentIn(h, h.store.Dances, "dance performance"),
		build: func(ctx context.Context, w *models.Wedding, perfID uuid.UUID, in *ParticipantInput) (*models.DanceParticipant, error) {
			if err := h.svc.Links.Guest(ctx, w.ID, in.GuestID); err != nil {
				return nil, err
			}
			return &models.DanceParticipant{PerformanceID: perfID, GuestID: in.GuestID, Name: in.Name, Role: in.Role}, nil
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.DanceParticipant, in *UpdateParticipantInput) (map[string]any, error) {
			fields := map[string]any{}
			if in.GuestID != nil {
				if err := h.svc.Links.Guest(ctx, w.ID, in.GuestID); err != nil {
					return nil, err
				}
				fields["guest_id"] = *in.GuestID
			}
			setIf(fields, "name", in.Name)
			setIf(fields, "role", in.Role)
			return fields, nil
		},
	}
}

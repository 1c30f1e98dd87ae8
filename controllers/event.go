package controllers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"weddingplanner-backend/models"
)

type CreateEventInput struct {
	Name        string    `json:"name"`
	EventType   string    `json:"eventType"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Venue       string    `json:"venue"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
}

type UpdateEventInput struct {
	Name        *string    `json:"name"`
	EventType   *string    `json:"eventType"`
	Date        *time.Time `json:"date"`
	StartTime   *string    `json:"startTime"`
	EndTime     *string    `json:"endTime"`
	Venue       *string    `json:"venue"`
	Address     *string    `json:"address"`
	Description *string    `json:"description"`
}

func (h *Handler) Events() *crud[models.WeddingEvent, CreateEventInput, UpdateEventInput] {
	return &crud[models.WeddingEvent, CreateEventInput, UpdateEventInput]{
		h: h, label: "event", repo: h.store.Events,
		build: func(_ context.Context, w *models.Wedding, _ uuid.UUID, in *CreateEventInput) (*models.WeddingEvent, error) {
			return &models.WeddingEvent{
				WeddingID:   w.ID,
				Name:        in.Name,
				EventType:   in.EventType,
				Date:        in.Date,
				StartTime:   in.StartTime,
				EndTime:     in.EndTime,
				Venue:       in.Venue,
				Address:     in.Address,
				Description: in.Description,
			}, nil
		},
		changes: func(_ context.Context, _ *models.Wedding, _ *models.WeddingEvent, in *UpdateEventInput) (map[string]any, error) {
			fields := map[string]any{}
			setIf(fields, "name", in.Name)
			setIf(fields, "event_type", in.EventType)
			setIf(fields, "date", in.Date)
			setIf(fields, "start_time", in.StartTime)
			setIf(fields, "end_time", in.EndTime)
			setIf(fields, "venue", in.Venue)
			setIf(fields, "address", in.Address)
			setIf(fields, "description", in.Description)
			return fields, nil
		},
	}
}

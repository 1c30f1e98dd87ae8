package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weddingplanner-backend/models"
	"weddingplanner-backend/services"
	"weddingplanner-backend/utils"
)

// LinkInput is the optional (entityType, entityId) pair shared by files,
// notes and communications.
type LinkInput struct {
	EntityType *models.EntityKind `json:"entityType"`
	EntityID   *uuid.UUID         `json:"entityId"`
}

func (in LinkInput) ref() models.EntityRef {
	var ref models.EntityRef
	if in.EntityType != nil {
		ref.EntityType = *in.EntityType
	}
	ref.EntityID = in.EntityID
	return ref
}

// linkChanges validates a replacement link and maps it to columns. Both
// fields must be sent together.
func (h *Handler) linkChanges(ctx context.Context, w *models.Wedding, in LinkInput, fields map[string]any) error {
	if in.EntityType == nil && in.EntityID == nil {
		return nil
	}
	ref := in.ref()
	if err := ref.Validate(); err != nil {
		return err
	}
	if err := h.svc.Links.Ref(ctx, w.ID, ref); err != nil {
		return err
	}
	fields["entity_type"] = ref.EntityType
	fields["entity_id"] = ref.EntityID
	return nil
}

type CreateFileInput struct {
	LinkInput
	Name      string `json:"name"`
	URL       string `json:"url"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
}

type UpdateFileInput struct {
	LinkInput
	Name     *string `json:"name"`
	URL      *string `json:"url"`
	MimeType *string `json:"mimeType"`
}

func (h *Handler) Files() *crud[models.MediaFile, CreateFileInput, UpdateFileInput] {
	return &crud[models.MediaFile, CreateFileInput, UpdateFileInput]{
		h: h, label: "file", repo: h.store.Files,
		build: func(ctx context.Context, w *models.Wedding, _ uuid.UUID, in *CreateFileInput) (*models.MediaFile, error) {
			f := &models.MediaFile{
				WeddingID:  w.ID,
				Name:       in.Name,
				URL:        in.URL,
				MimeType:   in.MimeType,
				SizeBytes:  in.SizeBytes,
				UploadedBy: w.OwnerID,
				EntityRef:  in.ref(),
			}
			if err := f.Validate(); err != nil {
				return nil, err
			}
			if err := h.svc.Links.Ref(ctx, w.ID, f.EntityRef); err != nil {
				return nil, err
			}
			return f, nil
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.MediaFile, in *UpdateFileInput) (map[string]any, error) {
			fields := map[string]any{}
			if err := h.linkChanges(ctx, w, in.LinkInput, fields); err != nil {
				return nil, err
			}
			setIf(fields, "name", in.Name)
			setIf(fields, "url", in.URL)
			setIf(fields, "mime_type", in.MimeType)
			return fields, nil
		},
	}
}

type CreateNoteInput struct {
	LinkInput
	Title   string `json:"title"`
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`
}

type UpdateNoteInput struct {
	LinkInput
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Pinned  *bool   `json:"pinned"`
}

func (h *Handler) Notes() *crud[models.Note, CreateNoteInput, UpdateNoteInput] {
	return &crud[models.Note, CreateNoteInput, UpdateNoteInput]{
		h: h, label: "note", repo: h.store.Notes,
		build: func(ctx context.Context, w *models.Wedding, _ uuid.UUID, in *CreateNoteInput) (*models.Note, error) {
			n := &models.Note{
				WeddingID: w.ID,
				Title:     in.Title,
				Content:   in.Content,
				Pinned:    in.Pinned,
				Author:    w.OwnerID,
				EntityRef: in.ref(),
			}
			if err := n.Validate(); err != nil {
				return nil, err
			}
			if err := h.svc.Links.Ref(ctx, w.ID, n.EntityRef); err != nil {
				return nil, err
			}
			return n, nil
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.Note, in *UpdateNoteInput) (map[string]any, error) {
			fields := map[string]any{}
			if err := h.linkChanges(ctx, w, in.LinkInput, fields); err != nil {
				return nil, err
			}
			setIf(fields, "title", in.Title)
			setIf(fields, "content", in.Content)
			setIf(fields, "pinned", in.Pinned)
			return fields, nil
		},
	}
}

type CreateCommunicationInput struct {
	LinkInput
	Channel    string     `json:"channel"`
	Direction  string     `json:"direction"`
	Recipient  string     `json:"recipient"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Status     string     `json:"status"`
	OccurredAt *time.Time `json:"occurredAt"`
}

type UpdateCommunicationInput struct {
	LinkInput
	Subject    *string    `json:"subject"`
	Body       *string    `json:"body"`
	Status     *string    `json:"status"`
	OccurredAt *time.Time `json:"occurredAt"`
}

// Communications serves the manual communication log.
func (h *Handler) Communications() *crud[models.CommunicationLogEntry, CreateCommunicationInput, UpdateCommunicationInput] {
	return &crud[models.CommunicationLogEntry, CreateCommunicationInput, UpdateCommunicationInput]{
		h: h, label: "communication", repo: h.store.Communications,
		build: func(ctx context.Context, w *models.Wedding, _ uuid.UUID, in *CreateCommunicationInput) (*models.CommunicationLogEntry, error) {
			e := &models.CommunicationLogEntry{
				WeddingID:  w.ID,
				Channel:    in.Channel,
				Direction:  in.Direction,
				Recipient:  in.Recipient,
				Subject:    in.Subject,
				Body:       in.Body,
				Status:     in.Status,
				OccurredAt: in.OccurredAt,
				EntityRef:  in.ref(),
			}
			e.ApplyDefaults()
			if err := e.Validate(); err != nil {
				return nil, err
			}
			if err := h.svc.Links.Ref(ctx, w.ID, e.EntityRef); err != nil {
				return nil, err
			}
			return e, nil
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.CommunicationLogEntry, in *UpdateCommunicationInput) (map[string]any, error) {
			fields := map[string]any{}
			if err := h.linkChanges(ctx, w, in.LinkInput, fields); err != nil {
				return nil, err
			}
			setIf(fields, "subject", in.Subject)
			setIf(fields, "body", in.Body)
			setIf(fields, "status", in.Status)
			setIf(fields, "occurred_at", in.OccurredAt)
			return fields, nil
		},
	}
}

type SendCommunicationInput struct {
	Channel    string      `json:"channel"`
	Subject    string      `json:"subject"`
	Body       string      `json:"body"`
	GuestIDs   []uuid.UUID `json:"guestIds"`
	RSVPStatus string      `json:"rsvpStatus"`
}

// SendCommunication texts the selected guests, or every guest with the given
// RSVP status when no ids are sent, and returns the log entries written.
func (h *Handler) SendCommunication(c *gin.Context) {
	w, ok := h.wedding(c)
	if !ok {
		return
	}
	var input SendCommunicationInput
	if !bindJSON(c, &input) {
		return
	}
	entries, err := h.svc.Broadcaster.Send(c.Request.Context(), w.ID, services.BroadcastRequest{
		Channel:    input.Channel,
		Subject:    input.Subject,
		Body:       input.Body,
		GuestIDs:   input.GuestIDs,
		RSVPStatus: input.RSVPStatus,
	})
	if err != nil {
		h.fail(c, err, "guest")
		return
	}
	utils.RespondCreated(c, entries)
}

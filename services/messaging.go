// services/messaging.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"weddingplanner-backend/logger"
	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/utils"
)

var ErrMessagingDisabled = errors.New("messaging is not configured")

// Messenger delivers one text message and returns the provider's id for it.
type Messenger interface {
	Send(ctx context.Context, channel, to, body string) (string, error)
}

type TwilioMessenger struct {
	client         *twilio.RestClient
	phoneNumber    string
	whatsappNumber string
}

func NewTwilioMessenger(accountSID, authToken, phoneNumber, whatsappNumber string) *TwilioMessenger {
	return &TwilioMessenger{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		phoneNumber:    phoneNumber,
		whatsappNumber: whatsappNumber,
	}
}

func (m *TwilioMessenger) Send(_ context.Context, channel, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if channel == models.ChannelWhatsApp {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + m.whatsappNumber)
	} else {
		params.SetTo(to)
		params.SetFrom(m.phoneNumber)
	}

	resp, err := m.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}

// GuestNamePlaceholder is replaced with each recipient's first name.
const GuestNamePlaceholder = "[GuestName]"

type BroadcastRequest struct {
	Channel    string
	Subject    string
	Body       string
	GuestIDs   []uuid.UUID
	RSVPStatus string
}

// Broadcaster sends a message to a set of guests and records one
// communication log entry per guest, whether or not delivery succeeded.
type Broadcaster struct {
	store     *repository.Store
	messenger Messenger
	log       *logger.Logger
	now       func() time.Time
}

// NewBroadcaster accepts a nil messenger; Send then fails with
// ErrMessagingDisabled.
func NewBroadcaster(store *repository.Store, messenger Messenger, baseLog *logger.Logger) *Broadcaster {
	return &Broadcaster{
		store:     store,
		messenger: messenger,
		log:       baseLog.With("service", "Broadcaster"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (b *Broadcaster) Send(ctx context.Context, weddingID uuid.UUID, req BroadcastRequest) ([]models.CommunicationLogEntry, error) {
	if b.messenger == nil {
		return nil, ErrMessagingDisabled
	}
	if req.Channel != models.ChannelSMS && req.Channel != models.ChannelWhatsApp {
		return nil, &models.ValidationError{Field: "channel", Message: "must be one of \"sms\", \"whatsapp\""}
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, &models.ValidationError{Field: "body", Message: "is required"}
	}

	guests, err := b.recipients(ctx, weddingID, req)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CommunicationLogEntry, 0, len(guests))
	for _, g := range guests {
		body := strings.ReplaceAll(req.Body, GuestNamePlaceholder, g.FirstName)
		sentAt := b.now()
		entry := models.CommunicationLogEntry{
			WeddingID:  weddingID,
			Channel:    req.Channel,
			Direction:  models.DirectionOutbound,
			Recipient:  g.Phone,
			Subject:    req.Subject,
			Body:       body,
			OccurredAt: &sentAt,
			EntityRef:  models.EntityRef{EntityType: models.KindGuest, EntityID: &g.ID},
		}

		if !utils.ValidatePhone(g.Phone) {
			entry.Status = "failed"
			entry.ErrorMessage = "guest has no valid phone number"
		} else {
			to := utils.E164(g.Phone)
			entry.Recipient = to
			sid, err := b.messenger.Send(ctx, req.Channel, to, body)
			if err != nil {
				b.log.Warn("Failed to send message", "guestId", g.ID, "phone", to, "error", err)
				entry.Status = "failed"
				entry.ErrorMessage = err.Error()
			} else {
				entry.Status = "sent"
				entry.ExternalID = sid
			}
		}

		if err := b.store.Communications.Create(ctx, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	b.log.Info("Broadcast completed", "weddingId", weddingID, "channel", req.Channel, "recipients", len(entries))
	return entries, nil
}

func (b *Broadcaster) recipients(ctx context.Context, weddingID uuid.UUID, req BroadcastRequest) ([]models.Guest, error) {
	if len(req.GuestIDs) == 0 {
		return b.store.Guests.ListByParent(ctx, weddingID, repository.Filter{
			Equals: map[string]string{"rsvpStatus": req.RSVPStatus},
		})
	}
	rows, err := b.store.Guests.ListByIDs(ctx, req.GuestIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Guest, len(rows))
	for _, g := range rows {
		byID[g.ID] = g
	}
	guests := make([]models.Guest, 0, len(req.GuestIDs))
	for _, id := range req.GuestIDs {
		g, ok := byID[id]
		if !ok || g.WeddingID != weddingID {
			return nil, &ReferenceError{Field: "guestIds"}
		}
		guests = append(guests, g)
	}
	return guests, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaFile stores a URL only; uploads happen elsewhere.
type MediaFile struct {
	Base
	WeddingID  uuid.UUID `gorm:"type:uuid;index;not null" json:"weddingId"`
	Name       string    `gorm:"not null" json:"name"`
	URL        string    `gorm:"not null" json:"url"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedBy string    `json:"uploadedBy"`
	EntityRef
	SoftDelete
}

func (m *MediaFile) Validate() error {
	return firstErr(required("name", m.Name), required("url", m.URL), m.EntityRef.Validate())
}

type Note struct {
	Base
	WeddingID uuid.UUID `gorm:"type:uuid;index;not null" json:"weddingId"`
	Title     string    `json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Pinned    bool      `gorm:"default:false" json:"pinned"`
	Author    string    `json:"author"`
	EntityRef
	SoftDelete
}

func (n *Note) Validate() error {
	return firstErr(required("content", n.Content), n.EntityRef.Validate())
}

const (
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
	ChannelCall     = "call"
	ChannelInPerson = "in_person"
)

var Channels = []string{ChannelEmail, ChannelSMS, ChannelWhatsApp, ChannelCall, ChannelInPerson}

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

type CommunicationLogEntry struct {
	Base
	WeddingID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"weddingId"`
	Channel      string     `gorm:"type:varchar(20);not null" json:"channel"`
	Direction    string     `gorm:"type:varchar(10);default:'outbound'" json:"direction"`
	Recipient    string     `json:"recipient"`
	Subject      string     `json:"subject"`
	Body         string     `gorm:"type:text" json:"body"`
	Status       string     `gorm:"type:varchar(20)" json:"status"` // sent, failed, logged
	ExternalID   string     `json:"externalId"`
	ErrorMessage string     `gorm:"type:text" json:"errorMessage"`
	OccurredAt   *time.Time `json:"occurredAt"`
	EntityRef
	SoftDelete
}

func (c *CommunicationLogEntry) ApplyDefaults() {
	if c.Direction == "" {
		c.Direction = DirectionOutbound
	}
	if c.Status == "" {
		c.Status = "logged"
	}
	if c.OccurredAt == nil {
		now := time.Now().UTC()
		c.OccurredAt = &now
	}
}

func (c *CommunicationLogEntry) Validate() error {
	return firstErr(
		oneOf("channel", c.Channel, Channels...),
		oneOf("direction", c.Direction, DirectionInbound, DirectionOutbound),
		c.EntityRef.Validate(),
	)
}

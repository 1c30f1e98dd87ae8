package controllers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"weddingplanner-backend/models"
)

type CreateAccommodationInput struct {
	HotelName    string     `json:"hotelName"`
	Address      string     `json:"address"`
	CheckIn      *time.Time `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
	RoomsBlocked int        `json:"roomsBlocked"`
	RoomsBooked  int        `json:"roomsBooked"`
	RatePerNight float64    `json:"ratePerNight"`
	ContactPhone string     `json:"contactPhone"`
	Notes        string     `json:"notes"`
}

type UpdateAccommodationInput struct {
	HotelName    *string             `json:"hotelName"`
	Address      *string             `json:"address"`
	CheckIn      Nullable[time.Time] `json:"checkIn"`
	CheckOut     Nullable[time.Time] `json:"checkOut"`
	RoomsBlocked *int                `json:"roomsBlocked"`
	RoomsBooked  *int                `json:"roomsBooked"`
	RatePerNight *float64            `json:"ratePerNight"`
	ContactPhone *string             `json:"contactPhone"`
	Notes        *string             `json:"notes"`
}

func (h *Handler) Accommodations() *crud[models.AccommodationBooking, CreateAccommodationInput, UpdateAccommodationInput] {
	return &crud[models.AccommodationBooking, CreateAccommodationInput, UpdateAccommodationInput]{
		h: h, label: "accommodation", repo: h.store.Accommodations,
		build: func(_ context.Context, w *models.Wedding, _ uuid.UUID, in *CreateAccommodationInput) (*models.AccommodationBooking, error) {
			if err := checkPhone(in.ContactPhone); err != nil {
				return nil, err
			}
			return &models.AccommodationBooking{
				WeddingID:    w.ID,
				HotelName:    in.HotelName,
				Address:      in.Address,
				CheckIn:      in.CheckIn,
				CheckOut:     in.CheckOut,
				RoomsBlocked: in.RoomsBlocked,
				RoomsBooked:  in.RoomsBooked,
				RatePerNight: in.RatePerNight,
				ContactPhone: in.ContactPhone,
				Notes:        in.Notes,
			}, nil
		},
		changes: func(_ context.Context, _ *models.Wedding, _ *models.AccommodationBooking, in *UpdateAccommodationInput) (map[string]any, error) {
			fields := map[string]any{}
			if in.ContactPhone != nil {
				if err := checkPhone(*in.ContactPhone); err != nil {
					return nil, err
				}
				fields["contact_phone"] = *in.ContactPhone
			}
			setIf(fields, "hotel_name", in.HotelName)
			setIf(fields, "address", in.Address)
			setNullable(fields, "check_in", in.CheckIn)
			setNullable(fields, "check_out", in.CheckOut)
			setIf(fields, "rooms_blocked", in.RoomsBlocked)
			setIf(fields, "rooms_booked", in.RoomsBooked)
			setIf(fields, "rate_per_night", in.RatePerNight)
			setIf(fields, "notes", in.Notes)
			return fields, nil
		},
	}
}

type CreateTransportationInput struct {
	EventID        *uuid.UUID `json:"eventId"`
	VehicleType    string     `json:"vehicleType"`
	Provider       string     `json:"provider"`
	Capacity       int        `json:"capacity"`
	VehicleCount   int        `json:"vehicleCount"`
	PickupLocation string     `json:"pickupLocation"`
	DropLocation   string     `json:"dropLocation"`
	PickupAt       *time.Time `json:"pickupAt"`
	Cost           float64    `json:"cost"`
	Notes          string     `json:"notes"`
}

type UpdateTransportationInput struct {
	EventID        Nullable[uuid.UUID] `json:"eventId"`
	VehicleType    *string             `json:"vehicleType"`
	Provider       *string             `json:"provider"`
	Capacity       *int                `json:"capacity"`
	VehicleCount   *int                `json:"vehicleCount"`
	PickupLocation *string             `json:"pickupLocation"`
	DropLocation   *string             `json:"dropLocation"`
	PickupAt       Nullable[time.Time] `json:"pickupAt"`
	Cost           *float64            `json:"cost"`
	Notes          *string             `json:"notes"`
}

func (h *Handler) Transportation() *crud[models.TransportationArrangement, CreateTransportationInput, UpdateTransportationInput] {
	return &crud[models.TransportationArrangement, CreateTransportationInput, UpdateTransportationInput]{
		h: h, label: "transportation", repo: h.store.Transportation,
		build: func(ctx context.Context, w *models.Wedding, _ uuid.UUID, in *CreateTransportationInput) (*models.TransportationArrangement, error) {
			if err := h.svc.Links.Event(ctx, w.ID, in.EventID); err != nil {
				return nil, err
			}
			return &models.TransportationArrangement{
				WeddingID:      w.ID,
				EventID:        in.EventID,
				VehicleType:    in.VehicleType,
				Provider:       in.Provider,
				Capacity:       in.Capacity,
				VehicleCount:   in.VehicleCount,
				PickupLocation: in.PickupLocation,
				DropLocation:   in.DropLocation,
				PickupAt:       in.PickupAt,
				Cost:           in.Cost,
				Notes:          in.Notes,
			}, nil
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.TransportationArrangement, in *UpdateTransportationInput) (map[string]any, error) {
			fields := map[string]any{}
			if in.EventID.Set {
				if err := h.svc.Links.Event(ctx, w.ID, in.EventID.Value); err != nil {
					return nil, err
				}
				fields["event_id"] = in.EventID.column()
			}
			setIf(fields, "vehicle_type", in.VehicleType)
			setIf(fields, "provider", in.Provider)
			setIf(fields, "capacity", in.Capacity)
			setIf(fields, "vehicle_count", in.VehicleCount)
			setIf(fields, "pickup_location", in.PickupLocation)
			setIf(fields, "drop_location", in.DropLocation)
			setNullable(fields, "pickup_at", in.PickupAt)
			setIf(fields, "cost", in.Cost)
			setIf(fields, "notes", in.Notes)
			return fields, nil
		},
	}
}

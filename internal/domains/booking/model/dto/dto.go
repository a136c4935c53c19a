package dto

import (
	"time"

	"github.com/google/uuid"

	"huddle/internal/domains/booking/model"
	"huddle/shared/constant"
	gModel "huddle/shared/model"
	"huddle/shared/timezone"
)

// CreateBookingRequest mirrors the browser client's payload. roomName is
// accepted for compatibility but ignored: the server snapshots the room's
// current name when the booking is created.
type CreateBookingRequest struct {
	RoomID      string `json:"roomId"      validate:"omitempty"`
	RoomName    string `json:"roomName"    validate:"omitempty"`
	Title       string `json:"title"       validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Start       string `json:"start"       validate:"omitempty"`
	End         string `json:"end"         validate:"omitempty"`
	BookedBy    string `json:"bookedBy"    validate:"omitempty,max=100"`
	BookedFor   string `json:"bookedFor"   validate:"omitempty,max=100"`
}

// HasRequiredFields reports whether every mandatory field is present;
// validation messaging is handled by the service.
func (c *CreateBookingRequest) HasRequiredFields() bool {
	return c.RoomID != "" && c.Title != "" && c.Start != "" && c.End != "" && c.BookedBy != ""
}

func (c *CreateBookingRequest) ToModel(user, roomName string, start, end time.Time) model.Booking {
	var description *string
	if c.Description != "" {
		description = &c.Description
	}

	var bookedFor *string
	if c.BookedFor != "" {
		bookedFor = &c.BookedFor
	}

	return model.Booking{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		RoomName:    roomName,
		Title:       c.Title,
		Description: description,
		StartAt:     start,
		EndAt:       end,
		BookedBy:    c.BookedBy,
		BookedFor:   bookedFor,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BookingResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"roomId"`
	RoomName    string `json:"roomName"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	BookedBy    string `json:"bookedBy"`
	BookedFor   string `json:"bookedFor,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.Title = model.Title

	if model.Description != nil {
		r.Description = *model.Description
	}

	r.Start = timezone.Format(model.StartAt, constant.DateFormat)
	r.End = timezone.Format(model.EndAt, constant.DateFormat)
	r.BookedBy = model.BookedBy

	if model.BookedFor != nil {
		r.BookedFor = *model.BookedFor
	}

	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

func BookingsFromModels(models []model.Booking) []BookingResponse {
	bookings := make([]BookingResponse, len(models))
	for i, mod := range models {
		bookings[i].FromModel(mod)
	}

	return bookings
}

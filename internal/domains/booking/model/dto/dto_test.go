package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"huddle/internal/domains/booking/model"
	"huddle/internal/domains/booking/model/dto"
)

func TestCreateBookingRequest_HasRequiredFields(t *testing.T) {
	valid := dto.CreateBookingRequest{
		RoomID:   "room-1",
		Title:    "Standup",
		Start:    "2026-09-01T09:00:00Z",
		End:      "2026-09-01T09:30:00Z",
		BookedBy: "alice@example.com",
	}

	assert.True(t, valid.HasRequiredFields())

	tests := []struct {
		name   string
		mutate func(r *dto.CreateBookingRequest)
	}{
		{name: "missing roomId", mutate: func(r *dto.CreateBookingRequest) { r.RoomID = "" }},
		{name: "missing title", mutate: func(r *dto.CreateBookingRequest) { r.Title = "" }},
		{name: "missing start", mutate: func(r *dto.CreateBookingRequest) { r.Start = "" }},
		{name: "missing end", mutate: func(r *dto.CreateBookingRequest) { r.End = "" }},
		{name: "missing bookedBy", mutate: func(r *dto.CreateBookingRequest) { r.BookedBy = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			assert.False(t, req.HasRequiredFields())
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomID:      "room-1",
		RoomName:    "Client Supplied Name",
		Title:       "Planning",
		Description: "Quarterly planning session",
		BookedBy:    "alice@example.com",
		BookedFor:   "Platform team",
	}

	start := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	booking := req.ToModel("user-1", "Conference Room A", start, end)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "room-1", booking.RoomID)
	assert.Equal(t, "Conference Room A", booking.RoomName)
	assert.Equal(t, "Planning", booking.Title)
	assert.Equal(t, "Quarterly planning session", *booking.Description)
	assert.Equal(t, start, booking.StartAt)
	assert.Equal(t, end, booking.EndAt)
	assert.Equal(t, "Platform team", *booking.BookedFor)
	assert.Equal(t, "user-1", booking.CreatedBy)
}

func TestBookingResponse_FromModel(t *testing.T) {
	start := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)

	booking := model.Booking{
		ID:       "b1",
		RoomID:   "room-1",
		RoomName: "Conference Room A",
		Title:    "Standup",
		StartAt:  start,
		EndAt:    start.Add(30 * time.Minute),
		BookedBy: "alice@example.com",
	}

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, "2026-09-01T09:00:00Z", res.Start)
	assert.Equal(t, "2026-09-01T09:30:00Z", res.End)
	assert.Empty(t, res.Description)
	assert.Empty(t, res.BookedFor)
}

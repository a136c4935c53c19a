package model

import (
	"time"

	"huddle/shared/model"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldRoomID    = "room_id"
	FieldRoomName  = "room_name"
	FieldTitle     = "title"
	FieldStartAt   = "start_at"
	FieldEndAt     = "end_at"
	FieldBookedBy  = "booked_by"
	FieldBookedFor = "booked_for"
)

// Booking rows are immutable once inserted; they go away through explicit
// cancellation or the retention purge.
type Booking struct {
	ID          string    `db:"id"`
	RoomID      string    `db:"room_id"`
	RoomName    string    `db:"room_name"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	StartAt     time.Time `db:"start_at"`
	EndAt       time.Time `db:"end_at"`
	BookedBy    string    `db:"booked_by"`
	BookedFor   *string   `db:"booked_for"`
	model.Metadata
}

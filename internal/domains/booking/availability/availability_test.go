package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"huddle/internal/domains/booking/availability"
	"huddle/internal/domains/booking/model"
)

var base = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func at(hours, minutes int) time.Time {
	return base.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}

func booking(id, roomID string, start, end time.Time) model.Booking {
	return model.Booking{
		ID:      id,
		RoomID:  roomID,
		StartAt: start,
		EndAt:   end,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{
			name:   "identical intervals",
			aStart: at(0, 0), aEnd: at(1, 0),
			bStart: at(0, 0), bEnd: at(1, 0),
			want: true,
		},
		{
			name:   "partial overlap from the left",
			aStart: at(0, 0), aEnd: at(1, 0),
			bStart: at(0, 30), bEnd: at(1, 30),
			want: true,
		},
		{
			name:   "partial overlap from the right",
			aStart: at(0, 30), aEnd: at(1, 30),
			bStart: at(0, 0), bEnd: at(1, 0),
			want: true,
		},
		{
			name:   "a contains b",
			aStart: at(0, 0), aEnd: at(2, 0),
			bStart: at(0, 30), bEnd: at(1, 0),
			want: true,
		},
		{
			name:   "b contains a",
			aStart: at(0, 30), aEnd: at(1, 0),
			bStart: at(0, 0), bEnd: at(2, 0),
			want: true,
		},
		{
			name:   "back to back, a before b",
			aStart: at(0, 0), aEnd: at(1, 0),
			bStart: at(1, 0), bEnd: at(2, 0),
			want: false,
		},
		{
			name:   "back to back, b before a",
			aStart: at(1, 0), aEnd: at(2, 0),
			bStart: at(0, 0), bEnd: at(1, 0),
			want: false,
		},
		{
			name:   "fully disjoint",
			aStart: at(0, 0), aEnd: at(1, 0),
			bStart: at(3, 0), bEnd: at(4, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, availability.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestAvailable(t *testing.T) {
	existing := []model.Booking{
		booking("b1", "room-1", at(0, 0), at(1, 0)),
		booking("b2", "room-2", at(0, 0), at(4, 0)),
	}

	tests := []struct {
		name      string
		roomID    string
		start     time.Time
		end       time.Time
		excludeID string
		want      bool
	}{
		{
			name:   "conflicting slot on the same room",
			roomID: "room-1",
			start:  at(0, 30), end: at(1, 30),
			want: false,
		},
		{
			name:   "same slot on another room",
			roomID: "room-3",
			start:  at(0, 30), end: at(1, 30),
			want: true,
		},
		{
			name:   "starts exactly when the existing one ends",
			roomID: "room-1",
			start:  at(1, 0), end: at(2, 0),
			want: true,
		},
		{
			name:   "ends exactly when the existing one starts",
			roomID: "room-1",
			start:  at(-1, 0), end: at(0, 0),
			want: true,
		},
		{
			name:   "equal to the existing booking",
			roomID: "room-1",
			start:  at(0, 0), end: at(1, 0),
			want: false,
		},
		{
			name:      "conflict excluded by booking id",
			roomID:    "room-1",
			start:     at(0, 0),
			end:       at(1, 0),
			excludeID: "b1",
			want:      true,
		},
		{
			name:   "free room with no bookings at all",
			roomID: "room-1",
			start:  at(5, 0), end: at(6, 0),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, availability.Available(tt.roomID, tt.start, tt.end, existing, tt.excludeID))
		})
	}
}

func TestAvailable_EmptySchedule(t *testing.T) {
	assert.True(t, availability.Available("room-1", at(0, 0), at(1, 0), nil, ""))
}

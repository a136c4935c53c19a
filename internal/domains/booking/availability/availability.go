// Package availability holds the conflict predicate for room bookings. All
// intervals are half-open [start, end): a booking ending at 10:00 never
// conflicts with one starting at 10:00.
package availability

import (
	"time"

	"huddle/internal/domains/booking/model"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. The single inequality
// aStart < bEnd && aEnd > bStart covers partial overlap, containment and
// equality, and leaves boundary touches free.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Available reports whether the proposed [start, end) slot on the given room
// is free of conflicts against the existing bookings. Bookings on other
// rooms never conflict. excludeID skips one booking from consideration, for
// re-checks on behalf of that booking itself; pass an empty string to check
// against everything.
func Available(roomID string, start, end time.Time, existing []model.Booking, excludeID string) bool {
	for _, booking := range existing {
		if excludeID != "" && booking.ID == excludeID {
			continue
		}

		if booking.RoomID != roomID {
			continue
		}

		if Overlaps(start, end, booking.StartAt, booking.EndAt) {
			return false
		}
	}

	return true
}

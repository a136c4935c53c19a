package timezone

import (
	"time"
)

// The service stores and compares timestamps in UTC; presentation formats
// whatever the host's date library gives it, per the product scope.
var appLocation = time.UTC

func Now() time.Time {
	return time.Now().In(appLocation)
}

func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return t.In(appLocation).Format(layout)
}

func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

package dateutils

import "time"

// Layouts used by the appointment availability feed
const (
	LayoutFeedDate        = "2006-01-02"
	LayoutFeedHour        = "15"
	LayoutAppointmentTime = "02-01-2006 15:04:05"
)

// FeedDate returns the feed's date partition for the given time
func FeedDate(t time.Time) string {
	return t.Format(LayoutFeedDate)
}

// FeedHour returns the feed's hour partition for the given time. The feed is
// published per UTC hour regardless of the local zone.
func FeedHour(t time.Time) string {
	return t.UTC().Format(LayoutFeedHour)
}

// FormatAppointmentTime renders an epoch-seconds slot timestamp the way the
// notifications display it
func FormatAppointmentTime(epochSeconds int64) string {
	return time.Unix(epochSeconds, 0).UTC().Format(LayoutAppointmentTime)
}

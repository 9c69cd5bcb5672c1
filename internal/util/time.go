package util

import "time"

// Timestamps are persisted as milliseconds since the Unix epoch.

// NowMillis returns the current time in milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// FormatMillis renders a persisted timestamp for display.
func FormatMillis(millis int64) string {
	return time.UnixMilli(millis).Format("2006-01-02 15:04")
}

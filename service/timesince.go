package service

import (
	"fmt"
	"time"
)

// TimeSince renders a timestamp as a rough "n minutes ago" phrase for the
// feed and profile listings. Anything older than four weeks falls back to
// the plain date.
func TimeSince(t, now time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}

	seconds := now.Sub(t).Seconds()

	switch {
	case seconds < 60:
		return fmt.Sprintf("%d seconds ago", int(seconds))
	case seconds < 3600:
		return fmt.Sprintf("%d minutes ago", int(seconds/60))
	case seconds < 86400:
		return fmt.Sprintf("%d hours ago", int(seconds/3600))
	case seconds < 604800:
		return fmt.Sprintf("%d days ago", int(seconds/86400))
	case seconds < 2419200:
		return fmt.Sprintf("%d weeks ago", int(seconds/604800))
	default:
		return t.Format("Jan 02, 2006")
	}
}

package session

import "time"

// IsFresh reports whether a session last active at last is still within
// maxIdle of now. A session with no recorded activity is never fresh.
func IsFresh(last *time.Time, now time.Time, maxIdle time.Duration) bool {
	if last == nil {
		return false
	}
	return now.Sub(*last) <= maxIdle
}

package pantry

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

type ExpirationStatus string

const (
	StatusNone     ExpirationStatus = "none"
	StatusExpired  ExpirationStatus = "expired"
	StatusCritical ExpirationStatus = "critical"
	StatusWarning  ExpirationStatus = "warning"
	StatusGood     ExpirationStatus = "good"
)

// DaysUntil returns ceil((expiration - now) / 1 day) and whether the item
// carries a usable date at all. The date is day-granular; "today" counts
// as 0 days.
func DaysUntil(expirationDate string, now time.Time) (int, bool) {
	if expirationDate == "" {
		return 0, false
	}
	exp, err := time.ParseInLocation(dateLayout, expirationDate, now.Location())
	if err != nil {
		return 0, false
	}
	diff := exp.Sub(now).Hours() / 24
	return int(math.Ceil(diff)), true
}

// Classify is the single source of truth for expiration buckets. Every
// consumer (list, dashboard, analysis, digest) goes through here instead of
// re-deriving thresholds.
func Classify(expirationDate string, now time.Time) ExpirationStatus {
	days, ok := DaysUntil(expirationDate, now)
	switch {
	case !ok:
		return StatusNone
	case days < 0:
		return StatusExpired
	case days <= 3:
		return StatusCritical
	case days <= 7:
		return StatusWarning
	default:
		return StatusGood
	}
}

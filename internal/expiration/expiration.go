// Package expiration buckets inventory items by how many calendar days remain before
// their expiration date.
package expiration

import (
	"time"

	"github.com/conso-maestro/conso-sync/internal/model"
)

const (
	// CriticalMaxDays is the last day count still classified as Critical.
	CriticalMaxDays = 2
	// WarningMaxDays is the last day count still classified as Warning, and the last day
	// count answered with a short notice.
	WarningMaxDays = 4
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// DaysRemaining counts whole calendar days from the date of now (in now's location) to the
// calendar date of expiration. It is negative once the item has expired.
func DaysRemaining(now, expiration time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(expiration.Year(), expiration.Month(), expiration.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (24 * time.Hour))
}

// Classify returns Critical up to and including CriticalMaxDays, Warning up to and
// including WarningMaxDays, Safe beyond.
func Classify(item model.InventoryItem, now time.Time) model.UrgencyLevel {
	return levelFor(DaysRemaining(now, item.ExpirationDate))
}

// SelectResponse returns ShortNotice up to and including WarningMaxDays.
func SelectResponse(item model.InventoryItem, now time.Time) model.ResponseKind {
	return responseFor(DaysRemaining(now, item.ExpirationDate))
}

func levelFor(days int) model.UrgencyLevel {
	switch {
	case days <= CriticalMaxDays:
		return model.Critical
	case days <= WarningMaxDays:
		return model.Warning
	default:
		return model.Safe
	}
}

func responseFor(days int) model.ResponseKind {
	if days <= WarningMaxDays {
		return model.ShortNotice
	}
	return model.LongNotice
}

// ABOUTME: Credential state and usage accounting for a single API key
// ABOUTME: Mutated only by the pool under its lock; exposed read-only via Usage snapshots

package credentials

import (
	"strings"
	"time"
)

// credential holds one API key and its usage counters. Quota windows reset
// lazily: counters are compared against the current UTC day/hour bucket at
// selection and record time rather than by a background timer.
type credential struct {
	id  string
	key string

	totalCalls   int64
	successCalls int64
	failureCalls int64

	callsToday    int64
	callsThisHour int64

	dayStart  time.Time
	hourStart time.Time
	lastUsed  time.Time
}

// rollover resets stale quota windows. Buckets are fixed boundaries (UTC
// midnight, top of the hour), so two credentials created at different times
// still reset together.
func (c *credential) rollover(now time.Time) {
	day := now.UTC().Truncate(24 * time.Hour)
	if !c.dayStart.Equal(day) {
		c.dayStart = day
		c.callsToday = 0
	}

	hour := now.UTC().Truncate(time.Hour)
	if !c.hourStart.Equal(hour) {
		c.hourStart = hour
		c.callsThisHour = 0
	}
}

// eligible reports whether the credential has headroom under both quota
// ceilings. Callers must have applied rollover first.
func (c *credential) eligible(dailyQuota, hourlyQuota int64) bool {
	return c.callsToday < dailyQuota && c.callsThisHour < hourlyQuota
}

// maskKey hides all but the last four characters of an API key for
// observability output.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 4) + key[len(key)-4:]
}

// Usage is a read-only snapshot of one credential's counters.
type Usage struct {
	ID            string     `json:"id"`
	MaskedKey     string     `json:"key"`
	TotalCalls    int64      `json:"total_calls"`
	SuccessCalls  int64      `json:"success_calls"`
	FailureCalls  int64      `json:"failure_calls"`
	CallsToday    int64      `json:"calls_today"`
	CallsThisHour int64      `json:"calls_this_hour"`
	DailyQuota    int64      `json:"daily_quota"`
	HourlyQuota   int64      `json:"hourly_quota"`
	DailyUsedPct  float64    `json:"daily_used_pct"`
	HourlyUsedPct float64    `json:"hourly_used_pct"`
	SuccessRate   float64    `json:"success_rate"`
	LastUsed      *time.Time `json:"last_used,omitempty"`
}

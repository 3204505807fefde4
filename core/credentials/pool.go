// ABOUTME: Credential pool with quota tracking and rotation strategies
// ABOUTME: Select reserves quota atomically so concurrent dispatches never push a key past its ceiling

package credentials

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	coreerrors "yt-data-api/core/errors"
)

// PoolConfig holds construction parameters for a Pool.
type PoolConfig struct {
	// Keys is the ordered list of API keys. Order matters for round-robin
	// and for least-used tie breaking.
	Keys []string

	// Strategy selects the rotation strategy
	Strategy Strategy

	// DailyQuota is the per-credential daily call ceiling
	DailyQuota int64

	// HourlyQuota is the per-credential hourly call ceiling
	HourlyQuota int64
}

// Pool manages a fixed set of credentials. All access goes through Select,
// Record and Stats; credential state is never exposed mutably.
type Pool struct {
	mu          sync.Mutex
	creds       []*credential
	strategy    Strategy
	cursor      int
	dailyQuota  int64
	hourlyQuota int64

	// now is replaceable in tests to drive window rollover
	now func() time.Time
	rng *rand.Rand
}

// NewPool creates a credential pool from the configured keys.
func NewPool(cfg PoolConfig) (*Pool, error) {
	if len(cfg.Keys) == 0 {
		return nil, fmt.Errorf("credential pool requires at least one API key")
	}
	if cfg.DailyQuota <= 0 || cfg.HourlyQuota <= 0 {
		return nil, fmt.Errorf("credential quotas must be positive")
	}

	now := time.Now().UTC()
	creds := make([]*credential, len(cfg.Keys))
	for i, key := range cfg.Keys {
		creds[i] = &credential{
			id:        fmt.Sprintf("key-%d", i+1),
			key:       key,
			dayStart:  now.Truncate(24 * time.Hour),
			hourStart: now.Truncate(time.Hour),
		}
	}

	return &Pool{
		creds:       creds,
		strategy:    cfg.Strategy,
		dailyQuota:  cfg.DailyQuota,
		hourlyQuota: cfg.HourlyQuota,
		now:         time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Lease is a selected credential handed to the caller for one upstream
// attempt. The quota reservation already happened inside Select; the caller
// must call Pool.Record exactly once with the attempt outcome.
type Lease struct {
	cred *credential
}

// ID returns the credential identifier for logging and the request log.
func (l *Lease) ID() string {
	return l.cred.id
}

// Key returns the secret API key value.
func (l *Lease) Key() string {
	return l.cred.key
}

// Select picks an eligible credential and reserves one call against its
// daily and hourly windows in the same critical section. A credential whose
// counters sit at the quota ceiling is never returned; if every credential
// is over either ceiling, Select fails with QuotaExhaustedError.
func (p *Pool) Select() (*Lease, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	for _, c := range p.creds {
		c.rollover(now)
	}

	var chosen *credential
	switch p.strategy {
	case StrategyRoundRobin:
		chosen = p.selectRoundRobin()
	case StrategyLeastUsed:
		chosen = p.selectLeastUsed()
	case StrategyRandom:
		chosen = p.selectRandom()
	}

	if chosen == nil {
		return nil, &coreerrors.QuotaExhaustedError{Credentials: len(p.creds)}
	}

	// Reserve the call now so a concurrent Select cannot hand out the same
	// last unit of headroom twice.
	chosen.callsToday++
	chosen.callsThisHour++

	return &Lease{cred: chosen}, nil
}

// selectRoundRobin returns the next eligible credential at or after the
// cursor. The cursor advances exactly once per successful selection,
// independent of how many ineligible credentials were skipped.
func (p *Pool) selectRoundRobin() *credential {
	n := len(p.creds)
	for i := 0; i < n; i++ {
		idx := (p.cursor + i) % n
		if p.creds[idx].eligible(p.dailyQuota, p.hourlyQuota) {
			p.cursor = (p.cursor + 1) % n
			return p.creds[idx]
		}
	}
	return nil
}

// selectLeastUsed returns the eligible credential with the fewest calls
// today. Ties break by pool order for determinism.
func (p *Pool) selectLeastUsed() *credential {
	var best *credential
	for _, c := range p.creds {
		if !c.eligible(p.dailyQuota, p.hourlyQuota) {
			continue
		}
		if best == nil || c.callsToday < best.callsToday {
			best = c
		}
	}
	return best
}

// selectRandom samples uniformly among eligible credentials.
func (p *Pool) selectRandom() *credential {
	eligible := make([]*credential, 0, len(p.creds))
	for _, c := range p.creds {
		if c.eligible(p.dailyQuota, p.hourlyQuota) {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	return eligible[p.rng.Intn(len(eligible))]
}

// Record registers the outcome of one attempted upstream call. It must be
// called exactly once per lease, for failures as well as successes: failed
// attempts still consume quota in the provider's accounting model.
func (p *Pool) Record(lease *Lease, success bool) {
	if lease == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	c := lease.cred
	c.rollover(now)

	c.totalCalls++
	if success {
		c.successCalls++
	} else {
		c.failureCalls++
	}
	c.lastUsed = now
}

// Size returns the number of credentials in the pool.
func (p *Pool) Size() int {
	return len(p.creds)
}

// Strategy returns the configured rotation strategy.
func (p *Pool) Strategy() Strategy {
	return p.strategy
}

// Stats returns a per-credential usage snapshot. It never mutates counters:
// stale windows are reported as zero without resetting the stored state.
func (p *Pool) Stats() []Usage {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	day := now.UTC().Truncate(24 * time.Hour)
	hour := now.UTC().Truncate(time.Hour)

	usages := make([]Usage, len(p.creds))
	for i, c := range p.creds {
		callsToday := c.callsToday
		if !c.dayStart.Equal(day) {
			callsToday = 0
		}
		callsThisHour := c.callsThisHour
		if !c.hourStart.Equal(hour) {
			callsThisHour = 0
		}

		u := Usage{
			ID:            c.id,
			MaskedKey:     maskKey(c.key),
			TotalCalls:    c.totalCalls,
			SuccessCalls:  c.successCalls,
			FailureCalls:  c.failureCalls,
			CallsToday:    callsToday,
			CallsThisHour: callsThisHour,
			DailyQuota:    p.dailyQuota,
			HourlyQuota:   p.hourlyQuota,
			DailyUsedPct:  percent(callsToday, p.dailyQuota),
			HourlyUsedPct: percent(callsThisHour, p.hourlyQuota),
		}
		if c.totalCalls > 0 {
			u.SuccessRate = percent(c.successCalls, c.totalCalls)
		}
		if !c.lastUsed.IsZero() {
			last := c.lastUsed
			u.LastUsed = &last
		}
		usages[i] = u
	}
	return usages
}

func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// ABOUTME: Request log boundary for recording dispatch outcomes
// ABOUTME: The SQLite implementation lives under infrastructure/requestlog

package interfaces

import "time"

// RequestEntry describes one dispatched operation for the request log.
type RequestEntry struct {
	Operation    string
	Fingerprint  string
	CacheStatus  string
	CredentialID string
	Duration     time.Duration
	Success      bool
	Error        string
	At           time.Time
}

// RequestLog records dispatch outcomes for later inspection.
// Record must never block the dispatch hot path.
type RequestLog interface {
	Record(entry RequestEntry)
}

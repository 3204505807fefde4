// ABOUTME: SQLite-backed request log with a non-blocking write path
// ABOUTME: Entries flow through a buffered channel to one writer goroutine; overflow drops silently

package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"yt-data-api/core/interfaces"
)

const schema = `
CREATE TABLE IF NOT EXISTS requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	at TEXT NOT NULL,
	operation TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	cache_status TEXT NOT NULL,
	credential_id TEXT,
	duration_ms INTEGER NOT NULL,
	success INTEGER NOT NULL,
	error TEXT
);
CREATE INDEX IF NOT EXISTS idx_requests_at ON requests(at);
CREATE INDEX IF NOT EXISTS idx_requests_operation ON requests(operation);
`

// RequestLog implements the RequestLog interface on a local SQLite file.
// Record never blocks the dispatch path: entries go into a buffered channel
// and a full buffer drops the entry instead of waiting.
type RequestLog struct {
	db      *sql.DB
	entries chan interfaces.RequestEntry
	done    chan struct{}
	wg      sync.WaitGroup
	logger  interfaces.Logger

	dropped sync.Once
}

// NewRequestLog opens (or creates) the database file and starts the writer.
func NewRequestLog(path string, bufferSize int, logger interfaces.Logger) (*RequestLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=100")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	rl := &RequestLog{
		db:      db,
		entries: make(chan interfaces.RequestEntry, bufferSize),
		done:    make(chan struct{}),
		logger:  logger,
	}

	rl.wg.Add(1)
	go rl.writer()

	return rl, nil
}

// Record queues one entry for persistence. It returns immediately; when
// the buffer is full the entry is dropped.
func (rl *RequestLog) Record(entry interfaces.RequestEntry) {
	select {
	case rl.entries <- entry:
	default:
		// Warn once per process, otherwise a stuck disk floods the log.
		rl.dropped.Do(func() {
			rl.logger.Warn("request log buffer full, dropping entries", map[string]interface{}{
				"buffer": cap(rl.entries),
			})
		})
	}
}

// Close drains queued entries and closes the database.
func (rl *RequestLog) Close() error {
	close(rl.done)
	rl.wg.Wait()
	return rl.db.Close()
}

func (rl *RequestLog) writer() {
	defer rl.wg.Done()

	for {
		select {
		case entry := <-rl.entries:
			rl.insert(entry)
		case <-rl.done:
			for {
				select {
				case entry := <-rl.entries:
					rl.insert(entry)
				default:
					return
				}
			}
		}
	}
}

func (rl *RequestLog) insert(entry interfaces.RequestEntry) {
	_, err := rl.db.Exec(
		`INSERT INTO requests (at, operation, fingerprint, cache_status, credential_id, duration_ms, success, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.At.Format(time.RFC3339Nano),
		entry.Operation,
		entry.Fingerprint,
		entry.CacheStatus,
		entry.CredentialID,
		entry.Duration.Milliseconds(),
		entry.Success,
		entry.Error,
	)
	if err != nil {
		rl.logger.Error("request log insert failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Summary aggregates the request log for the stats endpoint.
type Summary struct {
	TotalRequests int64            `json:"total_requests"`
	Failures      int64            `json:"failures"`
	CacheHits     int64            `json:"cache_hits"`
	AvgDurationMs float64          `json:"avg_duration_ms"`
	ByOperation   map[string]int64 `json:"by_operation"`
}

// Summarize reports aggregate counters over entries recorded in the last
// window. A zero window covers everything.
func (rl *RequestLog) Summarize(window time.Duration) (*Summary, error) {
	since := ""
	if window > 0 {
		since = time.Now().UTC().Add(-window).Format(time.RFC3339Nano)
	}

	summary := &Summary{ByOperation: make(map[string]int64)}

	row := rl.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN cache_status = 'hit' THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(duration_ms), 0)
		 FROM requests WHERE at >= ?`, since)
	if err := row.Scan(&summary.TotalRequests, &summary.Failures, &summary.CacheHits, &summary.AvgDurationMs); err != nil {
		return nil, err
	}

	rows, err := rl.db.Query(
		`SELECT operation, COUNT(*) FROM requests WHERE at >= ? GROUP BY operation`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var op string
		var count int64
		if err := rows.Scan(&op, &count); err != nil {
			return nil, err
		}
		summary.ByOperation[op] = count
	}
	return summary, rows.Err()
}

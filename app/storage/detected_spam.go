package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ashu-suve/chat/app/storage/engine"
)

// DetectedSpam is a storage for messages rejected by the send gate
type DetectedSpam struct {
	*engine.SQL
	engine.RWLocker
}

// DetectedSpamInfo represents information about a rejected message
type DetectedSpamInfo struct {
	ID          int64     `db:"id" json:"id"`
	Text        string    `db:"text" json:"text"`
	Score       int       `db:"score" json:"score"`
	Timestamp   time.Time `db:"ts" json:"ts"`
	ReasonsJSON string    `db:"reasons" json:"-"`       // stored as json
	Reasons     []string  `db:"-" json:"reasons"`       // not stored in db directly
	Summary     string    `db:"summary" json:"summary"` // result summary, for operators
}

// maxDetectedSpamEntries is the maximum number of entries returned by Read
const maxDetectedSpamEntries = 500

// detected spam command constants
const (
	CmdCreateDetectedSpamTable engine.DBCmd = iota + 300
	CmdCreateDetectedSpamIndexes
	CmdAddDetectedSpam
	CmdReadDetectedSpam
)

var detectedSpamQueries = engine.NewQueryMap().
	Add(CmdCreateDetectedSpamTable, engine.Query{
		Sqlite: `CREATE TABLE IF NOT EXISTS detected_spam (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gid TEXT NOT NULL DEFAULT '',
			text TEXT,
			score INTEGER NOT NULL DEFAULT 0,
			reasons TEXT,
			summary TEXT NOT NULL DEFAULT '',
			ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		Postgres: `CREATE TABLE IF NOT EXISTS detected_spam (
			id SERIAL PRIMARY KEY,
			gid TEXT NOT NULL DEFAULT '',
			text TEXT,
			score INTEGER NOT NULL DEFAULT 0,
			reasons TEXT,
			summary TEXT NOT NULL DEFAULT '',
			ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}).
	AddSame(CmdCreateDetectedSpamIndexes, `CREATE INDEX IF NOT EXISTS idx_detected_spam_gid_ts ON detected_spam(gid, ts)`).
	AddSame(CmdAddDetectedSpam, `INSERT INTO detected_spam (gid, text, score, reasons, summary, ts) VALUES (?, ?, ?, ?, ?, ?)`).
	AddSame(CmdReadDetectedSpam, `SELECT id, text, score, reasons, summary, ts FROM detected_spam
		WHERE gid = ? ORDER BY id DESC LIMIT ?`)

// NewDetectedSpam creates a new DetectedSpam storage
func NewDetectedSpam(ctx context.Context, db *engine.SQL) (*DetectedSpam, error) {
	if err := initTable(ctx, db, "detected_spam", detectedSpamQueries, CmdCreateDetectedSpamTable, CmdCreateDetectedSpamIndexes); err != nil {
		return nil, err
	}
	return &DetectedSpam{SQL: db, RWLocker: db.MakeLock()}, nil
}

// Write adds a new rejected message entry
func (ds *DetectedSpam) Write(ctx context.Context, entry DetectedSpamInfo) error {
	reasons := entry.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	reasonsJSON, err := json.Marshal(reasons)
	if err != nil {
		return fmt.Errorf("failed to marshal reasons: %w", err)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	ds.Lock()
	defer ds.Unlock()

	query, err := detectedSpamQueries.Pick(ds.Type(), CmdAddDetectedSpam)
	if err != nil {
		return fmt.Errorf("failed to get write query: %w", err)
	}
	ts := entry.Timestamp.UTC().Truncate(time.Millisecond)
	if _, err := ds.ExecContext(ctx, query, ds.GID(), entry.Text, entry.Score, string(reasonsJSON), entry.Summary, ts); err != nil {
		return fmt.Errorf("failed to insert detected spam entry: %w", err)
	}

	log.Printf("[INFO] detected spam entry added, score:%d, text:%q", entry.Score, entry.Text)
	return nil
}

// Read returns the latest entries, newest first. Limit is capped by maxDetectedSpamEntries, non-positive means the cap.
func (ds *DetectedSpam) Read(ctx context.Context, limit int) ([]DetectedSpamInfo, error) {
	if limit <= 0 || limit > maxDetectedSpamEntries {
		limit = maxDetectedSpamEntries
	}

	ds.RLock()
	defer ds.RUnlock()

	query, err := detectedSpamQueries.Pick(ds.Type(), CmdReadDetectedSpam)
	if err != nil {
		return nil, fmt.Errorf("failed to get read query: %w", err)
	}
	entries := []DetectedSpamInfo{}
	if err := ds.SelectContext(ctx, &entries, query, ds.GID(), limit); err != nil {
		return nil, fmt.Errorf("failed to get detected spam entries: %w", err)
	}

	for i, entry := range entries {
		var reasons []string
		if err := json.Unmarshal([]byte(entry.ReasonsJSON), &reasons); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reasons for entry %d: %w", entry.ID, err)
		}
		entries[i].Reasons = reasons
		entries[i].Timestamp = entry.Timestamp.UTC()
	}
	return entries, nil
}

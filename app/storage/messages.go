package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ashu-suve/chat/app/storage/engine"
	"github.com/ashu-suve/chat/lib/spamcheck"
)

// Messages is a storage for chat history
type Messages struct {
	*engine.SQL
	engine.RWLocker
}

// Message is a single chat message with its analysis, as shown in the history and exported
type Message struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	IsMe      bool              `json:"isMe"` // sent by the local user, false for system and seed messages
	Timestamp time.Time         `json:"ts"`
	Analysis  spamcheck.Result  `json:"analysis"`
	Verdict   spamcheck.Verdict `json:"label"`
}

// messageRow is a db representation of Message, analysis and verdict stored as json
type messageRow struct {
	ID        string    `db:"id"`
	Text      string    `db:"text"`
	IsMe      bool      `db:"is_me"`
	Timestamp time.Time `db:"ts"`
	Analysis  string    `db:"analysis"`
	Verdict   string    `db:"verdict"`
}

// messages-related command constants
const (
	CmdCreateMessagesTable engine.DBCmd = iota + 100
	CmdCreateMessagesIndexes
	CmdAddMessage
	CmdListMessages
	CmdCountMessages
	CmdClearMessages
)

var messagesQueries = engine.NewQueryMap().
	Add(CmdCreateMessagesTable, engine.Query{
		Sqlite: `CREATE TABLE IF NOT EXISTS messages (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			gid TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			is_me BOOLEAN NOT NULL DEFAULT 0,
			ts TIMESTAMP NOT NULL,
			analysis TEXT NOT NULL,
			verdict TEXT NOT NULL,
			UNIQUE(gid, id)
		)`,
		Postgres: `CREATE TABLE IF NOT EXISTS messages (
			seq SERIAL PRIMARY KEY,
			id TEXT NOT NULL,
			gid TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			is_me BOOLEAN NOT NULL DEFAULT false,
			ts TIMESTAMP NOT NULL,
			analysis TEXT NOT NULL,
			verdict TEXT NOT NULL,
			UNIQUE(gid, id)
		)`,
	}).
	AddSame(CmdCreateMessagesIndexes, `CREATE INDEX IF NOT EXISTS idx_messages_gid_seq ON messages(gid, seq)`).
	AddSame(CmdAddMessage, `INSERT INTO messages (id, gid, text, is_me, ts, analysis, verdict) VALUES (?, ?, ?, ?, ?, ?, ?)`).
	AddSame(CmdListMessages, `SELECT id, text, is_me, ts, analysis, verdict FROM messages WHERE gid = ? ORDER BY seq`).
	AddSame(CmdCountMessages, `SELECT COUNT(*) FROM messages WHERE gid = ?`).
	AddSame(CmdClearMessages, `DELETE FROM messages WHERE gid = ?`)

// NewMessages creates a new Messages storage
func NewMessages(ctx context.Context, db *engine.SQL) (*Messages, error) {
	if err := initTable(ctx, db, "messages", messagesQueries, CmdCreateMessagesTable, CmdCreateMessagesIndexes); err != nil {
		return nil, err
	}
	return &Messages{SQL: db, RWLocker: db.MakeLock()}, nil
}

// Add appends a message to the history
func (m *Messages) Add(ctx context.Context, msg Message) error {
	if msg.ID == "" {
		return fmt.Errorf("message id is empty")
	}
	analysis, err := json.Marshal(msg.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	verdict, err := json.Marshal(msg.Verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	m.Lock()
	defer m.Unlock()

	query, err := messagesQueries.Pick(m.Type(), CmdAddMessage)
	if err != nil {
		return fmt.Errorf("failed to get add query: %w", err)
	}
	ts := msg.Timestamp.UTC().Truncate(time.Millisecond)
	if _, err := m.ExecContext(ctx, query, msg.ID, m.GID(), msg.Text, msg.IsMe, ts, string(analysis), string(verdict)); err != nil {
		return fmt.Errorf("failed to insert message %s: %w", msg.ID, err)
	}
	return nil
}

// List returns all messages, oldest first
func (m *Messages) List(ctx context.Context) ([]Message, error) {
	m.RLock()
	defer m.RUnlock()

	query, err := messagesQueries.Pick(m.Type(), CmdListMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to get list query: %w", err)
	}
	var rows []messageRow
	if err := m.SelectContext(ctx, &rows, query, m.GID()); err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	res := make([]Message, 0, len(rows))
	for _, r := range rows {
		msg := Message{ID: r.ID, Text: r.Text, IsMe: r.IsMe, Timestamp: r.Timestamp.UTC()}
		if err := json.Unmarshal([]byte(r.Analysis), &msg.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis of message %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(r.Verdict), &msg.Verdict); err != nil {
			return nil, fmt.Errorf("failed to unmarshal verdict of message %s: %w", r.ID, err)
		}
		res = append(res, msg)
	}
	return res, nil
}

// Count returns the number of messages in the history
func (m *Messages) Count(ctx context.Context) (int, error) {
	m.RLock()
	defer m.RUnlock()

	query, err := messagesQueries.Pick(m.Type(), CmdCountMessages)
	if err != nil {
		return 0, fmt.Errorf("failed to get count query: %w", err)
	}
	var count int
	if err := m.GetContext(ctx, &count, query, m.GID()); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// Clear removes all messages of the chat
func (m *Messages) Clear(ctx context.Context) error {
	m.Lock()
	defer m.Unlock()

	query, err := messagesQueries.Pick(m.Type(), CmdClearMessages)
	if err != nil {
		return fmt.Errorf("failed to get clear query: %w", err)
	}
	if _, err := m.ExecContext(ctx, query, m.GID()); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}

// Export writes all messages as an indented json array
func (m *Messages) Export(ctx context.Context, w io.Writer) error {
	msgs, err := m.List(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

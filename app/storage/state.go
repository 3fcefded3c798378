package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ashu-suve/chat/app/storage/engine"
)

// BlockedKey is the state key of the sender block flag
const BlockedKey = "spam_chat_blocked_v1"

// State is a key-value storage for the chat state, values stored as json
type State struct {
	*engine.SQL
	engine.RWLocker
}

type blockedValue struct {
	Blocked bool `json:"blocked"`
}

// state-related command constants
const (
	CmdCreateStateTable engine.DBCmd = iota + 200
	CmdCreateStateIndexes
	CmdGetState
	CmdSetState
)

var stateQueries = engine.NewQueryMap().
	AddSame(CmdCreateStateTable, `CREATE TABLE IF NOT EXISTS chat_state (
		gid TEXT NOT NULL DEFAULT '',
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (gid, key)
	)`).
	AddSame(CmdCreateStateIndexes, `CREATE INDEX IF NOT EXISTS idx_chat_state_gid ON chat_state(gid)`).
	AddSame(CmdGetState, `SELECT value FROM chat_state WHERE gid = ? AND key = ?`).
	AddSame(CmdSetState, `INSERT INTO chat_state (gid, key, value) VALUES (?, ?, ?)
		ON CONFLICT (gid, key) DO UPDATE SET value = excluded.value`)

// NewState creates a new State storage
func NewState(ctx context.Context, db *engine.SQL) (*State, error) {
	if err := initTable(ctx, db, "chat_state", stateQueries, CmdCreateStateTable, CmdCreateStateIndexes); err != nil {
		return nil, err
	}
	return &State{SQL: db, RWLocker: db.MakeLock()}, nil
}

// Blocked returns the sender block flag. Missing or unreadable value means not blocked.
func (s *State) Blocked(ctx context.Context) (bool, error) {
	raw, err := s.get(ctx, BlockedKey)
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	var v blockedValue
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("[WARN] unreadable %s value %q, treated as not blocked: %v", BlockedKey, raw, err)
		return false, nil
	}
	return v.Blocked, nil
}

// SetBlocked sets the sender block flag
func (s *State) SetBlocked(ctx context.Context, blocked bool) error {
	data, err := json.Marshal(blockedValue{Blocked: blocked})
	if err != nil {
		return fmt.Errorf("failed to marshal block flag: %w", err)
	}
	return s.set(ctx, BlockedKey, string(data))
}

// get returns raw value of the key, empty string if not found
func (s *State) get(ctx context.Context, key string) (string, error) {
	s.RLock()
	defer s.RUnlock()

	query, err := stateQueries.Pick(s.Type(), CmdGetState)
	if err != nil {
		return "", fmt.Errorf("failed to get state query: %w", err)
	}
	var value string
	if err := s.GetContext(ctx, &value, query, s.GID(), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get state %s: %w", key, err)
	}
	return value, nil
}

func (s *State) set(ctx context.Context, key, value string) error {
	s.Lock()
	defer s.Unlock()

	query, err := stateQueries.Pick(s.Type(), CmdSetState)
	if err != nil {
		return fmt.Errorf("failed to get state query: %w", err)
	}
	if _, err := s.ExecContext(ctx, query, s.GID(), key, value); err != nil {
		return fmt.Errorf("failed to set state %s: %w", key, err)
	}
	return nil
}

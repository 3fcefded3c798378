// Package storage provides persistence of the chat: message history, block flag state and the log of rejected spam.
// All types work on top of engine.SQL, so both sqlite and postgres are supported, and every table is scoped by
// the engine's group id. Each table is represented by a struct with methods implementing business logic for this data.
package storage

import (
	"context"
	"fmt"

	"github.com/ashu-suve/chat/app/storage/engine"
)

// initTable creates table with indexes, queries taken from the map
func initTable(ctx context.Context, db *engine.SQL, name string, queries *engine.QueryMap, create, indexes engine.DBCmd) error {
	if db == nil {
		return fmt.Errorf("db connection is nil")
	}
	cfg := engine.TableConfig{Name: name, CreateTable: create, CreateIndexes: indexes, QueriesMap: queries}
	if err := engine.InitTable(ctx, db, cfg); err != nil {
		return fmt.Errorf("failed to init %s table: %w", name, err)
	}
	return nil
}

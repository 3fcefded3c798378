package storage

import (
	"context"
	"testing"

	"github.com/go-pkgz/testutils/containers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashu-suve/chat/app/storage/engine"
)

// engineProvider defines a function type that provides a test database engine
type engineProvider func(t *testing.T, ctx context.Context, gid string) (db *engine.SQL, teardown func())

// database providers for each supported engine
var providers = map[string]engineProvider{
	"sqlite": func(t *testing.T, _ context.Context, gid string) (*engine.SQL, func()) {
		db, err := engine.NewSqlite(":memory:", gid)
		require.NoError(t, err)
		return db, func() { db.Close() }
	},
	"postgres": func(t *testing.T, ctx context.Context, gid string) (*engine.SQL, func()) {
		if testing.Short() {
			t.Skip("skipping postgres test in short mode")
		}
		pg := containers.NewPostgresTestContainerWithDB(ctx, t, "chat_test")
		db, err := engine.NewPostgres(ctx, pg.ConnectionString(), gid)
		require.NoError(t, err)
		return db, func() {
			db.Close()
			assert.NoError(t, pg.Close(ctx))
		}
	},
}

// forEachEngine runs the test function for every database provider
func forEachEngine(t *testing.T, fn func(t *testing.T, db *engine.SQL)) {
	for name, provider := range providers {
		t.Run(name, func(t *testing.T) {
			db, teardown := provider(t, context.Background(), "gr1")
			defer teardown()
			fn(t, db)
		})
	}
}

func TestInitTable_NilDB(t *testing.T) {
	_, err := NewMessages(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db connection is nil")

	_, err = NewState(context.Background(), nil)
	require.Error(t, err)

	_, err = NewDetectedSpam(context.Background(), nil)
	require.Error(t, err)
}

func TestTables_Reopen(t *testing.T) {
	forEachEngine(t, func(t *testing.T, db *engine.SQL) {
		ctx := context.Background()
		for i := 0; i < 2; i++ {
			_, err := NewMessages(ctx, db)
			require.NoError(t, err)
			_, err = NewState(ctx, db)
			require.NoError(t, err)
			_, err = NewDetectedSpam(ctx, db)
			require.NoError(t, err)
		}
	})
}

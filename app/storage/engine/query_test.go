package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryMap(t *testing.T) {
	qmap := NewQueryMap().
		Add(1, Query{
			Sqlite:   "CREATE TABLE t (id INTEGER PRIMARY KEY AUTOINCREMENT)",
			Postgres: "CREATE TABLE t (id SERIAL PRIMARY KEY)",
		}).
		AddSame(2, "INSERT INTO t (gid, text) VALUES (?, ?)")

	tests := []struct {
		name    string
		dbType  Type
		cmd     DBCmd
		want    string
		wantErr string
	}{
		{name: "sqlite explicit", dbType: Sqlite, cmd: 1, want: "CREATE TABLE t (id INTEGER PRIMARY KEY AUTOINCREMENT)"},
		{name: "postgres explicit", dbType: Postgres, cmd: 1, want: "CREATE TABLE t (id SERIAL PRIMARY KEY)"},
		{name: "sqlite same", dbType: Sqlite, cmd: 2, want: "INSERT INTO t (gid, text) VALUES (?, ?)"},
		{name: "postgres same adopted", dbType: Postgres, cmd: 2, want: "INSERT INTO t (gid, text) VALUES ($1, $2)"},
		{name: "unknown db type", dbType: Unknown, cmd: 1, wantErr: "unsupported database type"},
		{name: "unknown command", dbType: Sqlite, cmd: 99, wantErr: "unsupported command type 99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := qmap.Pick(tt.dbType, tt.cmd)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryMap_Override(t *testing.T) {
	qmap := NewQueryMap().AddSame(1, "SELECT 1").AddSame(1, "SELECT 2")
	got, err := qmap.Pick(Sqlite, 1)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2", got)
}

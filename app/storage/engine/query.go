package engine

import "fmt"

// DBCmd is a storage command, each command has a query per database engine
type DBCmd int

// Query is a statement with sqlite and postgres variants
type Query struct {
	Sqlite   string
	Postgres string
}

// QueryMap maps storage commands to their statements
type QueryMap struct {
	queries map[DBCmd]Query
}

// NewQueryMap makes an empty QueryMap
func NewQueryMap() *QueryMap {
	return &QueryMap{queries: make(map[DBCmd]Query)}
}

// Add sets explicit per-engine statements for a command
func (q *QueryMap) Add(cmd DBCmd, query Query) *QueryMap {
	q.queries[cmd] = query
	return q
}

// AddSame sets a statement written with "?" placeholders for all engines.
// The postgres variant gets "$N" placeholders.
func (q *QueryMap) AddSame(cmd DBCmd, query string) *QueryMap {
	return q.Add(cmd, Query{Sqlite: query, Postgres: (&SQL{dbType: Postgres}).Adopt(query)})
}

// Pick returns the statement of a command for the engine type
func (q *QueryMap) Pick(dbType Type, cmd DBCmd) (string, error) {
	query, ok := q.queries[cmd]
	if !ok {
		return "", fmt.Errorf("unsupported command type %d", cmd)
	}

	switch dbType {
	case Sqlite:
		return query.Sqlite, nil
	case Postgres:
		return query.Postgres, nil
	}
	return "", fmt.Errorf("unsupported database type %q", dbType)
}

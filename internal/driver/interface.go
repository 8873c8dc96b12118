package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphDriver is the Bolt-speaking database used to persist context graph
// snapshots (Memgraph or Neo4j).
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	// ExecuteWrite runs fn inside one write transaction. Nothing fn ran is
	// committed if it returns an error.
	ExecuteWrite(ctx context.Context, fn func(tx Tx) error) error
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}

// Tx runs statements inside an open transaction.
type Tx interface {
	Run(ctx context.Context, query string, params map[string]interface{}) error
}

package store

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/versorium/internal/driver"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

// MockDriver records committed statements in Executed. Statements run in a
// write transaction are only recorded if the transaction commits.
type MockDriver struct {
	Executed   []executedQuery
	Results    map[string]neo4j.EagerResult // keyed by query text
	Err        error
	FailOn     map[string]error // per-query failures, keyed by query text
	RolledBack int
	Closed     bool
}

func (m *MockDriver) run(query string) error {
	if m.Err != nil {
		return m.Err
	}
	return m.FailOn[query]
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	if err := m.run(query); err != nil {
		return neo4j.EagerResult{}, err
	}
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	return m.Results[query], nil
}

func (m *MockDriver) ExecuteWrite(ctx context.Context, fn func(tx driver.Tx) error) error {
	tx := &mockTx{driver: m}
	if err := fn(tx); err != nil {
		m.RolledBack++
		return err
	}
	m.Executed = append(m.Executed, tx.pending...)
	return nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

type mockTx struct {
	driver  *MockDriver
	pending []executedQuery
}

func (t *mockTx) Run(ctx context.Context, query string, params map[string]interface{}) error {
	if err := t.driver.run(query); err != nil {
		return err
	}
	t.pending = append(t.pending, executedQuery{Query: query, Params: params})
	return nil
}

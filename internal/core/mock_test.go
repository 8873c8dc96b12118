package core

import (
	"context"

	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/store"
)

type MockStore struct {
	Saved   *model.GraphSnapshot
	ToLoad  model.GraphSnapshot
	LoadErr error
	SaveErr error
	Closed  bool
}

func (m *MockStore) Save(ctx context.Context, snap model.GraphSnapshot) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = &snap
	return nil
}

func (m *MockStore) Load(ctx context.Context) (model.GraphSnapshot, error) {
	if m.LoadErr != nil {
		return model.GraphSnapshot{}, m.LoadErr
	}
	return m.ToLoad, nil
}

func (m *MockStore) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

var _ store.Store = (*MockStore)(nil)

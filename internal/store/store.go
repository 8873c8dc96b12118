// Package store persists context graph snapshots. The graph itself stays
// in memory; a Store only sees copies taken by the manager.
package store

import (
	"context"
	"errors"

	"github.com/agenthands/versorium/internal/core/model"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("store: no snapshot saved")

type Store interface {
	Save(ctx context.Context, snap model.GraphSnapshot) error
	Load(ctx context.Context) (model.GraphSnapshot, error)
	Close(ctx context.Context) error
}

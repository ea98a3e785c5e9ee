// Package audit implements the tick resolver's persistence boundary
// (§4.6, §6.2): an abstract Repository collaborator plus a Postgres
// and a SQLite implementation. The resolver itself never imports a
// driver directly — it depends only on the Repository interface, so
// swapping backends never touches resolution code.
package audit

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"github.com/darkhorsekelly/mesh/pkg/models"
)

// json is the codec every audit implementation uses to serialize
// World/Action payloads into the JSON columns described in §6.2,
// matching the wire codec the transport layer uses (internal/transport).
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Repository is the resolver's abstract persistence collaborator
// (§4.6). Implementations MUST make SaveTick atomic and must make
// re-reading any already-persisted tick idempotent.
type Repository interface {
	GetLatestTick(ctx context.Context) (uint64, error)
	LoadState(ctx context.Context, tick uint64) (*models.World, error)
	LoadActions(ctx context.Context, tick uint64) ([]models.Action, error)
	LoadPendingActions(ctx context.Context, tick uint64) ([]models.Action, error)
	SavePendingAction(ctx context.Context, tick uint64, action models.Action) error
	CommitPendingActions(ctx context.Context, pendingTick, executedTick uint64) error
	SaveTick(ctx context.Context, state models.World, actions []models.Action) error
	Close() error
}

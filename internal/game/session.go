// Package game owns the single-writer-per-game concurrency model (§5):
// a Session serializes every tick execution against one game's state
// and repository behind a mutex, so resolveTick's purity guarantee
// extends to "at most one caller observes or advances this game at a
// time" at the process level.
package game

import (
	"context"
	"sync"
	"time"

	"github.com/darkhorsekelly/mesh/internal/audit"
	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/internal/meshrr"
	"github.com/darkhorsekelly/mesh/internal/telemetry"
	"github.com/darkhorsekelly/mesh/internal/tick"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// Session wraps one game's authoritative state and repository. Every
// exported method takes the session's mutex for its whole body;
// resolveTick itself is synchronous and compute-only (§5), so the
// critical section is bounded by CPU work plus the repository writes
// the method makes (two for ExecuteTick: SaveTick, then
// CommitPendingActions).
type Session struct {
	mu       sync.Mutex
	repo     audit.Repository
	store    *config.Store
	state    models.World
	pending  []models.Action
}

// NewSession constructs a session over an already-loaded world and
// repository handle.
func NewSession(repo audit.Repository, store *config.Store, initial models.World) *Session {
	return &Session{repo: repo, store: store, state: initial}
}

// Snapshot returns a read-only copy of the current state and its
// pending (not-yet-executed) actions, safe to hand to a broadcaster.
func (s *Session) Snapshot() (models.World, []models.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := append([]models.Action(nil), s.pending...)
	return s.state.Clone(), pending
}

// QueueAction attaches action to the next tick and persists it as
// pending before acknowledging, so a crash between queue and tick
// never silently drops a player's intent.
func (s *Session) QueueAction(ctx context.Context, action models.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	targetTick := s.state.Tick + 1
	if err := s.repo.SavePendingAction(ctx, targetTick, action); err != nil {
		return meshrr.Wrap(meshrr.KindPersistenceFail, "failed to persist pending action", err)
	}
	s.pending = append(s.pending, action)
	return nil
}

// ExecuteTick resolves every pending action against the current state
// and, only if the repository write succeeds, advances the session to
// the new state. A persistence failure leaves state and pending
// actions entirely unchanged (§7 PersistenceFail).
func (s *Session) ExecuteTick(ctx context.Context) (models.World, []models.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pendingTick := s.state.Tick + 1
	actions := append([]models.Action(nil), s.pending...)

	timer := prometheusTimer()
	defer timer()

	nextState, metrics := tick.Resolve(s.state, actions, s.store.Current(), tick.Options{})
	recordClusterMetrics(metrics)

	if err := s.repo.SaveTick(ctx, nextState, actions); err != nil {
		telemetry.PersistenceFailuresTotal.Inc()
		return models.World{}, nil, meshrr.Wrap(meshrr.KindPersistenceFail, "failed to save tick", err)
	}
	if err := s.repo.CommitPendingActions(ctx, pendingTick, nextState.Tick); err != nil {
		telemetry.PersistenceFailuresTotal.Inc()
		return models.World{}, nil, meshrr.Wrap(meshrr.KindPersistenceFail, "failed to commit pending actions", err)
	}

	s.state = nextState
	s.pending = nil

	return s.state.Clone(), nil, nil
}

func prometheusTimer() func() {
	start := time.Now()
	return func() {
		telemetry.TickDuration.Observe(time.Since(start).Seconds())
	}
}

func recordClusterMetrics(m tick.Metrics) {
	telemetry.WaveCount.Observe(float64(len(m.Waves)))
	for _, w := range m.Waves {
		for _, c := range w.Clusters {
			switch {
			case c.IsStalemate:
				telemetry.ClusterOutcomesTotal.WithLabelValues("stalemate").Inc()
			case c.BudgetExceeded:
				telemetry.ClusterOutcomesTotal.WithLabelValues("budget_exceeded").Inc()
			default:
				telemetry.ClusterOutcomesTotal.WithLabelValues("resolved").Inc()
			}
		}
	}
}

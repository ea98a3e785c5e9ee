// Package config loads and hot-reloads the resolver's tunable
// constants. Every named constant spec.md's action handlers and
// conflict resolver depend on, except THRUST's fixed
// handlers.MinimumFuelThreshold, lives here, loaded from YAML and passed
// into the resolver explicitly via TickContext/resolver options — never
// read from a package-level global — so resolveTick stays a pure
// function of its arguments.
package config

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Tunables holds every constant named in the action-handler and
// conflict-resolver specification except the minimum-fuel threshold,
// which is the fixed constant handlers.MinimumFuelThreshold.
type Tunables struct {
	MaxThrustPerTick     int64 `yaml:"maxThrustPerTick"`
	FuelBurnRate         int64 `yaml:"fuelBurnRate"`       // FP ratio, scale 1000 == 1.0
	MassPropulsionLoss   int64 `yaml:"massPropulsionLoss"` // FP ratio
	RefineMaxBatch       int64 `yaml:"refineMaxBatch"`
	RefineEfficiency     int64 `yaml:"refineEfficiency"` // FP ratio
	PermThreshold        int   `yaml:"permThreshold"`
	PermTimeBudgetMillis int64 `yaml:"permTimeBudgetMillis"`
}

// PermTimeBudget returns the permutation-search time budget as a
// time.Duration.
func (t Tunables) PermTimeBudget() time.Duration {
	return time.Duration(t.PermTimeBudgetMillis) * time.Millisecond
}

// Defaults mirrors the worked examples in spec.md §8's scenarios.
func Defaults() Tunables {
	return Tunables{
		MaxThrustPerTick:     100_000,
		FuelBurnRate:         1000,
		MassPropulsionLoss:   1000,
		RefineMaxBatch:       1_000_000,
		RefineEfficiency:     800,
		PermThreshold:        6,
		PermTimeBudgetMillis: 50,
	}
}

// Store holds the current Tunables and lets a background watcher swap
// them atomically. Reads never block a concurrent reload.
type Store struct {
	mu   sync.RWMutex
	cur  Tunables
	path string
}

// NewStore loads Tunables from path, falling back to Defaults() if the
// file does not exist — matching the teacher's "safe default for
// non-secret settings" convention in cmd/engine/main.go.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, cur: Defaults()}
	if path == "" {
		return s, nil
	}
	if err := s.reload(); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	return s, nil
}

// Current returns a snapshot of the tunables in effect right now.
func (s *Store) Current() Tunables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	next := Defaults()
	if err := yaml.Unmarshal(data, &next); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = next
	s.mu.Unlock()
	return nil
}

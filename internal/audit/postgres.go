package audit

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darkhorsekelly/mesh/pkg/models"
)

// PostgresRepository implements Repository on top of pgx, following
// the pool-plus-transaction pattern the rest of this codebase's
// database access already uses.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pooled connection and verifies it with a
// ping before returning, so a misconfigured DSN fails fast at startup
// rather than on the first query.
func ConnectPostgres(connStr string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	log.Println("[audit] connected to postgres")
	return &PostgresRepository{pool: pool}, nil
}

// InitSchema applies the DDL in schema/postgres.sql. Safe to call on every
// startup: every statement is CREATE ... IF NOT EXISTS.
func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, postgresSchema)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetLatestTick(ctx context.Context) (uint64, error) {
	var tick uint64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM ticks`).Scan(&tick)
	return tick, err
}

func (r *PostgresRepository) LoadState(ctx context.Context, tick uint64) (*models.World, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM state_snapshots WHERE tick_id = $1`, tick).Scan(&data)
	if err != nil {
		return nil, nil
	}
	var w models.World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode state snapshot: %w", err)
	}
	return &w, nil
}

func (r *PostgresRepository) LoadActions(ctx context.Context, tick uint64) ([]models.Action, error) {
	return r.loadActionsFromTable(ctx, "actions", tick)
}

func (r *PostgresRepository) LoadPendingActions(ctx context.Context, tick uint64) ([]models.Action, error) {
	return r.loadActionsFromTable(ctx, "pending_actions", tick)
}

func (r *PostgresRepository) loadActionsFromTable(ctx context.Context, table string, tick uint64) ([]models.Action, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE tick_id = $1 ORDER BY action_id`, table)
	rows, err := r.pool.Query(ctx, query, tick)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []models.Action
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var a models.Action
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, fmt.Errorf("failed to decode action payload: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *PostgresRepository) SavePendingAction(ctx context.Context, tick uint64, action models.Action) error {
	payload, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("failed to encode action payload: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO pending_actions (tick_id, action_id, controller_id, entity_id, action_type, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tick_id, action_id) DO UPDATE
		SET payload = EXCLUDED.payload`,
		tick, action.ID, action.PlayerID, action.EntityID, string(action.Kind), payload)
	return err
}

// CommitPendingActions moves every pending_actions row for pendingTick
// into the historical actions table under executedTick, inside a
// single transaction.
func (r *PostgresRepository) CommitPendingActions(ctx context.Context, pendingTick, executedTick uint64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO actions (tick_id, action_id, controller_id, entity_id, action_type, payload)
		SELECT $2, action_id, controller_id, entity_id, action_type, payload
		FROM pending_actions WHERE tick_id = $1
		ON CONFLICT (tick_id, action_id) DO NOTHING`, pendingTick, executedTick)
	if err != nil {
		return fmt.Errorf("failed to migrate pending actions: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM pending_actions WHERE tick_id = $1`, pendingTick)
	if err != nil {
		return fmt.Errorf("failed to clear pending actions: %w", err)
	}

	return tx.Commit(ctx)
}

// SaveTick atomically records a resolved tick: the tick row, every
// executed action, and the resulting state snapshot. All three writes
// commit together or not at all (§4.6).
func (r *PostgresRepository) SaveTick(ctx context.Context, state models.World, actions []models.Action) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `INSERT INTO ticks (id, timestamp) VALUES ($1, NOW()) ON CONFLICT (id) DO NOTHING`, state.Tick); err != nil {
		return fmt.Errorf("failed to insert tick row: %w", err)
	}

	for _, a := range actions {
		payload, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("failed to encode action payload: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO actions (tick_id, action_id, controller_id, entity_id, action_type, payload)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (tick_id, action_id) DO NOTHING`,
			state.Tick, a.ID, a.PlayerID, a.EntityID, string(a.Kind), payload); err != nil {
			return fmt.Errorf("failed to insert action: %w", err)
		}
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state snapshot: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO state_snapshots (tick_id, data) VALUES ($1, $2)
		ON CONFLICT (tick_id) DO UPDATE SET data = EXCLUDED.data`, state.Tick, data); err != nil {
		return fmt.Errorf("failed to insert state snapshot: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

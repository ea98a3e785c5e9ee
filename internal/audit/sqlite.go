package audit

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/darkhorsekelly/mesh/pkg/models"
)

// SQLiteRepository implements Repository on modernc.org/sqlite, the
// pure-Go driver this codebase uses for local and single-process
// deployments where a Postgres cluster is overkill.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if absent) the database at path, enables
// write-ahead logging per §6.2's recommendation, and applies the
// schema.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) GetLatestTick(ctx context.Context) (uint64, error) {
	var tick uint64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM ticks`).Scan(&tick)
	return tick, err
}

func (r *SQLiteRepository) LoadState(ctx context.Context, tick uint64) (*models.World, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM state_snapshots WHERE tick_id = ?`, tick).Scan(&data)
	if err != nil {
		return nil, nil
	}
	var w models.World
	if err := json.UnmarshalFromString(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode state snapshot: %w", err)
	}
	return &w, nil
}

func (r *SQLiteRepository) LoadActions(ctx context.Context, tick uint64) ([]models.Action, error) {
	return r.loadActionsFromTable(ctx, "actions", tick)
}

func (r *SQLiteRepository) LoadPendingActions(ctx context.Context, tick uint64) ([]models.Action, error) {
	return r.loadActionsFromTable(ctx, "pending_actions", tick)
}

func (r *SQLiteRepository) loadActionsFromTable(ctx context.Context, table string, tick uint64) ([]models.Action, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE tick_id = ? ORDER BY action_id`, table)
	rows, err := r.db.QueryContext(ctx, query, tick)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []models.Action
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var a models.Action
		if err := json.UnmarshalFromString(payload, &a); err != nil {
			return nil, fmt.Errorf("failed to decode action payload: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *SQLiteRepository) SavePendingAction(ctx context.Context, tick uint64, action models.Action) error {
	payload, err := json.MarshalToString(action)
	if err != nil {
		return fmt.Errorf("failed to encode action payload: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pending_actions (tick_id, action_id, controller_id, entity_id, action_type, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (tick_id, action_id) DO UPDATE SET payload = excluded.payload`,
		tick, action.ID, action.PlayerID, action.EntityID, string(action.Kind), payload)
	return err
}

func (r *SQLiteRepository) CommitPendingActions(ctx context.Context, pendingTick, executedTick uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO actions (tick_id, action_id, controller_id, entity_id, action_type, payload)
		SELECT ?, action_id, controller_id, entity_id, action_type, payload
		FROM pending_actions WHERE tick_id = ?`, executedTick, pendingTick); err != nil {
		return fmt.Errorf("failed to migrate pending actions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_actions WHERE tick_id = ?`, pendingTick); err != nil {
		return fmt.Errorf("failed to clear pending actions: %w", err)
	}
	return tx.Commit()
}

func (r *SQLiteRepository) SaveTick(ctx context.Context, state models.World, actions []models.Action) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO ticks (id) VALUES (?)`, state.Tick); err != nil {
		return fmt.Errorf("failed to insert tick row: %w", err)
	}

	for _, a := range actions {
		payload, err := json.MarshalToString(a)
		if err != nil {
			return fmt.Errorf("failed to encode action payload: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO actions (tick_id, action_id, controller_id, entity_id, action_type, payload)
			VALUES (?, ?, ?, ?, ?, ?)`,
			state.Tick, a.ID, a.PlayerID, a.EntityID, string(a.Kind), payload); err != nil {
			return fmt.Errorf("failed to insert action: %w", err)
		}
	}

	data, err := json.MarshalToString(state)
	if err != nil {
		return fmt.Errorf("failed to encode state snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO state_snapshots (tick_id, data) VALUES (?, ?)
		ON CONFLICT (tick_id) DO UPDATE SET data = excluded.data`, state.Tick, data); err != nil {
		return fmt.Errorf("failed to insert state snapshot: %w", err)
	}

	return tx.Commit()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

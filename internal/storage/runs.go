package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID        int64
	GameID    string
	Seed      int64
	Pilot     string
	Frames    uint64
	Score     int
	Best      int
	Mode      string
	Commands  int
	StartedAt time.Time
	CreatedAt time.Time
}

// RunStats contains aggregated statistics over all recorded runs.
type RunStats struct {
	Runs       int
	Best       int
	AvgBest    float64
	TotalTicks int64
}

// SaveRun records a finished session and its command stream in one
// transaction. Returns the ID of the inserted run.
func (s *Store) SaveRun(gameID string, rec *sim.Recording) (int64, error) {
	cfgYAML, err := rec.Config.YAML()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode config: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (game_id, seed, pilot, config_yaml, frames, score, best, mode, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, rec.Seed, rec.Pilot, string(cfgYAML), int64(rec.Frames),
		rec.Score, rec.Best, rec.Mode.String(), rec.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO run_commands (run_id, seq, frame, command) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare command insert: %w", err)
	}
	defer stmt.Close()

	for i, ev := range rec.Events {
		if _, err := stmt.Exec(id, i, int64(ev.Frame), ev.Command.String()); err != nil {
			return 0, fmt.Errorf("storage: cannot save command %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// Runs lists the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.game_id, r.seed, r.pilot, r.frames, r.score, r.best, r.mode,
		        r.started_at, r.created_at,
		        (SELECT COUNT(*) FROM run_commands c WHERE c.run_id = r.id)
		 FROM runs r
		 ORDER BY r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var frames int64
		var startedAt, createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Seed, &r.Pilot, &frames, &r.Score, &r.Best, &r.Mode,
			&startedAt, &createdAt, &r.Commands); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Frames = uint64(frames)
		r.StartedAt = parseTimestamp(startedAt)
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// LoadRun rebuilds the recording stored under id.
func (s *Store) LoadRun(id int64) (*sim.Recording, error) {
	var (
		rec       sim.Recording
		cfgYAML   string
		frames    int64
		mode      string
		startedAt any
	)

	err := s.db.QueryRow(
		`SELECT seed, pilot, config_yaml, frames, score, best, mode, started_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&rec.Seed, &rec.Pilot, &cfgYAML, &frames, &rec.Score, &rec.Best, &mode, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	rec.Frames = uint64(frames)
	rec.StartedAt = parseTimestamp(startedAt)
	if rec.Mode, err = flappy.ParseMode(mode); err != nil {
		return nil, fmt.Errorf("storage: run %d: %w", id, err)
	}
	if rec.Config, err = config.Parse([]byte(cfgYAML), config.FormatYAML); err != nil {
		return nil, fmt.Errorf("storage: run %d: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT frame, command FROM run_commands WHERE run_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query commands: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var frame int64
		var name string
		if err := rows.Scan(&frame, &name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan command: %w", err)
		}
		cmd, err := core.ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("storage: run %d: %w", id, err)
		}
		rec.Events = append(rec.Events, sim.Event{Frame: uint64(frame), Command: cmd})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return &rec, nil
}

// DeleteRun removes a run and its commands.
func (s *Store) DeleteRun(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_commands WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete commands: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return tx.Commit()
}

// Stats aggregates over every recorded run.
func (s *Store) Stats() (RunStats, error) {
	var st RunStats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(best), 0), COALESCE(AVG(best), 0), COALESCE(SUM(frames), 0)
		 FROM runs`,
	).Scan(&st.Runs, &st.Best, &st.AvgBest, &st.TotalTicks)
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	return st, nil
}

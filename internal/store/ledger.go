package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")

type Run struct {
	ID         int64  `json:"id"`
	Kind       string `json:"kind"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	OK         int    `json:"ok"`
	Partial    int    `json:"partial"`
	Skipped    int    `json:"skipped"`
	Error      string `json:"error,omitempty"`
}

// Item is one persisted outcome. Wins/Losses/Ties are nil when no record
// was parsed.
type Item struct {
	RunID  int64  `json:"run_id"`
	Team   string `json:"team"`
	Year   int    `json:"year"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
	Rows   int    `json:"rows"`
	Wins   *int   `json:"wins,omitempty"`
	Losses *int   `json:"losses,omitempty"`
	Ties   *int   `json:"ties,omitempty"`
	Path   string `json:"path,omitempty"`
	At     string `json:"at"`
}

// Counts are a finished run's per-status totals.
type Counts struct {
	OK, Partial, Skipped int
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func (d *DB) StartRun(ctx context.Context, kind string) (int64, error) {
	res, err := d.Pool.ExecContext(ctx,
		`INSERT INTO runs(kind, started_at) VALUES(?, ?);`, kind, now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *DB) FinishRun(ctx context.Context, id int64, c Counts, runErr error) error {
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	_, err := d.Pool.ExecContext(ctx, `
UPDATE runs
SET finished_at = ?, ok = ?, partial = ?, skipped = ?, error = ?
WHERE id = ?;`,
		now(), c.OK, c.Partial, c.Skipped, msg, id,
	)
	return err
}

func (d *DB) AddItem(ctx context.Context, it Item) error {
	if it.At == "" {
		it.At = now()
	}
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO items(run_id, team, year, status, reason, detail, rows, wins, losses, ties, path, at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		it.RunID, it.Team, it.Year, it.Status, it.Reason, it.Detail, it.Rows,
		nullInt(it.Wins), nullInt(it.Losses), nullInt(it.Ties), it.Path, it.At,
	)
	return err
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func fromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// ListRuns returns the newest runs first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, kind, started_at, finished_at, ok, partial, skipped, error
FROM runs
ORDER BY id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Kind, &r.StartedAt, &r.FinishedAt,
			&r.OK, &r.Partial, &r.Skipped, &r.Error); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) GetRun(ctx context.Context, id int64) (Run, error) {
	var r Run
	err := d.Pool.QueryRowContext(ctx, `
SELECT id, kind, started_at, finished_at, ok, partial, skipped, error
FROM runs WHERE id = ?;`, id).
		Scan(&r.ID, &r.Kind, &r.StartedAt, &r.FinishedAt, &r.OK, &r.Partial, &r.Skipped, &r.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	return r, err
}

// ListItems returns a run's items in processing order.
func (d *DB) ListItems(ctx context.Context, runID int64) ([]Item, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT run_id, team, year, status, reason, detail, rows, wins, losses, ties, path, at
FROM items
WHERE run_id = ?
ORDER BY rowid ASC;`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var (
			it        Item
			w, l, tie sql.NullInt64
		)
		if err := rows.Scan(&it.RunID, &it.Team, &it.Year, &it.Status, &it.Reason, &it.Detail,
			&it.Rows, &w, &l, &tie, &it.Path, &it.At); err != nil {
			return nil, err
		}
		it.Wins, it.Losses, it.Ties = fromNull(w), fromNull(l), fromNull(tie)
		out = append(out, it)
	}
	return out, rows.Err()
}

// CompletedKeys returns TEAM_YEAR for every item that finished ok in a
// scrape run.
func (d *DB) CompletedKeys(ctx context.Context) (map[string]bool, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT DISTINCT i.team, i.year
FROM items i JOIN runs r ON r.id = i.run_id
WHERE i.status = 'ok' AND r.kind = 'scrape';`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var team string
		var year int
		if err := rows.Scan(&team, &year); err != nil {
			return nil, err
		}
		out[fmt.Sprintf("%s_%d", team, year)] = true
	}
	return out, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/geometry"
)

var (
	// ErrNilDB is returned when a nil *sql.DB is passed in.
	ErrNilDB = errors.New("store: db is nil")

	// ErrNilView is returned by Save without an embedding to write.
	ErrNilView = errors.New("store: view is nil")

	// ErrRunNotFound indicates an unknown or malformed run id, or an empty database for Latest.
	ErrRunNotFound = errors.New("store: run not found")
)

// Run is the metadata of one persisted training run.
type Run struct {
	ID        string
	CreatedAt time.Time
	Source    string // edge file the run was trained on, informational

	Epochs            int
	Negatives         int
	LearningRate      float64
	FinalLearningRate float64
	Epsilon           float64
	Seed              int64

	Loss  float64 // mean loss of the final epoch
	Terms int
}

const runColumns = `id, created_at, source, epochs, negatives, lr, final_lr, eps, seed, loss, terms`

// Save writes run and every point of view in one transaction and returns the
// new run id. run.ID is ignored; run.Terms is taken from the view, and a zero
// CreatedAt is replaced by the current time.
func Save(ctx context.Context, db *sql.DB, run Run, view *embedding.View) (string, error) {
	if db == nil {
		return "", ErrNilDB
	}
	if view == nil {
		return "", ErrNilView
	}
	run.ID = uuid.NewString()
	run.Terms = view.Len()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs(`+runColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UnixNano(), run.Source, run.Epochs, run.Negatives,
		run.LearningRate, run.FinalLearningRate, run.Epsilon, run.Seed, run.Loss, run.Terms,
	); err != nil {
		return "", fmt.Errorf("store: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points(run_id, idx, term, x, y) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	points := view.Points()
	for idx, term := range view.Terms() {
		p := points[idx]
		if _, err := stmt.ExecContext(ctx, run.ID, idx, term, p[0], p[1]); err != nil {
			return "", fmt.Errorf("store: insert point %d: %w", idx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return run.ID, nil
}

// Load returns the run with the given id and its embedding.
func Load(ctx context.Context, db *sql.DB, id string) (Run, *embedding.View, error) {
	if db == nil {
		return Run{}, nil, ErrNilDB
	}
	if _, err := uuid.Parse(id); err != nil {
		return Run{}, nil, fmt.Errorf("%w: %q", ErrRunNotFound, id)
	}
	run, err := scanRun(db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err != nil {
		return Run{}, nil, err
	}
	view, err := loadPoints(ctx, db, run)
	if err != nil {
		return Run{}, nil, err
	}

	return run, view, nil
}

// Latest returns the most recently created run and its embedding.
func Latest(ctx context.Context, db *sql.DB) (Run, *embedding.View, error) {
	if db == nil {
		return Run{}, nil, ErrNilDB
	}
	run, err := scanRun(db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`))
	if err != nil {
		return Run{}, nil, err
	}
	view, err := loadPoints(ctx, db, run)
	if err != nil {
		return Run{}, nil, err
	}

	return run, view, nil
}

// Runs lists every run, newest first, without loading points.
func Runs(ctx context.Context, db *sql.DB) ([]Run, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	rows, err := db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Delete removes a run and its points.
func Delete(ctx context.Context, db *sql.DB, id string) error {
	if db == nil {
		return ErrNilDB
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: %q", ErrRunNotFound, id)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM points WHERE run_id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run     Run
		created int64
	)
	err := row.Scan(&run.ID, &created, &run.Source, &run.Epochs, &run.Negatives,
		&run.LearningRate, &run.FinalLearningRate, &run.Epsilon, &run.Seed, &run.Loss, &run.Terms)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.Unix(0, created).UTC()

	return run, nil
}

func loadPoints(ctx context.Context, db *sql.DB, run Run) (*embedding.View, error) {
	rows, err := db.QueryContext(ctx, `SELECT term, x, y FROM points WHERE run_id = ? ORDER BY idx`, run.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	terms := make([]string, 0, run.Terms)
	points := make([]geometry.Point, 0, run.Terms)
	for rows.Next() {
		var (
			term string
			p    geometry.Point
		)
		if err := rows.Scan(&term, &p[0], &p[1]); err != nil {
			return nil, err
		}
		terms = append(terms, term)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	view, err := embedding.NewView(terms, points, run.Epsilon)
	if err != nil {
		return nil, fmt.Errorf("store: run %s: %w", run.ID, err)
	}

	return view, nil
}

package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// Record inserts a completed run and returns its ID.
func (j *Journal) Record(run *Run) (int64, error) {
	query := `
		INSERT INTO runs (kind, started_at, duration_ms, installed, already_present, upgraded, succeeded)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := j.db.Exec(query,
		run.Kind,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.Duration.Milliseconds(),
		run.Installed,
		run.AlreadyPresent,
		run.Upgraded,
		run.Succeeded,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first, up to limit.
func (j *Journal) List(limit int) ([]*Run, error) {
	query := `
		SELECT id, kind, started_at, duration_ms, installed, already_present, upgraded, succeeded
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`

	rows, err := j.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// Last returns the most recent run, or nil when the journal is empty.
func (j *Journal) Last() (*Run, error) {
	runs, err := j.List(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var run Run
	var startedAt string
	var durationMS int64

	err := rows.Scan(
		&run.ID,
		&run.Kind,
		&startedAt,
		&durationMS,
		&run.Installed,
		&run.AlreadyPresent,
		&run.Upgraded,
		&run.Succeeded,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond

	return &run, nil
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package taskstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"chainguard.dev/taskmirror/reconcile"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	project      TEXT NOT NULL,
	title        TEXT NOT NULL,
	tag          TEXT NOT NULL DEFAULT '',
	note         TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	completed_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tasks_project_open ON tasks(project, completed_at);
`

// SQLite is a Store backed by a local SQLite database file.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// Open opens the task database at path, creating it and its schema as
// needed. Use ":memory:" for an ephemeral store.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening task database %q: %w", path, err)
	}
	// A single connection serializes concurrent writers (sqlite would hand
	// them SQLITE_BUSY otherwise) and keeps ":memory:" pointing at one
	// database instead of one per pool connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema to %q: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// Tasks returns the open tasks in a project, oldest first.
func (s *SQLite) Tasks(ctx context.Context, project string) ([]reconcile.LocalItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title FROM tasks WHERE project = ? AND completed_at IS NULL ORDER BY id`,
		project)
	if err != nil {
		return nil, fmt.Errorf("querying tasks in project %q: %w", project, err)
	}
	defer rows.Close()

	var items []reconcile.LocalItem
	for rows.Next() {
		var id int64
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		items = append(items, reconcile.LocalItem{
			ID:    strconv.FormatInt(id, 10),
			Title: title,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks in project %q: %w", project, err)
	}
	return items, nil
}

// Create adds a new open task to a project.
func (s *SQLite) Create(ctx context.Context, project, title, tag, note string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (project, title, tag, note) VALUES (?, ?, ?, ?)`,
		project, title, tag, note); err != nil {
		return fmt.Errorf("creating task %q in project %q: %w", title, project, err)
	}
	return nil
}

// Complete marks an open task as done. The row is kept so completion history
// survives; a second Complete for the same id reports ErrNotFound.
func (s *SQLite) Complete(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("completing task: invalid id %q: %w", id, err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed_at = ? WHERE id = ? AND completed_at IS NULL`,
		time.Now().UTC(), n)
	if err != nil {
		return fmt.Errorf("completing task %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing task %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("completing task %s: %w", id, ErrNotFound)
	}
	return nil
}

// History returns the completed tasks in a project, most recently completed
// first.
func (s *SQLite) History(ctx context.Context, project string) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project, title, tag, note, created_at, completed_at
		 FROM tasks WHERE project = ? AND completed_at IS NOT NULL
		 ORDER BY completed_at DESC, id DESC`,
		project)
	if err != nil {
		return nil, fmt.Errorf("querying history for project %q: %w", project, err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Project, &t.Title, &t.Tag, &t.Note, &t.CreatedAt, &t.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history for project %q: %w", project, err)
	}
	return tasks, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package taskstore provides the local task store that reconciliation
// mirrors remote work items into, backed by SQLite.
//
// Tasks are grouped by project (one project per category) and are never
// deleted: retiring a task marks it complete, so completion history is
// retained across passes. Only open tasks participate in reconciliation.
package taskstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"chainguard.dev/taskmirror/reconcile"
)

// ErrNotFound reports a Complete call for an id with no open task.
var ErrNotFound = errors.New("task not found")

// Task is one persisted to-do entry.
type Task struct {
	ID        int64
	Project   string
	Title     string
	Tag       string
	Note      string
	CreatedAt time.Time

	// CompletedAt is NULL while the task is open.
	CompletedAt sql.NullTime
}

// Store is the capability set reconciliation needs from a task store.
type Store interface {
	// Tasks returns the open tasks in a project as reconciliation inputs.
	// Completed tasks are excluded so retired items never resurrect.
	Tasks(ctx context.Context, project string) ([]reconcile.LocalItem, error)

	// Create adds a new open task. Failures surface to the caller and are
	// not retried.
	Create(ctx context.Context, project, title, tag, note string) error

	// Complete marks the open task with the given id as done. Completing an
	// unknown or already-completed id returns an error wrapping ErrNotFound.
	Complete(ctx context.Context, id string) error

	// Close releases the underlying store.
	Close() error
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package syncer

import (
	"context"
	"fmt"
	"sync"

	"chainguard.dev/taskmirror/reconcile"
	"chainguard.dev/taskmirror/taskstore"
	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

// Category binds one kind of remote work item to its local project.
type Category struct {
	// Name identifies the category in logs and summaries, e.g. "issues".
	Name string

	// Project is the task store project mirroring this category.
	Project string

	// Tag is attached to tasks created for this category.
	Tag string

	// Fetch returns a complete snapshot of the category's remote items.
	Fetch func(ctx context.Context) ([]reconcile.RemoteItem, error)
}

// Result reports the outcome of one category's pass.
type Result struct {
	Category string

	// Created and Retired count successfully applied actions.
	Created int
	Retired int

	// Err is set when the pass aborted before planning (a fetch failure).
	// Individual action failures land in ActionErrs instead.
	Err error

	// ActionErrs holds per-action failures. They do not fail the pass.
	ActionErrs []error
}

// Syncer runs one reconciliation pass over a set of categories.
type Syncer struct {
	store      taskstore.Store
	categories []Category
}

// New builds a Syncer over the given store and categories.
func New(store taskstore.Store, categories ...Category) *Syncer {
	return &Syncer{store: store, categories: categories}
}

// Run executes one pass per category, in order, and returns one Result per
// category. Categories are isolated: a failed pass is recorded in its Result
// and the remaining categories still run.
func (s *Syncer) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(s.categories))
	for _, cat := range s.categories {
		results = append(results, s.runCategory(ctx, cat))
	}
	return results
}

func (s *Syncer) runCategory(ctx context.Context, cat Category) Result {
	log := clog.FromContext(ctx).With("category", cat.Name)
	res := Result{Category: cat.Name}

	remote, err := cat.Fetch(ctx)
	if err != nil {
		res.Err = fmt.Errorf("fetching remote items: %w", err)
		log.With("error", res.Err).Error("Pass failed")
		return res
	}

	local, err := s.store.Tasks(ctx, cat.Project)
	if err != nil {
		res.Err = fmt.Errorf("fetching local tasks: %w", err)
		log.With("error", res.Err).Error("Pass failed")
		return res
	}

	creations := reconcile.PlanCreations(remote, local)
	retirements := reconcile.PlanRetirements(local, remote)
	log.With(
		"remote", len(remote),
		"local", len(local),
		"create", len(creations),
		"retire", len(retirements),
	).Info("Reconciled")

	// Creations run before retirements purely for log readability; the two
	// plans are disjoint, so ordering is not a correctness requirement.
	res.Created, res.ActionErrs = s.applyCreations(ctx, cat, creations)

	retired, errs := s.applyRetirements(ctx, cat, retirements)
	res.Retired = retired
	res.ActionErrs = append(res.ActionErrs, errs...)

	return res
}

// applyCreations creates tasks concurrently. Each worker records its own
// failure and returns nil so one failed creation never cancels its siblings.
func (s *Syncer) applyCreations(ctx context.Context, cat Category, items []reconcile.RemoteItem) (int, []error) {
	log := clog.FromContext(ctx).With("category", cat.Name)

	var mu sync.Mutex
	var errs []error
	g := new(errgroup.Group)
	for _, item := range items {
		g.Go(func() error {
			if err := s.store.Create(ctx, cat.Project, item.Title, cat.Tag, item.Reference); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("creating task for %s: %w", item.Identifier, err))
				mu.Unlock()
				log.With("item", item.Identifier, "error", err).Warn("Create failed")
				return nil
			}
			log.With("item", item.Identifier).Info("Created task")
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	return len(items) - len(errs), errs
}

// applyRetirements marks tasks complete concurrently, with the same
// isolation as applyCreations.
func (s *Syncer) applyRetirements(ctx context.Context, cat Category, items []reconcile.LocalItem) (int, []error) {
	log := clog.FromContext(ctx).With("category", cat.Name)

	var mu sync.Mutex
	var errs []error
	g := new(errgroup.Group)
	for _, item := range items {
		g.Go(func() error {
			if err := s.store.Complete(ctx, item.ID); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("completing task %s (%q): %w", item.ID, item.Title, err))
				mu.Unlock()
				log.With("task", item.ID, "title", item.Title, "error", err).Warn("Complete failed")
				return nil
			}
			log.With("task", item.ID, "title", item.Title).Info("Completed task")
			return nil
		})
	}
	_ = g.Wait()

	return len(items) - len(errs), errs
}

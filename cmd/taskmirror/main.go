/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the taskmirror CLI: one idempotent reconciliation
// pass that mirrors the user's open GitHub work items (assigned issues and
// review-requested pull requests) into the local task store.
//
// The process exits non-zero only for configuration or setup failures.
// Per-category and per-action reconciliation failures are logged, reflected
// in the summary table, and leave the exit code at zero: the pass is
// best-effort by design and the next run picks up whatever this one missed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chainguard.dev/taskmirror/config"
	"chainguard.dev/taskmirror/githubsource"
	"chainguard.dev/taskmirror/reconcile"
	"chainguard.dev/taskmirror/syncer"
	"chainguard.dev/taskmirror/taskstore"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var env config.Env
	if err := envconfig.Process(ctx, &env); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	bindings, err := config.Load(env.ConfigPath)
	if err != nil {
		clog.FatalContextf(ctx, "loading config: %v", err)
	}

	store, err := taskstore.Open(env.DBPath)
	if err != nil {
		clog.FatalContextf(ctx, "opening task store: %v", err)
	}
	defer store.Close()

	source := githubsource.New(ctx, env.GitHubToken, env.GitHubUser)

	categories := make([]syncer.Category, 0, len(bindings))
	for _, b := range bindings {
		var fetch func(context.Context) ([]reconcile.RemoteItem, error)
		switch b.Name {
		case config.CategoryIssues:
			fetch = source.AssignedIssues
		case config.CategoryPullRequests:
			fetch = source.ReviewRequestedPullRequests
		}
		categories = append(categories, syncer.Category{
			Name:    b.Name,
			Project: b.Project,
			Tag:     b.Tag,
			Fetch:   fetch,
		})
	}

	clog.InfoContextf(ctx, "Starting reconciliation pass for %s over %d categories", env.GitHubUser, len(categories))
	results := syncer.New(store, categories...).Run(ctx)

	if err := syncer.WriteSummary(os.Stdout, results); err != nil {
		clog.FatalContextf(ctx, "writing summary: %v", err)
	}
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubsource fetches a user's open work items from GitHub and
// shapes them into reconciliation inputs.
//
// Two categories are exposed: issues assigned to the authenticated user
// (REST) and pull requests whose review has been requested from them
// (GraphQL search). Each fetch returns a complete snapshot; pagination is
// handled here so callers never see partial pages.
package githubsource

import (
	"context"
	"fmt"

	"chainguard.dev/taskmirror/reconcile"
	"chainguard.dev/taskmirror/resourceurl"
	"github.com/google/go-github/v75/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Source fetches open work items for one GitHub user.
type Source struct {
	rest *github.Client
	gql  *githubv4.Client
	user string
}

// Option configures a Source.
type Option func(*Source)

// WithClients overrides the API clients, e.g. to point them at a test
// server.
func WithClients(rest *github.Client, gql *githubv4.Client) Option {
	return func(s *Source) {
		s.rest = rest
		s.gql = gql
	}
}

// New builds a Source authenticated with a personal access token. The user
// login is needed for the review-requested search qualifier; the token's own
// identity scopes the assigned-issues listing.
func New(ctx context.Context, token, user string, opts ...Option) *Source {
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	s := &Source{
		rest: github.NewClient(hc),
		gql:  githubv4.NewClient(hc),
		user: user,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// toRemoteItem derives the correlation identifier from a work item's HTML
// URL and renders the reconciliation input. A malformed URL fails the whole
// fetch: silently dropping the item would retire its local task.
func toRemoteItem(htmlURL, title string) (reconcile.RemoteItem, error) {
	res, err := resourceurl.Parse(htmlURL)
	if err != nil {
		return reconcile.RemoteItem{}, fmt.Errorf("extracting identifier: %w", err)
	}
	return reconcile.RemoteItem{
		Identifier: res.Prefix(),
		Title:      res.Prefix() + " " + title,
		Reference:  htmlURL,
	}, nil
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubsource

import (
	"context"
	"fmt"

	"chainguard.dev/taskmirror/reconcile"
	"github.com/google/go-github/v75/github"
)

// AssignedIssues returns one RemoteItem per open issue assigned to the
// authenticated user, across all pages.
func (s *Source) AssignedIssues(ctx context.Context) ([]reconcile.RemoteItem, error) {
	opts := &github.IssueListOptions{
		Filter:      "assigned",
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var items []reconcile.RemoteItem
	for {
		issues, resp, err := s.rest.Issues.List(ctx, false, opts)
		if err != nil {
			return nil, fmt.Errorf("listing assigned issues: %w", err)
		}
		for _, issue := range issues {
			// The issues API also reports pull requests assigned to the
			// user; those belong to the review category.
			if issue.IsPullRequest() {
				continue
			}
			item, err := toRemoteItem(issue.GetHTMLURL(), issue.GetTitle())
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}
	return items, nil
}

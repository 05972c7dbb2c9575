/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubsource

import (
	"context"
	"fmt"

	"chainguard.dev/taskmirror/reconcile"
	"github.com/shurcooL/githubv4"
)

// ReviewRequestedPullRequests returns one RemoteItem per open pull request
// whose review has been requested from the configured user, across all
// search result pages.
func (s *Source) ReviewRequestedPullRequests(ctx context.Context) ([]reconcile.RemoteItem, error) {
	var query struct {
		Search struct {
			Nodes []struct {
				PullRequest struct {
					Title string
					URL   string
				} `graphql:"... on PullRequest"`
			}
			PageInfo struct {
				EndCursor   githubv4.String
				HasNextPage bool
			}
		} `graphql:"search(type: ISSUE, query: $query, first: 100, after: $cursor)"`
	}

	variables := map[string]any{
		"query":  githubv4.String(fmt.Sprintf("is:open is:pr review-requested:%s archived:false", s.user)),
		"cursor": (*githubv4.String)(nil),
	}

	var items []reconcile.RemoteItem
	for {
		if err := s.gql.Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("searching review-requested pull requests: %w", err)
		}
		for _, node := range query.Search.Nodes {
			item, err := toRemoteItem(node.PullRequest.URL, node.PullRequest.Title)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if !query.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(query.Search.PageInfo.EndCursor)
	}
	return items, nil
}

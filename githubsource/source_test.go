/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubsource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"chainguard.dev/taskmirror/reconcile"
	"chainguard.dev/taskmirror/resourceurl"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-github/v75/github"
	"github.com/shurcooL/githubv4"
)

// newTestSource wires a Source to a stub HTTP server.
func newTestSource(t *testing.T, handler http.Handler) *Source {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	rest := github.NewClient(nil)
	base, err := url.Parse(ts.URL + "/")
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	rest.BaseURL = base

	gql := githubv4.NewEnterpriseClient(ts.URL+"/graphql", http.DefaultClient)

	return New(context.Background(), "unused-token", "octocat", WithClients(rest, gql))
}

func TestAssignedIssues(t *testing.T) {
	mux := http.NewServeMux()
	var base string
	mux.HandleFunc("/issues", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter"); got != "assigned" {
			t.Errorf("filter = %q, want %q", got, "assigned")
		}
		if got := r.URL.Query().Get("state"); got != "open" {
			t.Errorf("state = %q, want %q", got, "open")
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "", "1":
			// Second entry is a PR surfaced by the issues API and must be
			// skipped; it belongs to the review category.
			w.Header().Set("Link", fmt.Sprintf(`<%s/issues?page=2>; rel="next"`, base))
			fmt.Fprint(w, `[
				{"title": "Fix bug", "html_url": "https://github.com/acme/widgets/issues/12"},
				{"title": "A PR", "html_url": "https://github.com/acme/widgets/pull/34", "pull_request": {"url": "https://api.github.com/repos/acme/widgets/pulls/34"}}
			]`)
		case "2":
			fmt.Fprint(w, `[
				{"title": "Second page", "html_url": "https://github.com/org/repo/issues/3"}
			]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	base = ts.URL

	rest := github.NewClient(nil)
	baseURL, _ := url.Parse(ts.URL + "/")
	rest.BaseURL = baseURL
	src := New(context.Background(), "unused-token", "octocat", WithClients(rest, nil))

	got, err := src.AssignedIssues(context.Background())
	if err != nil {
		t.Fatalf("AssignedIssues failed: %v", err)
	}
	want := []reconcile.RemoteItem{
		{
			Identifier: "acme/widgets#12",
			Title:      "acme/widgets#12 Fix bug",
			Reference:  "https://github.com/acme/widgets/issues/12",
		},
		{
			Identifier: "org/repo#3",
			Title:      "org/repo#3 Second page",
			Reference:  "https://github.com/org/repo/issues/3",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AssignedIssues mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignedIssuesMalformedReference(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"title": "Odd", "html_url": "https://example.com/not/github/1"}]`)
	}))

	_, err := src.AssignedIssues(context.Background())
	var mre *resourceurl.MalformedReferenceError
	if !errors.As(err, &mre) {
		t.Fatalf("AssignedIssues error = %v, want *MalformedReferenceError", err)
	}
}

func TestReviewRequestedPullRequests(t *testing.T) {
	page := 0
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		page++
		switch page {
		case 1:
			fmt.Fprint(w, `{"data": {"search": {
				"nodes": [{"title": "Add feature", "url": "https://github.com/acme/widgets/pull/34"}],
				"pageInfo": {"endCursor": "cursor1", "hasNextPage": true}
			}}}`)
		default:
			fmt.Fprint(w, `{"data": {"search": {
				"nodes": [{"title": "Refactor", "url": "https://github.com/org/repo/pull/5"}],
				"pageInfo": {"endCursor": "", "hasNextPage": false}
			}}}`)
		}
	}))

	got, err := src.ReviewRequestedPullRequests(context.Background())
	if err != nil {
		t.Fatalf("ReviewRequestedPullRequests failed: %v", err)
	}
	want := []reconcile.RemoteItem{
		{
			Identifier: "acme/widgets#34",
			Title:      "acme/widgets#34 Add feature",
			Reference:  "https://github.com/acme/widgets/pull/34",
		},
		{
			Identifier: "org/repo#5",
			Title:      "org/repo#5 Refactor",
			Reference:  "https://github.com/org/repo/pull/5",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReviewRequestedPullRequests mismatch (-want +got):\n%s", diff)
	}
}

func TestToRemoteItem(t *testing.T) {
	item, err := toRemoteItem("https://github.com/acme/widgets/issues/12", "Fix bug")
	if err != nil {
		t.Fatalf("toRemoteItem failed: %v", err)
	}
	want := reconcile.RemoteItem{
		Identifier: "acme/widgets#12",
		Title:      "acme/widgets#12 Fix bug",
		Reference:  "https://github.com/acme/widgets/issues/12",
	}
	if diff := cmp.Diff(want, item); diff != "" {
		t.Errorf("toRemoteItem mismatch (-want +got):\n%s", diff)
	}
}

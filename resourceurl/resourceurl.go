/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package resourceurl parses GitHub issue and pull request URLs.
//
// The parsed Resource renders the "owner/repo#number" prefix that correlates
// a remote work item with the local task mirroring it. Matching against task
// titles is done on the literal prefix text, so parsing is case-sensitive and
// exact: no normalization is applied to any component.
//
// Examples:
//   - "https://github.com/acme/widgets/issues/12"  -> "acme/widgets#12"
//   - "https://github.com/acme/widgets/pull/34"    -> "acme/widgets#34"
package resourceurl

import (
	"fmt"
	"regexp"
	"strconv"
)

// Type distinguishes the two kinds of work items we track.
type Type string

const (
	TypeIssue       Type = "issues"
	TypePullRequest Type = "pull"
)

// Resource identifies a single GitHub issue or pull request.
type Resource struct {
	// Owner is the organization or user owning the repository.
	Owner string

	// Repo is the repository name.
	Repo string

	// Number is the issue or pull request number.
	Number int

	// Type records which URL form the resource was parsed from.
	Type Type
}

// MalformedReferenceError reports a reference URL that does not point at a
// GitHub issue or pull request. Callers must propagate it rather than skip
// the item: an item without an identifier cannot be correlated, and dropping
// it would retire its local task on the next pass.
type MalformedReferenceError struct {
	Reference string
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("malformed reference URL %q: expected https://github.com/{owner}/{repo}/(issues|pull)/{number}", e.Reference)
}

// urlRegex matches exactly the HTML URL forms GitHub uses for issues and
// pull requests. The host is pinned to github.com so that references to
// other hosts fail loudly instead of yielding a bogus identifier.
var urlRegex = regexp.MustCompile(`^https://github\.com/([^/\s]+)/([^/\s]+)/(issues|pull)/([0-9]+)$`)

// Parse parses a GitHub issue or pull request HTML URL into its components.
func Parse(raw string) (*Resource, error) {
	m := urlRegex.FindStringSubmatch(raw)
	if m == nil {
		return nil, &MalformedReferenceError{Reference: raw}
	}

	number, err := strconv.Atoi(m[4])
	if err != nil {
		// The regex guarantees digits; Atoi still rejects overflow.
		return nil, &MalformedReferenceError{Reference: raw}
	}

	return &Resource{
		Owner:  m[1],
		Repo:   m[2],
		Number: number,
		Type:   Type(m[3]),
	}, nil
}

// Prefix returns the stable correlation key for this resource, e.g.
// "acme/widgets#12". Local task titles representing the resource start with
// this exact string.
func (r *Resource) Prefix() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// URL returns the canonical HTML URL for this resource.
func (r *Resource) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/%s/%d", r.Owner, r.Repo, r.Type, r.Number)
}

// String returns the correlation prefix.
func (r *Resource) String() string {
	return r.Prefix()
}

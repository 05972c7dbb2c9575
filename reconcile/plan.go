/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package reconcile computes the actions needed to make a local set of tasks
// mirror a remote set of work items.
//
// The two planning functions are pure: they never perform I/O, never fail,
// and are total over empty inputs. Correlation between the two sets is by
// string prefix on the local title; there is no foreign-key field. The
// identifier is treated as an opaque string here, chosen by the caller so
// that titles representing a remote item start with it.
package reconcile

import "strings"

// RemoteItem is a work item fetched from the remote source, rebuilt fresh
// on every pass.
type RemoteItem struct {
	// Identifier is the stable correlation key, unique within a category
	// for a given remote state (e.g. "acme/widgets#12").
	Identifier string

	// Title is the human-readable summary, conventionally prefixed with
	// Identifier.
	Title string

	// Reference is a locator (URL) stored as supplementary detail on the
	// created task. It plays no part in matching.
	Reference string
}

// LocalItem is a snapshot of one open task in the local store.
type LocalItem struct {
	// ID is the store-assigned handle, used only to issue a retirement.
	ID string

	// Title is expected to start with some RemoteItem's Identifier when the
	// task represents that remote item.
	Title string
}

// matches reports whether title represents the item with the given
// identifier. Matching is by literal prefix so that suffixes or formatting
// added to the title after creation never break correlation. The identifier
// must end at a non-digit boundary: "a/b#1" does not match "a/b#12 fix".
func matches(title, identifier string) bool {
	if !strings.HasPrefix(title, identifier) {
		return false
	}
	if len(title) == len(identifier) {
		return true
	}
	next := title[len(identifier)]
	return next < '0' || next > '9'
}

// PlanCreations returns the remote items with no local representation: those
// for which no element of local has a title carrying the item's identifier
// as a prefix. A single local match disqualifies a remote item; any number
// of local items may share the same match. The result preserves the order of
// remote. Empty remote yields an empty plan; empty local yields all of
// remote.
func PlanCreations(remote []RemoteItem, local []LocalItem) []RemoteItem {
	var plan []RemoteItem
	for _, r := range remote {
		present := false
		for _, l := range local {
			if matches(l.Title, r.Identifier) {
				present = true
				break
			}
		}
		if !present {
			plan = append(plan, r)
		}
	}
	return plan
}

// PlanRetirements returns the local items that no longer correspond to any
// remote item: those whose title no remote identifier prefixes. The result
// preserves the order of local. Empty remote retires all of local; empty
// local yields an empty plan.
func PlanRetirements(local []LocalItem, remote []RemoteItem) []LocalItem {
	var plan []LocalItem
	for _, l := range local {
		live := false
		for _, r := range remote {
			if matches(l.Title, r.Identifier) {
				live = true
				break
			}
		}
		if !live {
			plan = append(plan, l)
		}
	}
	return plan
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package syncer runs reconciliation passes.
//
// One pass per category: fetch the remote snapshot and the open local tasks,
// plan creations and retirements with the reconcile package, then apply both
// plans as concurrent best-effort batches against the task store. Categories
// are fully isolated from one another, and a single failed action never
// aborts its siblings; failures are logged and reported in the category's
// Result, not retried.
package syncer

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskmirror.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		contents string // "" means no file at all
		want     []CategoryBinding
		wantErr  bool
	}{
		{
			name: "no file returns defaults",
			want: Defaults(),
		},
		{
			name:     "empty file returns defaults",
			contents: "categories: []\n",
			want:     Defaults(),
		},
		{
			name: "overridden bindings",
			contents: `categories:
  - name: issues
    project: Work Inbox
    tag: gh
  - name: pull-requests
    project: Reviews
    tag: gh-review
`,
			want: []CategoryBinding{
				{Name: "issues", Project: "Work Inbox", Tag: "gh"},
				{Name: "pull-requests", Project: "Reviews", Tag: "gh-review"},
			},
		},
		{
			name: "single category is allowed",
			contents: `categories:
  - name: issues
    project: Work Inbox
`,
			want: []CategoryBinding{{Name: "issues", Project: "Work Inbox"}},
		},
		{
			name: "unknown category",
			contents: `categories:
  - name: discussions
    project: Chatter
`,
			wantErr: true,
		},
		{
			name: "duplicate category",
			contents: `categories:
  - name: issues
    project: A
  - name: issues
    project: B
`,
			wantErr: true,
		},
		{
			name: "missing project",
			contents: `categories:
  - name: issues
`,
			wantErr: true,
		},
		{
			name:     "malformed yaml",
			contents: "categories: [\n",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			if tt.contents != "" {
				path = writeConfig(t, tt.contents)
			}
			got, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Load() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load(missing path) succeeded, want error")
	}
}

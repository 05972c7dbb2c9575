/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package config holds the process configuration: credentials and store
// location come from the environment, category-to-project bindings from an
// optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category names understood by the CLI.
const (
	CategoryIssues       = "issues"
	CategoryPullRequests = "pull-requests"
)

// Env is the environment-sourced configuration. Any error here is fatal:
// without credentials no category can run.
type Env struct {
	// GitHubToken is a personal access token used for both REST and
	// GraphQL calls.
	GitHubToken string `env:"GITHUB_TOKEN,required"`

	// GitHubUser is the login whose assigned issues and review requests
	// are mirrored.
	GitHubUser string `env:"GITHUB_USER,required"`

	// DBPath locates the SQLite task database.
	DBPath string `env:"TASKMIRROR_DB,default=taskmirror.db"`

	// ConfigPath optionally points at a YAML file overriding the category
	// bindings.
	ConfigPath string `env:"TASKMIRROR_CONFIG"`
}

// CategoryBinding maps a category to its task store project and tag.
type CategoryBinding struct {
	Name    string `yaml:"name"`
	Project string `yaml:"project"`
	Tag     string `yaml:"tag"`
}

// File is the YAML config file shape.
type File struct {
	Categories []CategoryBinding `yaml:"categories"`
}

// Defaults returns the category bindings used when no config file is given.
func Defaults() []CategoryBinding {
	return []CategoryBinding{
		{Name: CategoryIssues, Project: "GitHub Issues", Tag: "issue"},
		{Name: CategoryPullRequests, Project: "GitHub Reviews", Tag: "review"},
	}
}

var knownCategories = map[string]bool{
	CategoryIssues:       true,
	CategoryPullRequests: true,
}

// Load reads category bindings from path, or returns Defaults when path is
// empty. Unknown category names and missing projects are configuration
// errors.
func Load(path string) ([]CategoryBinding, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if len(f.Categories) == 0 {
		return Defaults(), nil
	}

	seen := map[string]bool{}
	for _, c := range f.Categories {
		if !knownCategories[c.Name] {
			return nil, fmt.Errorf("unknown category %q in %s", c.Name, path)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate category %q in %s", c.Name, path)
		}
		seen[c.Name] = true
		if c.Project == "" {
			return nil, fmt.Errorf("category %q in %s has no project", c.Name, path)
		}
	}
	return f.Categories, nil
}

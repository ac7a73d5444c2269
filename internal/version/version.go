// Package version checks GitHub releases for a newer build.
package version

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/mod/semver"
)

// ErrDevBuild is returned when the running binary has no release version.
var ErrDevBuild = errors.New("cannot check a development build for updates")

// CheckResult describes the outcome of a release check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
}

// Checker queries the GitHub releases API.
type Checker struct {
	http  *resty.Client
	owner string
	repo  string
}

// NewChecker builds a Checker for the given repository.
func NewChecker(owner, repo string) *Checker {
	return &Checker{
		http:  resty.New().SetBaseURL("https://api.github.com"),
		owner: owner,
		repo:  repo,
	}
}

// WithBaseURL overrides the API endpoint, for tests.
func (c *Checker) WithBaseURL(url string) *Checker {
	c.http.SetBaseURL(url)
	return c
}

// Check compares the current version against the latest release tag.
func (c *Checker) Check(ctx context.Context, current string) (*CheckResult, error) {
	if current == "" || current == "(devel)" {
		return nil, ErrDevBuild
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&release).
		Get(fmt.Sprintf("/repos/%s/%s/releases/latest", c.owner, c.repo))
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode())
	}
	if release.TagName == "" {
		return nil, errors.New("latest release has no tag name")
	}

	cur := canonical(current)
	latest := canonical(release.TagName)
	if !semver.IsValid(cur) {
		return nil, fmt.Errorf("current version %q is not valid semver", current)
	}
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("release tag %q is not valid semver", release.TagName)
	}

	return &CheckResult{
		CurrentVersion:  current,
		LatestVersion:   release.TagName,
		UpdateAvailable: semver.Compare(latest, cur) > 0,
	}, nil
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Package tracker wraps the GitHub issue operations the bot needs: issue
// creation for the real-time flow, and state/label reads plus label writes
// for the watchlist scan.
//
// The read operations deliberately map any API failure to a conservative
// negative answer (closed / no label) so the scan under-acts rather than
// acting on unknown state.
package tracker

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"

	"workflow_watcher/internal/logger"
	"workflow_watcher/internal/model"
)

// Client talks to the issue tracker for a single repository.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

// New creates a Client authenticated with the given token for repo "owner/name".
func New(token, owner, repo string) *Client {
	return &Client{
		gh:    github.NewClient(nil).WithAuthToken(token),
		owner: owner,
		repo:  repo,
	}
}

// NewWithClient wires an existing GitHub client, used by tests to point at a
// local test server.
func NewWithClient(gh *github.Client, owner, repo string) *Client {
	return &Client{gh: gh, owner: owner, repo: repo}
}

// NewIssue describes an issue to create.
type NewIssue struct {
	Title     string
	Body      string
	Labels    []string
	Assignees []string
}

// CreateIssue opens a new issue and returns its number and HTML URL.
func (c *Client) CreateIssue(ctx context.Context, issue NewIssue) (*model.IssueRef, error) {
	req := &github.IssueRequest{
		Title:     github.Ptr(issue.Title),
		Body:      github.Ptr(issue.Body),
		Labels:    &issue.Labels,
		Assignees: &issue.Assignees,
	}
	created, _, err := c.gh.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	logger.GetLogger().Info("created issue",
		zap.Int("issue", created.GetNumber()),
		zap.String("url", created.GetHTMLURL()))
	return &model.IssueRef{Number: created.GetNumber(), URL: created.GetHTMLURL()}, nil
}

// IsOpen reports whether the issue is open. Any fetch failure is logged and
// treated as closed.
func (c *Client) IsOpen(ctx context.Context, number int) bool {
	issue, _, err := c.gh.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		logger.GetLogger().Error("failed to fetch issue state",
			zap.Int("issue", number), zap.Error(err))
		return false
	}
	return issue.GetState() == "open"
}

// HasLabel reports whether the issue currently carries the label. Any fetch
// failure is logged and treated as the label being absent.
func (c *Client) HasLabel(ctx context.Context, number int, label string) bool {
	issue, _, err := c.gh.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		logger.GetLogger().Error("failed to fetch issue labels",
			zap.Int("issue", number), zap.Error(err))
		return false
	}
	for _, l := range issue.Labels {
		if l.GetName() == label {
			return true
		}
	}
	return false
}

// AddLabel appends the label to the issue. Adding an already-present label is
// a tracker-side no-op, so callers need no stronger guard than HasLabel.
func (c *Client) AddLabel(ctx context.Context, number int, label string) error {
	_, _, err := c.gh.Issues.AddLabelsToIssue(ctx, c.owner, c.repo, number, []string{label})
	if err != nil {
		logger.GetLogger().Error("failed to add label",
			zap.Int("issue", number), zap.String("label", label), zap.Error(err))
		return fmt.Errorf("failed to add label %q to issue #%d: %w", label, number, err)
	}
	logger.GetLogger().Info("added label",
		zap.Int("issue", number), zap.String("label", label))
	return nil
}

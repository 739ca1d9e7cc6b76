// Package handler processes inbound Slack message events for the real-time
// flow: every post from the support workflow gets a tracking issue in GitHub
// and a thread reply linking to it.
package handler

import (
	"context"

	"github.com/slack-go/slack"

	"workflow_watcher/internal/config"
	"workflow_watcher/internal/model"
	"workflow_watcher/internal/tracker"
)

// MessagePoster is the subset of the Slack API the handler writes through.
// *slack.Client satisfies it.
type MessagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// IssueCreator opens tracking issues. *tracker.Client satisfies it.
type IssueCreator interface {
	CreateIssue(ctx context.Context, issue tracker.NewIssue) (*model.IssueRef, error)
}

type SlackHandler struct {
	api    MessagePoster
	issues IssueCreator

	workflowUsername string
	issueLabels      []string
	issueAssignees   []string
}

func NewSlackHandler(api MessagePoster, issues IssueCreator, cfg *config.Config) *SlackHandler {
	return &SlackHandler{
		api:              api,
		issues:           issues,
		workflowUsername: cfg.WorkflowUsername,
		issueLabels:      cfg.IssueLabels,
		issueAssignees:   cfg.IssueAssignees,
	}
}

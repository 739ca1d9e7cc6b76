package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"workflow_watcher/internal/logger"
	"workflow_watcher/internal/tracker"
)

// HandleMessageEvent handles one inbound message event. Posts that do not
// come from the workflow sender are ignored; workflow posts get a tracking
// issue and a thread reply with the issue link.
func (h *SlackHandler) HandleMessageEvent(ev *slackevents.MessageEvent) error {
	if ev.Username != h.workflowUsername {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	title := IssueTitle(ev.Text)
	ref, err := h.issues.CreateIssue(ctx, tracker.NewIssue{
		Title:     title,
		Body:      ev.Text,
		Labels:    h.issueLabels,
		Assignees: h.issueAssignees,
	})
	if err != nil {
		return fmt.Errorf("failed to create issue for workflow post: %w", err)
	}

	var reply string
	if user, ok := FirstUserMention(ev.Text); ok {
		reply = fmt.Sprintf("Hi there, <@%s>! We created GitHub issue <%s|%s> for you!", user, ref.URL, title)
	} else {
		reply = fmt.Sprintf("We created GitHub issue <%s|%s> for this ticket. Please follow up using this link.", ref.URL, title)
	}

	// The workflow post is the thread root
	_, _, err = h.api.PostMessageContext(ctx, ev.Channel,
		slack.MsgOptionText(reply, false),
		slack.MsgOptionTS(ev.TimeStamp),
	)
	if err != nil {
		return fmt.Errorf("failed to post reply in thread %s: %w", ev.TimeStamp, err)
	}
	logger.GetLogger().Info("acknowledged workflow post",
		zap.String("thread_ts", ev.TimeStamp),
		zap.Int("issue", ref.Number))
	return nil
}

// Package notify posts acknowledgements into Slack threads and resolves
// message permalinks for cross-posting.
package notify

import (
	"context"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"workflow_watcher/internal/logger"
)

// SlackPoster is the subset of the Slack API the notifier uses. *slack.Client
// satisfies it.
type SlackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	GetPermalinkContext(ctx context.Context, params *slack.PermalinkParameters) (string, error)
}

// Notifier sends bot messages. All sends are fire-and-forget: failures are
// logged and reported back, but callers are expected to continue.
type Notifier struct {
	api SlackPoster
}

func New(api SlackPoster) *Notifier {
	return &Notifier{api: api}
}

// PostThreadReply posts text into the thread anchored at threadTS. An empty
// threadTS posts a top-level channel message.
func (n *Notifier) PostThreadReply(ctx context.Context, channelID, threadTS, text string) error {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}
	_, _, err := n.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		logger.GetLogger().Error("failed to post message",
			zap.String("channel", channelID),
			zap.String("thread_ts", threadTS),
			zap.Error(err))
		return err
	}
	logger.GetLogger().Info("posted message",
		zap.String("channel", channelID),
		zap.String("thread_ts", threadTS))
	return nil
}

// Permalink resolves the shareable URL of a message.
func (n *Notifier) Permalink(ctx context.Context, channelID, messageTS string) (string, error) {
	link, err := n.api.GetPermalinkContext(ctx, &slack.PermalinkParameters{
		Channel: channelID,
		Ts:      messageTS,
	})
	if err != nil {
		logger.GetLogger().Error("failed to get permalink",
			zap.String("channel", channelID),
			zap.String("ts", messageTS),
			zap.Error(err))
		return "", err
	}
	return link, nil
}

package scan

import (
	"context"
	"regexp"
	"strconv"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"workflow_watcher/internal/logger"
)

// issueRefPattern is the one piece of string-format coupling between Slack and
// the tracker: a path segment of the form /issues/<digits>, as it appears in
// issue URLs embedded in the bot's reply.
var issueRefPattern = regexp.MustCompile(`/issues/(\d+)`)

// ParseIssueNumber extracts an issue number from a string containing an issue
// URL path segment. Returns false if no such segment is present.
func ParseIssueNumber(s string) (int, bool) {
	m := issueRefPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// issueNumberFromThread resolves the issue linked from a workflow thread by
// inspecting the first reply (the bot's acknowledgement). The attachment
// unfurl URL is checked first, then the reply text. Resolution is best
// effort: any failure yields "not found" rather than an error, and the caller
// skips the message.
func issueNumberFromThread(ctx context.Context, api Conversations, channelID, threadTS string) (int, bool) {
	var msgs []slack.Message
	params := &slack.GetConversationRepliesParameters{
		ChannelID: channelID,
		Timestamp: threadTS,
		Limit:     100,
	}
	for {
		page, hasMore, nextCursor, err := api.GetConversationRepliesContext(ctx, params)
		if err != nil {
			logger.GetLogger().Error("failed to fetch thread replies",
				zap.String("thread_ts", threadTS), zap.Error(err))
			return 0, false
		}
		msgs = append(msgs, page...)
		if !hasMore {
			break
		}
		params.Cursor = nextCursor
	}

	// msgs[0] is the thread root itself
	if len(msgs) < 2 {
		logger.GetLogger().Info("no replies in thread", zap.String("thread_ts", threadTS))
		return 0, false
	}
	firstReply := msgs[1]

	for _, att := range firstReply.Attachments {
		if n, ok := ParseIssueNumber(att.FromURL); ok {
			return n, true
		}
	}
	if n, ok := ParseIssueNumber(firstReply.Text); ok {
		return n, true
	}
	logger.GetLogger().Info("no issue reference in first reply", zap.String("thread_ts", threadTS))
	return 0, false
}

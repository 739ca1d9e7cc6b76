package scan

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/slack-go/slack"
)

// Conversations is the subset of the Slack API the scan reads from.
// *slack.Client satisfies it.
type Conversations interface {
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetConversationRepliesContext(ctx context.Context, params *slack.GetConversationRepliesParameters) ([]slack.Message, bool, string, error)
}

// fetchHistory returns every message posted to the channel at or after
// now-lookback, following pagination cursors until exhausted. A failed page
// fetch aborts the whole fetch; the scan must not run against a partial
// message set.
func fetchHistory(ctx context.Context, api Conversations, channelID string, lookback time.Duration, now time.Time) ([]slack.Message, error) {
	oldest := strconv.FormatInt(now.Add(-lookback).Unix(), 10)

	var messages []slack.Message
	cursor := ""
	for {
		resp, err := api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
			ChannelID: channelID,
			Cursor:    cursor,
			Limit:     999,
			Inclusive: true,
			Oldest:    oldest,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch history for channel %s: %w", channelID, err)
		}
		messages = append(messages, resp.Messages...)

		cursor = resp.ResponseMetaData.NextCursor
		if cursor == "" {
			break
		}
	}
	return messages, nil
}

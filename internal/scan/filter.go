package scan

import (
	"fmt"
	"strconv"
	"time"

	"github.com/slack-go/slack"
)

// IsWorkflowMessage reports whether the message is an automated post from the
// configured workflow sender.
func IsWorkflowMessage(msg slack.Message, workflowBotID string) bool {
	return msg.SubType == "bot_message" && msg.BotID == workflowBotID
}

// OlderThan reports whether the message timestamp falls strictly before
// now-limit. A message exactly at the limit is not yet old.
func OlderThan(ts string, limit time.Duration, now time.Time) bool {
	t, err := parseTimestamp(ts)
	if err != nil {
		return false
	}
	return now.Sub(t) > limit
}

// parseTimestamp converts a Slack "ts" value (fractional seconds since the
// epoch, e.g. "1712345678.000200") to a time.Time.
func parseTimestamp(ts string) (time.Time, error) {
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid message timestamp %q: %w", ts, err)
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec), nil
}

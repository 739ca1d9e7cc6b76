package handler

import (
	"regexp"
	"strings"
)

// userMentionPattern matches Slack's encoded user mentions, e.g. <@U02ABCDEF>.
var userMentionPattern = regexp.MustCompile(`<@([UW][A-Z0-9]+)>`)

const (
	maxTitleLen  = 80
	defaultTitle = "Support ticket"
)

// FirstUserMention returns the user id of the first mention embedded in the
// message text. Workflow posts mention the requesting user, which is who the
// bot greets in its reply.
func FirstUserMention(text string) (string, bool) {
	m := userMentionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IssueTitle derives an issue title from the workflow post: the first
// non-empty line, truncated to 80 runes.
func IssueTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > maxTitleLen {
			return string(runes[:maxTitleLen])
		}
		return line
	}
	return defaultTitle
}

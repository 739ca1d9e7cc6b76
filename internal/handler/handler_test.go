package handler

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"workflow_watcher/internal/config"
	"workflow_watcher/internal/model"
	"workflow_watcher/internal/tracker"
)

type postCall struct {
	channel string
	values  url.Values
}

type fakePoster struct {
	calls []postCall
	err   error
}

func (f *fakePoster) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	_, values, err := slack.UnsafeApplyMsgOptions("xoxb-test", channelID, "https://slack.com/api/", options...)
	if err != nil {
		return "", "", err
	}
	f.calls = append(f.calls, postCall{channelID, values})
	return channelID, "999.000", nil
}

type fakeIssueCreator struct {
	created []tracker.NewIssue
	err     error
}

func (f *fakeIssueCreator) CreateIssue(_ context.Context, issue tracker.NewIssue) (*model.IssueRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, issue)
	return &model.IssueRef{Number: 42, URL: "https://github.com/acme/support/issues/42"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		WorkflowUsername: "Support Ticket Helper Bot",
		IssueLabels:      []string{"bug", "help wanted"},
	}
}

func workflowEvent(text string) *slackevents.MessageEvent {
	return &slackevents.MessageEvent{
		Type:      "message",
		SubType:   "bot_message",
		Username:  "Support Ticket Helper Bot",
		Text:      text,
		Channel:   "C0SOURCE",
		TimeStamp: "1712345678.000100",
	}
}

func TestHandleMessageEvent_IgnoresOtherSenders(t *testing.T) {
	poster := &fakePoster{}
	issues := &fakeIssueCreator{}
	h := NewSlackHandler(poster, issues, testConfig())

	ev := workflowEvent("hello")
	ev.Username = "Some Other Bot"
	if err := h.HandleMessageEvent(ev); err != nil {
		t.Fatalf("HandleMessageEvent() error = %v", err)
	}
	if len(issues.created) != 0 || len(poster.calls) != 0 {
		t.Errorf("non-workflow sender must be ignored, got %d issues %d posts", len(issues.created), len(poster.calls))
	}
}

func TestHandleMessageEvent_CreatesIssueAndReplies(t *testing.T) {
	poster := &fakePoster{}
	issues := &fakeIssueCreator{}
	h := NewSlackHandler(poster, issues, testConfig())

	ev := workflowEvent("Printer on fire\nReported by <@U0REQUESTER>")
	if err := h.HandleMessageEvent(ev); err != nil {
		t.Fatalf("HandleMessageEvent() error = %v", err)
	}

	if len(issues.created) != 1 {
		t.Fatalf("created %d issues, want 1", len(issues.created))
	}
	created := issues.created[0]
	if created.Title != "Printer on fire" {
		t.Errorf("issue title = %q, want first line of the post", created.Title)
	}
	if created.Body != ev.Text {
		t.Errorf("issue body = %q, want the full post text", created.Body)
	}
	if len(created.Labels) != 2 {
		t.Errorf("issue labels = %v, want the configured defaults", created.Labels)
	}

	if len(poster.calls) != 1 {
		t.Fatalf("posted %d messages, want 1", len(poster.calls))
	}
	reply := poster.calls[0]
	if reply.channel != "C0SOURCE" {
		t.Errorf("reply channel = %q, want C0SOURCE", reply.channel)
	}
	if got := reply.values.Get("thread_ts"); got != ev.TimeStamp {
		t.Errorf("reply thread_ts = %q, want %q", got, ev.TimeStamp)
	}
	text := reply.values.Get("text")
	if !strings.Contains(text, "https://github.com/acme/support/issues/42") {
		t.Errorf("reply %q does not link the issue", text)
	}
	if !strings.Contains(text, "<@U0REQUESTER>") {
		t.Errorf("reply %q does not greet the requester", text)
	}
}

func TestHandleMessageEvent_NoMentionFallback(t *testing.T) {
	poster := &fakePoster{}
	issues := &fakeIssueCreator{}
	h := NewSlackHandler(poster, issues, testConfig())

	if err := h.HandleMessageEvent(workflowEvent("Printer on fire")); err != nil {
		t.Fatalf("HandleMessageEvent() error = %v", err)
	}
	if len(poster.calls) != 1 {
		t.Fatalf("posted %d messages, want 1", len(poster.calls))
	}
	text := poster.calls[0].values.Get("text")
	if strings.Contains(text, "<@") {
		t.Errorf("reply %q mentions a user although the post had none", text)
	}
	if !strings.Contains(text, "https://github.com/acme/support/issues/42") {
		t.Errorf("reply %q does not link the issue", text)
	}
}

func TestHandleMessageEvent_CreateFailure(t *testing.T) {
	poster := &fakePoster{}
	issues := &fakeIssueCreator{err: errors.New("422 validation failed")}
	h := NewSlackHandler(poster, issues, testConfig())

	if err := h.HandleMessageEvent(workflowEvent("Printer on fire")); err == nil {
		t.Fatal("HandleMessageEvent() expected error when issue creation fails")
	}
	if len(poster.calls) != 0 {
		t.Errorf("no reply should be posted when issue creation fails, got %d", len(poster.calls))
	}
}

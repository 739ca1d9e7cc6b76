package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRouter(poster *fakePoster, issues *fakeIssueCreator) http.Handler {
	return Routes(NewSlackHandler(poster, issues, testConfig()), "")
}

func TestHTTPEvents_URLVerification(t *testing.T) {
	r := newTestRouter(&fakePoster{}, &fakeIssueCreator{})

	body := `{"type":"url_verification","token":"tok","challenge":"abc123"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "abc123" {
		t.Errorf("body = %q, want the challenge echoed back", w.Body.String())
	}
}

func TestHTTPEvents_RetryIsShortCircuited(t *testing.T) {
	issues := &fakeIssueCreator{}
	r := newTestRouter(&fakePoster{}, issues)

	body := `{"type":"event_callback","event":{"type":"message","subtype":"bot_message","username":"Support Ticket Helper Bot","text":"Printer on fire","channel":"C0SOURCE","ts":"1712345678.000100"}}`
	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	req.Header.Set("X-Slack-Retry-Num", "1")
	req.Header.Set("X-Slack-Retry-Reason", "http_timeout")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(issues.created) != 0 {
		t.Errorf("retried delivery must not create another issue, got %d", len(issues.created))
	}
}

func TestHTTPEvents_DispatchesWorkflowPost(t *testing.T) {
	poster := &fakePoster{}
	issues := &fakeIssueCreator{}
	r := newTestRouter(poster, issues)

	body := `{"type":"event_callback","event":{"type":"message","subtype":"bot_message","username":"Support Ticket Helper Bot","text":"Printer on fire","channel":"C0SOURCE","ts":"1712345678.000100"}}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(issues.created) != 1 {
		t.Errorf("created %d issues, want 1", len(issues.created))
	}
	if len(poster.calls) != 1 {
		t.Errorf("posted %d replies, want 1", len(poster.calls))
	}
}

func TestHTTPEvents_EmptyBody(t *testing.T) {
	r := newTestRouter(&fakePoster{}, &fakeIssueCreator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader("")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(&fakePoster{}, &fakeIssueCreator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

package handler

import (
	"strings"
	"testing"
)

func TestFirstUserMention(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"New ticket from <@U02ABCDEF>", "U02ABCDEF", true},
		{"<@W0GLOBAL> needs help", "W0GLOBAL", true},
		{"two mentions <@U111AAA> and <@U222BBB>", "U111AAA", true},
		{"no mention here", "", false},
		{"broken <@u02lower>", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := FirstUserMention(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FirstUserMention(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIssueTitle(t *testing.T) {
	if got := IssueTitle("Printer on fire\nIt started this morning"); got != "Printer on fire" {
		t.Errorf("IssueTitle() = %q, want first line", got)
	}
	if got := IssueTitle("\n\n  padded line  \nrest"); got != "padded line" {
		t.Errorf("IssueTitle() = %q, want trimmed first non-empty line", got)
	}
	if got := IssueTitle(""); got != defaultTitle {
		t.Errorf("IssueTitle(\"\") = %q, want %q", got, defaultTitle)
	}

	long := strings.Repeat("a", 200)
	if got := IssueTitle(long); len([]rune(got)) != maxTitleLen {
		t.Errorf("IssueTitle() length = %d, want %d", len([]rune(got)), maxTitleLen)
	}
}

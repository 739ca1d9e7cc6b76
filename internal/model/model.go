package model

// IssueRef is a resolved cross-system reference from a Slack thread to a
// GitHub issue.
type IssueRef struct {
	Number int
	URL    string
}

// ScanStats summarizes one watchlist scan run.
type ScanStats struct {
	Fetched    int // messages returned by the history fetch
	Workflow   int // messages attributed to the workflow sender
	Idle       int // workflow messages past the age limit
	Resolved   int // idle messages with a linked issue
	Flagged    int // issues that received the watchlist label this run
	SkipClosed int // skipped because the issue is closed
	SkipLabel  int // skipped because the label was already present
}

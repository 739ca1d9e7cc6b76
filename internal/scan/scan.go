// Package scan implements the watchlist scan: page through recent channel
// history, pick out workflow threads that have gone idle past the age limit,
// resolve each thread's linked issue, and flag still-open issues with the
// watchlist label.
//
// The scan keeps no state between runs. Deduplication is by re-check: an
// issue already carrying the label is skipped, so running the scan twice
// against unchanged Slack/GitHub state acts only once.
package scan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"workflow_watcher/internal/config"
	"workflow_watcher/internal/logger"
	"workflow_watcher/internal/model"
)

// Tracker is the issue tracker surface the scan needs.
type Tracker interface {
	IsOpen(ctx context.Context, number int) bool
	HasLabel(ctx context.Context, number int, label string) bool
	AddLabel(ctx context.Context, number int, label string) error
}

// Notifier posts acknowledgements and resolves permalinks.
type Notifier interface {
	PostThreadReply(ctx context.Context, channelID, threadTS, text string) error
	Permalink(ctx context.Context, channelID, messageTS string) (string, error)
}

const watchlistReply = "This thread is now being monitored in the watchlist channel due to inactivity."

// Scanner runs the watchlist scan against one source channel.
type Scanner struct {
	api      Conversations
	tracker  Tracker
	notifier Notifier

	channelID          string
	watchlistChannelID string
	workflowBotID      string
	watchlistLabel     string
	ageLimit           time.Duration
	lookback           time.Duration

	now func() time.Time
}

func New(api Conversations, tracker Tracker, notifier Notifier, cfg *config.Config) *Scanner {
	return &Scanner{
		api:                api,
		tracker:            tracker,
		notifier:           notifier,
		channelID:          cfg.ChannelID,
		watchlistChannelID: cfg.WatchlistChannelID,
		workflowBotID:      cfg.WorkflowBotID,
		watchlistLabel:     cfg.WatchlistLabel,
		ageLimit:           time.Duration(cfg.MessageAgeLimitDays) * 24 * time.Hour,
		lookback:           time.Duration(cfg.HistoryLookbackDays) * 24 * time.Hour,
		now:                time.Now,
	}
}

// Run executes one scan. It returns an error only if the history fetch fails;
// per-message problems (no linked issue, closed issue, label already present,
// notification failures) skip that message and continue.
func (s *Scanner) Run(ctx context.Context) (*model.ScanStats, error) {
	log := logger.GetLogger().With(zap.String("run_id", uuid.NewString()))
	now := s.now()

	messages, err := fetchHistory(ctx, s.api, s.channelID, s.lookback, now)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched channel history",
		zap.String("channel", s.channelID),
		zap.Int("messages", len(messages)))

	stats := &model.ScanStats{Fetched: len(messages)}
	for _, msg := range messages {
		if !IsWorkflowMessage(msg, s.workflowBotID) {
			continue
		}
		stats.Workflow++
		if !OlderThan(msg.Timestamp, s.ageLimit, now) {
			continue
		}
		stats.Idle++
		log.Info("workflow thread past age limit",
			zap.String("ts", msg.Timestamp),
			zap.String("text", msg.Text))

		number, ok := issueNumberFromThread(ctx, s.api, s.channelID, msg.Timestamp)
		if !ok {
			continue
		}
		stats.Resolved++

		if !s.tracker.IsOpen(ctx, number) {
			stats.SkipClosed++
			log.Info("issue is not open, no label added", zap.Int("issue", number))
			continue
		}
		if s.tracker.HasLabel(ctx, number, s.watchlistLabel) {
			stats.SkipLabel++
			log.Info("issue already on the watchlist", zap.Int("issue", number))
			continue
		}
		if err := s.tracker.AddLabel(ctx, number, s.watchlistLabel); err != nil {
			// Already logged by the client. Skip the notifications so the
			// next run, seeing no label, retries the whole branch.
			continue
		}
		stats.Flagged++

		_ = s.notifier.PostThreadReply(ctx, s.channelID, msg.Timestamp, watchlistReply)
		if link, err := s.notifier.Permalink(ctx, s.channelID, msg.Timestamp); err == nil {
			_ = s.notifier.PostThreadReply(ctx, s.watchlistChannelID, "", link)
		}
	}

	log.Info("scan complete",
		zap.Int("fetched", stats.Fetched),
		zap.Int("workflow", stats.Workflow),
		zap.Int("idle", stats.Idle),
		zap.Int("flagged", stats.Flagged),
		zap.Int("skipped_closed", stats.SkipClosed),
		zap.Int("skipped_labeled", stats.SkipLabel))
	return stats, nil
}

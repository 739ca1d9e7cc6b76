// The bot binary runs the real-time flow over Socket Mode: it listens for
// workflow posts in the source channel, creates a tracking issue for each,
// and replies in the thread with the issue link.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"

	"workflow_watcher/internal/config"
	"workflow_watcher/internal/handler"
	"workflow_watcher/internal/logger"
	"workflow_watcher/internal/tracker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	api := slack.New(cfg.SlackBotToken, slack.OptionAppLevelToken(cfg.SlackAppToken))
	gh := tracker.New(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubName)
	slackHandler := handler.NewSlackHandler(api, gh, cfg)

	socketClient := socketmode.New(api)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for evt := range socketClient.Events {
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				logger.GetLogger().Info("connecting to Slack in Socket Mode")
			case socketmode.EventTypeConnected:
				logger.GetLogger().Info("connected to Slack")
			case socketmode.EventTypeConnectionError:
				logger.GetLogger().Error("socket mode connection error", zap.Any("data", evt.Data))
			case socketmode.EventTypeEventsAPI:
				e, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok || evt.Request == nil {
					continue
				}
				socketClient.Ack(*evt.Request)
				if evt.Request.RetryAttempt > 0 {
					// Slack redelivers events it thinks timed out; the first
					// delivery already created the issue.
					logger.GetLogger().Info("skipping retried event",
						zap.Int("retry_attempt", evt.Request.RetryAttempt),
						zap.String("retry_reason", evt.Request.RetryReason))
					continue
				}
				if e.Type != slackevents.CallbackEvent {
					continue
				}
				if ev, ok := e.InnerEvent.Data.(*slackevents.MessageEvent); ok {
					if err := slackHandler.HandleMessageEvent(ev); err != nil {
						logger.GetLogger().Error("failed to handle message event", zap.Error(err))
					}
				}
			}
		}
	}()

	logger.GetLogger().Info("workflow bot listening for events")
	if err := socketClient.RunContext(ctx); err != nil && ctx.Err() == nil {
		logger.GetLogger().Fatal("socket mode client exited", zap.Error(err))
	}
}

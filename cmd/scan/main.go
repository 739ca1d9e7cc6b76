// The scan binary runs one watchlist scan and exits: fetch recent channel
// history, find workflow threads idle past the age limit, and flag their
// still-open issues. Meant to be invoked from a scheduler such as cron.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"workflow_watcher/internal/config"
	"workflow_watcher/internal/logger"
	"workflow_watcher/internal/notify"
	"workflow_watcher/internal/scan"
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

	api := slack.New(cfg.SlackBotToken)
	gh := tracker.New(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubName)
	scanner := scan.New(api, gh, notify.New(api), cfg)

	if _, err := scanner.Run(context.Background()); err != nil {
		logger.GetLogger().Fatal("scan aborted", zap.Error(err))
	}
}

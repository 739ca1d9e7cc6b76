// The server binary runs the real-time flow over the Slack Events API: the
// same workflow handling as cmd/bot, but receiving events on an HTTP endpoint
// instead of a Socket Mode connection.
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
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

	api := slack.New(cfg.SlackBotToken)
	gh := tracker.New(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubName)
	slackHandler := handler.NewSlackHandler(api, gh, cfg)

	r := handler.Routes(slackHandler, cfg.SigningSecret)
	logger.GetLogger().Info("event server listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.GetLogger().Fatal("event server exited", zap.Error(err))
	}
}

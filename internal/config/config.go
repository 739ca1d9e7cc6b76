package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Slack configuration
	SlackBotToken      string // Required: Slack bot user OAuth token (xoxb-...)
	SlackAppToken      string // Required: Slack app-level token for Socket Mode (xapp-...)
	ChannelID          string // Required: channel the workflow posts into
	WatchlistChannelID string // Required: channel idle threads are cross-posted to
	WorkflowBotID      string // Required: bot id of the workflow sender
	SigningSecret      string // Optional: enables request verification on the HTTP events endpoint

	// GitHub configuration
	GitHubToken string // Required: GitHub API token
	GitHubRepo  string // Required: repository in owner/name form
	GitHubOwner string // derived from GitHubRepo
	GitHubName  string // derived from GitHubRepo

	// Workflow handling
	WorkflowUsername string   // display name the workflow posts under
	WatchlistLabel   string   // label applied to idle issues
	IssueLabels      []string // labels set on newly created issues
	IssueAssignees   []string // assignees set on newly created issues

	// Tunables
	MessageAgeLimitDays int // threads older than this are considered idle
	HistoryLookbackDays int // how far back the scan fetches channel history

	// HTTP events listener
	HTTPAddr string

	// Log level
	LogLevel string
}

var (
	// instance holds the singleton config instance
	instance *Config
)

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not initialized")
	}
	return instance
}

// Load creates a new Config instance from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Load required values
	requiredVars := map[string]*string{
		"SLACK_BOT_TOKEN":            &cfg.SlackBotToken,
		"SLACK_APP_TOKEN":            &cfg.SlackAppToken,
		"SLACK_CHANNEL_ID":           &cfg.ChannelID,
		"SLACK_WATCHLIST_CHANNEL_ID": &cfg.WatchlistChannelID,
		"SLACK_WORKFLOW_BOT_ID":      &cfg.WorkflowBotID,
		"GITHUB_TOKEN":               &cfg.GitHubToken,
		"GITHUB_REPO":                &cfg.GitHubRepo,
	}

	var missingVars []string
	for env, ptr := range requiredVars {
		*ptr = os.Getenv(env)
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	owner, name, ok := strings.Cut(cfg.GitHubRepo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("GITHUB_REPO must be in owner/name form, got %q", cfg.GitHubRepo)
	}
	cfg.GitHubOwner = owner
	cfg.GitHubName = name

	// Optional values with defaults
	cfg.SigningSecret = os.Getenv("SLACK_SIGNING_SECRET")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.WorkflowUsername = getenvDefault("WORKFLOW_USERNAME", "Support Ticket Helper Bot")
	cfg.WatchlistLabel = getenvDefault("WATCHLIST_LABEL", "watchlist")
	cfg.IssueLabels = splitList(getenvDefault("ISSUE_LABELS", "bug,help wanted"))
	cfg.IssueAssignees = splitList(os.Getenv("ISSUE_ASSIGNEES"))
	cfg.HTTPAddr = getenvDefault("HTTP_ADDR", ":8080")

	var err error
	cfg.MessageAgeLimitDays, err = getenvInt("MESSAGE_AGE_LIMIT_DAYS", 0)
	if err != nil {
		return nil, err
	}
	cfg.HistoryLookbackDays, err = getenvInt("HISTORY_LOOKBACK_DAYS", 1)
	if err != nil {
		return nil, err
	}

	// Store the instance
	instance = cfg

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"workflow_watcher/internal/logger"
)

// Routes builds the gin engine for the HTTP Events API transport.
func Routes(h *SlackHandler, signingSecret string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogMiddleware(), HandleSlackRetry())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/slack/events", h.handleHTTPEvent(signingSecret))
	return r
}

// handleHTTPEvent is the Events API endpoint: it answers the URL-verification
// challenge and dispatches message callbacks to the handler.
func (h *SlackHandler) handleHTTPEvent(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil || len(body) == 0 {
			c.String(http.StatusBadRequest, "empty request body")
			return
		}

		if signingSecret != "" {
			verifier, err := slack.NewSecretsVerifier(c.Request.Header, signingSecret)
			if err != nil {
				c.String(http.StatusBadRequest, "missing signature headers")
				return
			}
			if _, err := verifier.Write(body); err != nil {
				c.String(http.StatusInternalServerError, "verification failed")
				return
			}
			if err := verifier.Ensure(); err != nil {
				logger.GetLogger().Warn("rejected request with bad signature", zap.Error(err))
				c.String(http.StatusUnauthorized, "bad signature")
				return
			}
		}

		eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
		if err != nil {
			logger.GetLogger().Error("failed to parse slack event", zap.Error(err))
			c.String(http.StatusBadRequest, "failed to parse slack event")
			return
		}

		if eventsAPIEvent.Type == slackevents.URLVerification {
			var challenge slackevents.ChallengeResponse
			if err := json.Unmarshal(body, &challenge); err != nil {
				logger.GetLogger().Error("failed to unmarshal challenge", zap.Error(err))
				c.String(http.StatusBadRequest, "failed to parse challenge")
				return
			}
			c.String(http.StatusOK, challenge.Challenge)
			return
		}

		if eventsAPIEvent.Type == slackevents.CallbackEvent {
			if ev, ok := eventsAPIEvent.InnerEvent.Data.(*slackevents.MessageEvent); ok {
				if err := h.HandleMessageEvent(ev); err != nil {
					logger.GetLogger().Error("failed to handle message event", zap.Error(err))
					c.String(http.StatusInternalServerError, "failed to handle message event")
					return
				}
			}
		}

		c.String(http.StatusOK, "ok")
	}
}

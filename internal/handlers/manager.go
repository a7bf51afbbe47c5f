package handlers

import (
	"net/http"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/config"
	"github.com/Rohan-debug788/SkillSwap/internal/middleware"
	"github.com/Rohan-debug788/SkillSwap/internal/realtime"
	"github.com/Rohan-debug788/SkillSwap/internal/services"
	"github.com/Rohan-debug788/SkillSwap/pkg/monitoring"
	"github.com/Rohan-debug788/SkillSwap/pkg/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	Config   *config.Config
	Matches  *services.MatchService
	Messages *services.MessageService
	Gateway  *realtime.Gateway

	startedAt time.Time
}

func NewHandlerManager(
	cfg *config.Config,
	matches *services.MatchService,
	messages *services.MessageService,
	gateway *realtime.Gateway,
) *HandlerManager {
	return &HandlerManager{
		Config:    cfg,
		Matches:   matches,
		Messages:  messages,
		Gateway:   gateway,
		startedAt: time.Now(),
	}
}

// Router wires every route. ws serves the real-time endpoint.
func (h *HandlerManager) Router(verifier middleware.TokenVerifier, limiter *middleware.RateLimiter, ws http.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(monitoring.MetricsMiddleware())
	if limiter != nil {
		r.Use(middleware.IPRateLimit(limiter))
	}

	r.GET("/metrics", monitoring.PrometheusHandler())
	if ws != nil {
		r.GET("/ws", gin.WrapH(ws))
	}

	api := r.Group("/api")
	api.GET("/health", h.Health)

	authed := api.Group("")
	authed.Use(middleware.Auth(verifier))
	if limiter != nil {
		authed.Use(middleware.UserRateLimit(limiter))
	}

	matches := authed.Group("/matches")
	{
		matches.GET("", h.ListMatches)
		matches.GET("/potential", h.PotentialMatches)
		matches.GET("/status/:userId", h.MatchStatus)
		matches.GET("/requests/incoming", h.IncomingRequests)
		matches.GET("/requests/outgoing", h.OutgoingRequests)
		matches.POST("/request", h.CreateRequest)
		matches.POST("/accept/:requestId", h.AcceptRequest)
		matches.POST("/decline/:requestId", h.DeclineRequest)
		matches.DELETE("/requests/:requestId", h.CancelRequest)
	}

	messages := authed.Group("/messages")
	{
		messages.GET("/:userId", h.History)
		messages.POST("/read/:userId", h.MarkConversationRead)
	}

	authed.GET("/users/:id/presence", h.Presence)

	return r
}

func (h *HandlerManager) Health(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":       "ok",
		"uptime":       time.Since(h.startedAt).Round(time.Second).String(),
		"online_users": len(h.Gateway.Registry().OnlineUsers()),
	})
}

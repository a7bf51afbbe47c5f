package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/config"
	"github.com/Rohan-debug788/SkillSwap/internal/handlers"
	"github.com/Rohan-debug788/SkillSwap/internal/middleware"
	"github.com/Rohan-debug788/SkillSwap/internal/realtime"
	"github.com/Rohan-debug788/SkillSwap/internal/repositories"
	"github.com/Rohan-debug788/SkillSwap/internal/repositories/redisrepo"
	"github.com/Rohan-debug788/SkillSwap/internal/security"
	"github.com/Rohan-debug788/SkillSwap/internal/seed"
	"github.com/Rohan-debug788/SkillSwap/internal/services"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
	"github.com/Rohan-debug788/SkillSwap/pkg/monitoring"
	"github.com/Rohan-debug788/SkillSwap/telegram"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.AppEnv)
	defer logger.Sync()

	logger.Info("Starting SkillSwap server...")

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
		gin.SetMode(gin.ReleaseMode)
	}

	monitoring.Init()

	store, closeStore, err := repositories.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to open store", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedFile != "" {
		res, err := seed.LoadFile(ctx, cfg.SeedFile, store)
		if err != nil {
			logger.Fatal("Failed to load seed workbook", err)
		}
		if cfg.AppEnv == "development" {
			logDevTokens(cfg, res.UserIDs)
		}
	} else if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("In-memory store is empty, set SEED_FILE to load users and skills")
	}

	verifier := security.NewJWTVerifier(cfg.JWTSecret)
	matchSvc := services.NewMatchService(store, cfg.MaxRequestNoteLength)
	messageSvc := services.NewMessageService(store, cfg.MaxMessageLength)

	registry := realtime.NewRegistry()
	gateway := realtime.NewGateway(registry, messageSvc, verifier)
	gateway.SetPresenceScope(cfg.PresenceScope, matchSvc)

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		presence := redisrepo.NewPresenceRepo(client)
		if err := presence.Reset(ctx); err != nil {
			logger.Warn("Redis presence mirror unavailable, continuing without it", "addr", cfg.RedisAddr, "error", err)
		} else {
			gateway.SetPresenceMirror(presence)
			logger.Info("Redis presence mirror enabled", "addr", cfg.RedisAddr)
		}
	}

	if cfg.BotToken != "" {
		bot, err := telegram.InitBot(cfg, verifier, store)
		if err != nil {
			logger.Warn("Telegram notifier disabled", "error", err)
		} else {
			notifier := services.NewOfflineNotifier(store, registry, bot)
			matchSvc.SetNotifier(notifier)
			messageSvc.SetNotifier(notifier)
			go bot.Start(ctx)
		}
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, cfg.GetRateLimitWindow())
	defer limiter.Close()

	ws := realtime.NewWSHandler(gateway, realtime.WSOptions{
		MaxMessageBytes: cfg.WSMaxMessageBytes,
		EventsPerSecond: cfg.WSEventsPerSecond,
		EventBurst:      cfg.WSEventBurst,
		SendBuffer:      cfg.WSSendBuffer,
	})

	manager := handlers.NewHandlerManager(cfg, matchSvc, messageSvc, gateway)
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           manager.Router(verifier, limiter, ws),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "port", cfg.AppPort, "env", cfg.AppEnv, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// logDevTokens prints an access token per seeded user so a local client can connect.
func logDevTokens(cfg *config.Config, userIDs []string) {
	for _, id := range userIDs {
		token, err := security.GenerateJWT(id, "", cfg.JWTSecret, cfg.GetJWTTTL())
		if err != nil {
			logger.Warn("Failed to issue development token", "user_id", id, "error", err)
			continue
		}
		logger.Info("Development token", "user_id", id, "token", token)
	}
}

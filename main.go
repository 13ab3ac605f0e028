package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/slack-go/slack"
)

func main() {
	config := loadConfig(getEnv("HUBHOOK_CONFIG", "config.yaml"))
	initLogger(config.LogLevel)

	rules, err := CompileRules(config.Rules)
	if err != nil {
		logger.Fatal("invalid rule configuration: %v", err)
	}
	logger.Info("compiled %d routing rules", len(rules))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slackClient := slack.New(config.SlackBotToken)

	// Optional bus ingestion alongside the HTTP endpoint.
	if config.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", config.RedisHost, config.RedisPort),
			Password: config.RedisPassword,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis: %v", err)
		}
		logger.Info("Connected to Redis successfully")

		go subscribeEvents(ctx, rdb, config.RedisChannel, rules, slackClient)
	}

	handler := &webhookHandler{
		secret: []byte(config.WebhookSecret),
		debug:  config.Debug,
		rules:  rules,
		poster: slackClient,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodPost, "/webhook", handler)

	server := &http.Server{
		Addr:    ":" + config.Port,
		Handler: r,
	}

	go func() {
		logger.Info("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error: %v", err)
		}
	}()

	<-sigChan
	logger.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown: %v", err)
	}
}

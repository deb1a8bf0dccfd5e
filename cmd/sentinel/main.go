package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sellerops/allegro-sentinel/allegro"
	"github.com/sellerops/allegro-sentinel/discordhook"
	"github.com/sellerops/allegro-sentinel/insights"
	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
	"github.com/sellerops/allegro-sentinel/internal/biz/usecase"
	"github.com/sellerops/allegro-sentinel/internal/conf"
	"github.com/sellerops/allegro-sentinel/internal/data"
	"github.com/sellerops/allegro-sentinel/internal/server"
	"github.com/sellerops/allegro-sentinel/internal/service"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := conf.LoadFromEnv()

	logger := newLogger(cfg.Debug)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Clients
	allegroClient := allegro.NewClient(allegro.Config{
		ClientID:     cfg.Allegro.ClientID,
		ClientSecret: cfg.Allegro.ClientSecret,
		RedirectURI:  cfg.Allegro.RedirectURI,
	})
	ordersWebhook := discordhook.NewClient(cfg.Discord.OrdersWebhookURL, discordhook.ColorOrder)
	messagesWebhook := discordhook.NewClient(cfg.Discord.MessagesWebhookURL, discordhook.ColorMessage)
	insightsClient := insights.NewClient(cfg.Insights.APIKey, cfg.Insights.BaseURL, cfg.Insights.Model)

	// Repository layer
	repos := data.NewRepositories(allegroClient, ordersWebhook, messagesWebhook)

	// Shared runtime state
	mode := domain.NewMode()
	render := cfg.Templates.ToRenderConfig()

	// Usecase layer
	monitorUC := usecase.NewOrderMonitorUsecase(
		repos.Marketplace, repos.Notifier, mode,
		domain.NewLedger(cfg.Monitor.LedgerCapacity),
		render, cfg.Monitor.FreshnessWin, cfg.Monitor.FetchLimit, logger,
	)
	responderUC := usecase.NewResponderUsecase(
		repos.Marketplace, repos.Notifier, mode,
		domain.NewLedger(cfg.Monitor.LedgerCapacity),
		render, cfg.Responder.FreshnessWin, cfg.Responder.FetchLimit, logger,
	)

	// Poll loops
	monitorLoop := service.NewPollLoop("orders", monitorUC, cfg.Monitor.PollInterval, logger)
	responderLoop := service.NewPollLoop("messages", responderUC, cfg.Responder.PollInterval, logger)
	monitorLoop.Start()
	responderLoop.Start()

	// HTTP API
	handler := server.NewHandler(mode, repos.Marketplace, monitorUC, insightsClient, logger)
	router := server.NewRouter(handler, logger)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // insights calls are slow
	}
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http api listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	logger.Info().
		Str("safety_mode", string(mode.Snapshot().Safety)).
		Dur("order_poll", cfg.Monitor.PollInterval).
		Dur("message_poll", cfg.Responder.PollInterval).
		Msg("sentinel started, waiting for authorization code")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info().Msg("shutting down")
	monitorLoop.Stop()
	responderLoop.Stop()
	httpServer.Close()
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if debug {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Logger()
	}
	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Logger()
}

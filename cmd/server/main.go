package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"signals-backend/internal/config"
	deliveryhttp "signals-backend/internal/delivery/http"
	"signals-backend/internal/delivery/websocket"
	"signals-backend/internal/domain"
	"signals-backend/internal/infrastructure/binance"
	"signals-backend/internal/infrastructure/db"
	"signals-backend/internal/infrastructure/fcm"
	"signals-backend/internal/infrastructure/telegram"
	"signals-backend/internal/repository"
	"signals-backend/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	// Trade ledger: JSON file, mirrored to Postgres when configured.
	var store domain.TradeStore = repository.NewJSONTradeStore(cfg.Ledger.Path)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		ctx := context.Background()
		pool, err := db.NewPool(ctx, dbURL, db.DefaultPoolConfig())
		if err != nil {
			logger.Error().Err(err).Msg("postgres unavailable, ledger mirror disabled")
		} else if err := db.Migrate(ctx, pool); err != nil {
			logger.Error().Err(err).Msg("postgres migration failed, ledger mirror disabled")
		} else {
			store = repository.NewMirroredTradeStore(store, repository.NewPostgresTradeStore(pool))
			logger.Info().Msg("trade ledger mirrored to postgres")
		}
	}

	tracker := usecase.NewTracker(store, logger.With().Str("component", "tracker").Logger())

	fcmClient, err := fcm.NewClient(logger.With().Str("component", "fcm").Logger())
	if err != nil {
		logger.Error().Err(err).Msg("fcm initialization failed, push notifications disabled")
		fcmClient = nil
	}
	tgClient := telegram.NewClient(os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"))
	if !tgClient.Enabled() {
		logger.Warn().Msg("TELEGRAM_BOT_TOKEN/TELEGRAM_CHAT_ID not set, telegram reports disabled")
	}

	devices := repository.NewDeviceRegistry()
	notifier := usecase.NewNotifier(
		fcmClient,
		tgClient,
		devices,
		time.Duration(cfg.Notify.CooldownMin)*time.Minute,
		logger.With().Str("component", "notifier").Logger(),
	)

	results := repository.NewInMemoryResultRepository()
	analyzer := usecase.NewAnalyzer(cfg.Scan.MinBars, cfg.Scan.PivotWindow, cfg.Scoring)
	scanner := usecase.NewScanner(
		cfg,
		binance.NewClient(""),
		analyzer,
		results,
		tracker,
		notifier,
		logger.With().Str("component", "scanner").Logger(),
	)
	go scanner.Run()

	analysisHandler := deliveryhttp.NewAnalysisHandler(results)
	tradeHandler := deliveryhttp.NewTradeHandler(tracker)
	tokenHandler := deliveryhttp.NewTokenHandler(devices)
	wsHandler := websocket.NewHandler(results, logger.With().Str("component", "ws").Logger())

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyses", analysisHandler.GetAnalyses)
	mux.HandleFunc("/api/alerts", analysisHandler.GetAlerts)
	mux.HandleFunc("/api/trades", tradeHandler.GetAllTrades)
	mux.HandleFunc("/api/trades/open", tradeHandler.GetOpenTrades)
	mux.HandleFunc("/api/signals", tradeHandler.CreateSignal)
	mux.HandleFunc("/api/signals/parse", tradeHandler.ParseSignal)
	mux.HandleFunc("/api/tokens", tokenHandler.Register)
	mux.HandleFunc("/api/tokens/unregister", tokenHandler.Unregister)
	mux.HandleFunc("/ws", wsHandler.Handle)

	logger.Info().Str("addr", cfg.Server.Addr).Msg("server listening")
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

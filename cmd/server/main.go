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

	"tour-admin/config"
	"tour-admin/internal/events"
	"tour-admin/internal/handler"
	"tour-admin/internal/logging"
	"tour-admin/internal/metrics"
	"tour-admin/internal/notifier"
	"tour-admin/internal/repository"
	"tour-admin/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Configuration
	cfg := config.LoadConfig()
	logging.Setup(cfg.Log.Level, cfg.Server.Env)
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to Database
	conn, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Migrations run only when asked; cmd/migrate is the usual path.
	if cfg.Database.AutoMigrate {
		ran, err := database.Migrate(ctx, conn.Gorm)
		if err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Interface("versions", ran).Msg("migrations completed")
	}

	if cfg.Metrics.Enabled {
		metrics.Register()
		go startMetricsServer(ctx, cfg.Metrics.Port)
	}

	publisher := newPublisher(cfg.Kafka)
	defer publisher.Close()

	// 4. Initialize Router
	router := handler.NewRouter(handler.Deps{
		Bookings:       repository.NewBookingRepository(conn.Gorm),
		Catalog:        repository.NewCatalogRepository(conn.Gorm),
		Prices:         repository.NewPriceRepository(conn.SQL),
		Settings:       repository.NewSettingsRepository(conn.Gorm),
		Events:         publisher,
		Notifiers:      newNotifiers(cfg),
		CompanyName:    cfg.Company.Name,
		Timezone:       cfg.Company.Timezone,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	// 5. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to run server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

func newPublisher(cfg config.KafkaConfig) events.Publisher {
	if len(cfg.Brokers) == 0 {
		log.Info().Msg("KAFKA_BROKERS not set, booking events are discarded")
		return events.NopPublisher{}
	}
	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("publishing booking events to kafka")
	return events.NewKafkaPublisher(cfg.Brokers, cfg.Topic)
}

// newNotifiers builds the channels that have credentials. A Telegram bot
// that fails to authenticate is left out rather than stopping startup.
func newNotifiers(cfg *config.Config) *notifier.Set {
	var list []notifier.Notifier

	if cfg.Telegram.BotToken != "" {
		tg, err := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.APIEndpoint)
		if err != nil {
			log.Error().Err(err).Msg("telegram notifier disabled")
		} else {
			list = append(list, tg)
		}
	}
	if cfg.Line.ChannelToken != "" && cfg.Line.To != "" {
		list = append(list, notifier.NewLine(cfg.Line.APIBaseURL, cfg.Line.ChannelToken, cfg.Line.To))
	}

	set := notifier.NewSet(list...)
	log.Info().Strs("channels", set.Names()).Msg("notifiers configured")
	return set
}

func startMetricsServer(ctx context.Context, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	log.Info().Int("port", port).Msg("metrics server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics server error")
	}
}

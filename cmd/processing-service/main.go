package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/chasepay/processing-service/internal/app/background"
	"github.com/chasepay/processing-service/internal/config"
	publisher "github.com/chasepay/processing-service/internal/infrastructure/kafka"
	"github.com/chasepay/processing-service/internal/infrastructure/metrics"
	"github.com/chasepay/processing-service/internal/infrastructure/migrate"
	"github.com/chasepay/processing-service/internal/infrastructure/notifier"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/repository"
	"github.com/chasepay/processing-service/internal/usecase"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.ProcessingDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.ProcessingDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	store := repository.NewSQLStore(db)

	registry := prometheus.NewRegistry()
	processingMetrics := metrics.NewProcessingMetrics(registry)

	var events usecase.EventPublisher
	if cfg.KafkaService.Enabled {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		kafkaPublisher := publisher.NewKafkaPublisher(brokers, cfg.KafkaService.Topic)
		defer kafkaPublisher.Close()
		events = kafkaPublisher
	}

	dispatcher := notifier.NewDispatcher(cfg.CallbackConfig.Timeout, store.Callbacks(), processingMetrics)

	// Init transaction usecase
	transactionUsecase := usecase.NewDefaultTransactionUsecase(store, dispatcher, events, processingMetrics)
	// Init notification matcher
	matcher := usecase.NewNotificationMatcher(
		store,
		transactionUsecase,
		processingMetrics,
		cfg.MatcherConfig.BatchSize,
		cfg.MatcherConfig.AmountTolerance,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tasks := background.NewBackgroundTasks(matcher, transactionUsecase, store, cfg.MatcherConfig)
	tasks.StartAll(ctx)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		log.Printf("metrics server started on %s\n", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("metrics server stopped: %v\n", err)
		}
	}()

	log.Println("processing service started")
	<-ctx.Done()
	log.Println("shutting down")
}

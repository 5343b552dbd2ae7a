package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadchandra19/paper-exchange/internal/app/engine"
	"github.com/muhammadchandra19/paper-exchange/internal/config"
	notificationv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/notification/v1"
	"github.com/muhammadchandra19/paper-exchange/internal/infrastructure/credential"
	"github.com/muhammadchandra19/paper-exchange/internal/infrastructure/gateway"
	"github.com/muhammadchandra19/paper-exchange/internal/infrastructure/kafka/notification"
	"github.com/muhammadchandra19/paper-exchange/internal/infrastructure/postgresql/order"
	"github.com/muhammadchandra19/paper-exchange/internal/infrastructure/postgresql/wallet"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/executor"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/ingestor"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/resting"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/scheduler"
	"github.com/muhammadchandra19/paper-exchange/internal/usecase/ticker"
	"github.com/muhammadchandra19/paper-exchange/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/postgresql"
	"github.com/muhammadchandra19/paper-exchange/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(err)
	}

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		panic(err)
	}

	log = l.WithFields(logger.Field{Key: "service", Value: cfg.App.Name})
}

func main() {
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	rclient := redis.NewClient(log, &cfg.Redis)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "connect_redis"})
		if !rclient.Reconnect(ctx) {
			return
		}
	}
	defer disconnectRedis(rclient)

	pgClient, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "connect_postgres"})
		return
	}
	defer pgClient.Close()

	book, err := engine.NewBookBackend(cfg.Matching.BookBackend, rclient, cfg.Ingest.SnapshotTTL, log)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "create_book_backend"})
		return
	}

	ticks := ticker.NewTicker(rclient, ticker.Config{
		TTL:          cfg.Ingest.TickTTL,
		TickChannel:  cfg.Ingest.TickChannel,
		DepthChannel: cfg.Ingest.DepthChannel,
	}, log)

	ing, err := ingestor.NewIngestor(
		ingestor.Config{
			Instruments:   cfg.Ingest.Instruments,
			BatchSize:     cfg.Ingest.BatchSize,
			BatchDelay:    cfg.Ingest.BatchDelay,
			DepthCutoff:   cfg.Ingest.DepthCutoff,
			Timezone:      cfg.Ingest.Timezone,
			ReconnectBase: cfg.Ingest.ReconnectBase,
			ReconnectMax:  cfg.Ingest.ReconnectMax,
			WriteThrottle: cfg.Ingest.WriteThrottle,
		},
		credential.NewProvider(rclient, cfg.Gateway.CredentialKey, cfg.Gateway.ApprovalKey, log),
		gateway.NewDialer(gateway.Config{
			URL:              cfg.Gateway.URL,
			HandshakeTimeout: cfg.Gateway.HandshakeTimeout,
		}, log),
		book,
		ticks,
		ticks,
		log,
	)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "create_ingestor"})
		return
	}

	var publisher notificationv1.Publisher
	if cfg.Kafka.Enabled {
		publisher = notification.NewPublisher(notification.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}, log)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error(err, logger.Field{Key: "action", Value: "close_publisher"})
			}
		}()
	}

	orders := order.NewRepository(pgClient, log)
	index := resting.NewIndex(rclient, log)
	exec := executor.NewExecutor(
		orders,
		wallet.NewRepository(pgClient, log),
		index,
		book,
		postgresql.NewTransactor(pgClient, postgresql.ReadCommittedTxOptions()),
		publisher,
		log,
	)
	sched := scheduler.NewScheduler(cfg.Matching.Interval, cfg.Matching.ScanLimit, index, orders, exec, log)

	eng := engine.NewEngine(ing, sched, log)

	health := healthcheck.New(healthcheck.DefaultTimeout)
	health.Register("redis", engine.RedisCheck(rclient))
	health.Register("postgres", engine.PostgresCheck(pgClient))
	health.Register("gateway", engine.GatewayCheck(ing))

	server := &http.Server{
		Addr:              cfg.App.HealthAddr,
		Handler:           health.Handler(http.NotFoundHandler()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error(err, logger.Field{Key: "action", Value: "serve_health"})
		}
	}()

	if err := eng.Start(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "start_engine"})
		return
	}

	log.Info("Matching core started",
		logger.Field{Key: "instruments", Value: cfg.Ingest.Instruments},
		logger.Field{Key: "book_backend", Value: cfg.Matching.BookBackend},
	)

	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})
	case <-eng.Dead():
		log.Warn("Engine stopped unexpectedly")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := eng.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_engine"})
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_health_server"})
	}

	log.Info("Matching core shutdown complete")
}

func disconnectRedis(client redis.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "disconnect_redis"})
	}
}

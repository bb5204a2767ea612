package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fortuna/courtside/internal/aggregate"
	"github.com/fortuna/courtside/internal/api/rest"
	"github.com/fortuna/courtside/internal/api/websocket"
	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/discovery"
	"github.com/fortuna/courtside/internal/gamequeue"
	"github.com/fortuna/courtside/internal/league"
	"github.com/fortuna/courtside/internal/poller"
	"github.com/fortuna/courtside/internal/provider"
	"github.com/fortuna/courtside/internal/publisher"
	"github.com/fortuna/courtside/internal/rank"
	"github.com/fortuna/courtside/internal/scheduler"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

const serviceName = "courtside"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Infow("starting service", "service", serviceName)

	leagues, err := league.All(cfg.Leagues)
	if err != nil {
		logger.Fatalw("invalid league config", "error", err)
	}

	db, err := store.NewDatabase(cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Fatalw("failed to run migrations", "error", err)
	}

	redisCache, err := connectRedis(cfg.RedisURL, logger)
	if err != nil {
		logger.Fatalw("failed to connect to redis", "error", err)
	}
	defer redisCache.Close()

	streamPublisher := publisher.NewRedisStreamPublisher(redisCache.Client())

	teamRepo := repository.NewTeamRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	gameRepo := repository.NewGameRepository(db)
	eventRepo := repository.NewEventStatsRepository(db)
	queueRepo := repository.NewQueueRepository(db)

	providerClient := provider.New(cfg.ProviderBaseURL, logger)

	aggregator := aggregate.NewEngine(teamRepo, playerRepo, eventRepo, logger)
	ranker := rank.NewEngine(teamRepo, logger)

	sched := scheduler.New(db, logger)

	gamePoller := poller.New(poller.Config{
		Provider:  providerClient,
		Games:     gameRepo,
		Teams:     teamRepo,
		Players:   playerRepo,
		Events:    eventRepo,
		Cache:     redisCache,
		Publisher: streamPublisher,
		Finalizer: aggregator,
		Ranker:    ranker,
		Scheduler: sched,
		Logger:    logger,
	})
	sched.Register(poller.TaskGameCheck, gamePoller.HandleTask)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sched.ResetStuckTasks(ctx); err != nil {
		logger.Warnw("failed to reset stuck tasks", "error", err)
	}
	if err := queueRepo.ResetStuck(ctx); err != nil {
		logger.Warnw("failed to reset stuck queue entries", "error", err)
	}

	sched.Start(ctx)
	logger.Info("scheduler started")

	queue := gamequeue.New(queueRepo, gameRepo, gamePoller, logger)
	queue.Start(ctx)
	logger.Info("game queue started")

	discoverySvc := discovery.NewService(providerClient, teamRepo, gameRepo, playerRepo, sched, logger)
	orchestrator := discovery.NewOrchestrator(discoverySvc, leagues, cfg.DiscoveryHour, logger)
	go orchestrator.Start(ctx)
	logger.Infow("discovery orchestrator started", "hour", cfg.DiscoveryHour)

	restHandler := rest.NewHandler(db, queue, teamRepo, playerRepo, gameRepo, eventRepo, logger)
	restServer := rest.NewServer(cfg.RESTPort, restHandler, logger)
	go func() {
		logger.Infow("rest server listening", "port", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			logger.Errorw("rest server stopped", "error", err)
		}
	}()

	wsServer := websocket.NewServer(redisCache.Client(), leagues, logger)
	go func() {
		if err := wsServer.Start(ctx, cfg.WSPort); err != nil {
			logger.Errorw("websocket server stopped", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("rest shutdown error", "error", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("websocket shutdown error", "error", err)
	}
	queue.Shutdown()
	sched.Shutdown()

	logger.Info("shutdown complete")
}

// connectRedis retries the connection so the service survives Redis
// coming up after it in compose environments.
func connectRedis(redisURL string, logger *zap.SugaredLogger) (*cache.RedisCache, error) {
	const maxRetries = 30
	const retryDelay = 2 * time.Second

	var redisCache *cache.RedisCache
	var err error
	for i := 0; i < maxRetries; i++ {
		redisCache, err = cache.NewRedisCache(redisURL)
		if err == nil {
			return redisCache, nil
		}
		if i < maxRetries-1 {
			logger.Warnw("redis connection failed, retrying", "attempt", i+1, "error", err)
			time.Sleep(retryDelay)
		}
	}
	return nil, err
}

func newLogger(level string) *zap.SugaredLogger {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel)
	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	return logger.Sugar()
}

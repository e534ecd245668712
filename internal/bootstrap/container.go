package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-pitch-evaluator-be/internal/config"
	"ai-pitch-evaluator-be/internal/controller"
	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/internal/pkg/mailer"
	"ai-pitch-evaluator-be/internal/repository/contract"
	"ai-pitch-evaluator-be/internal/repository/implementation"
	"ai-pitch-evaluator-be/internal/repository/memory"
	"ai-pitch-evaluator-be/internal/service"
	"ai-pitch-evaluator-be/internal/websocket"
	"ai-pitch-evaluator-be/pkg/advisor"
	"ai-pitch-evaluator-be/pkg/conversation"
	"ai-pitch-evaluator-be/pkg/database"
	"ai-pitch-evaluator-be/pkg/events"
	"ai-pitch-evaluator-be/pkg/llm"
	"ai-pitch-evaluator-be/pkg/llm/factory"
	pktNats "ai-pitch-evaluator-be/pkg/nats"
	"ai-pitch-evaluator-be/pkg/scoring"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	PitchController  controller.IPitchController
	ResultController controller.IResultController
	Hub              *websocket.Hub

	Logger  logger.ILogger
	rdb     redis.UniversalClient
	closers []func()
}

// NewContainer wires every dependency from cfg. Optional infrastructure
// (NATS, SMTP) degrades to a warning; the LLM provider and the result
// store are required. The caller runs Hub.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = llmLogger.Sync(); _ = sysLogger.Sync() })

	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OpenAIKey:     cfg.Ai.OpenAIKey,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	repo, err := c.newResultRepository(cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	resultOpts := []service.ResultServiceOption{
		service.WithLeaderboardCache(cfg.Store.LeaderboardCacheTTL),
	}
	c.Hub = websocket.NewHub(c.rdb, cfg.Store.KeyPrefix+websocket.DefaultChannel, sysLogger)
	if sink := events.FanOut(c.newEventSink(cfg), c.Hub); sink != nil {
		resultOpts = append(resultOpts, service.WithEvents(events.NewResultPublisher(sink, sysLogger)))
	}
	if cfg.SMTP.Host != "" {
		resultOpts = append(resultOpts, service.WithMailer(mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)))
	} else {
		log.Printf("[INFO] SMTP_HOST not set, result summary mails disabled")
	}

	pitchService := newPitchService(llmProvider, llmLogger, sysLogger, cfg.Ai)
	resultService := service.NewResultService(repo, sysLogger, resultOpts...)

	c.PitchController = controller.NewPitchController(pitchService)
	c.ResultController = controller.NewResultController(resultService)
	return c, nil
}

func newPitchService(provider llm.LLMProvider, trace, sys logger.ILogger, ai config.AIConfig) service.IPitchService {
	return service.NewPitchService(
		conversation.NewExtractor(provider, trace, ai.LLMModel),
		scoring.NewEngine(provider, trace, ai.LLMModel, scoring.Canonical),
		advisor.NewAdvisor(provider, trace, ai.LLMModel, ai.HelperModel),
		sys,
	)
}

func (c *Container) newResultRepository(cfg *config.Config) (contract.ResultRepository, error) {
	switch cfg.Store.Driver {
	case "redis", "":
		opt, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.Store.RedisURL}
		}
		rdb := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.rdb = rdb
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return implementation.NewRedisResultRepository(rdb, cfg.Store.KeyPrefix), nil

	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Store.DatabaseConnection, cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return c.gormResultRepository(db)

	case "memory":
		log.Printf("[WARN] Using in-memory result store, data is lost on restart")
		return memory.NewResultRepository(), nil

	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER: %s", cfg.Store.Driver)
	}
}

// gormResultRepository owns db from here on: the pool is closed with the
// container even when migration fails.
func (c *Container) gormResultRepository(db *gorm.DB) (contract.ResultRepository, error) {
	if sqlDB, err := db.DB(); err == nil {
		c.closers = append(c.closers, func() { _ = sqlDB.Close() })
	}
	repo := implementation.NewGormResultRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("migrate results table: %w", err)
	}
	return repo, nil
}

// newEventSink returns nil when NATS is not configured or unreachable.
func (c *Container) newEventSink(cfg *config.Config) events.Sink {
	if cfg.App.NatsURL == "" {
		return nil
	}
	pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		return nil
	}
	c.closers = append(c.closers, pub.Close)
	return pub
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

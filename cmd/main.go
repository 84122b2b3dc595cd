package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alebedeva/cardforge/internal/cart"
	"github.com/alebedeva/cardforge/internal/catalog"
	"github.com/alebedeva/cardforge/internal/config"
	"github.com/alebedeva/cardforge/internal/db"
	"github.com/alebedeva/cardforge/internal/editor"
	"github.com/alebedeva/cardforge/internal/genai"
	"github.com/alebedeva/cardforge/internal/kafka"
	"github.com/alebedeva/cardforge/internal/logger"
	"github.com/alebedeva/cardforge/internal/moderation"
	"github.com/alebedeva/cardforge/internal/repository/postgresql"
	"github.com/alebedeva/cardforge/internal/server"
	"github.com/alebedeva/cardforge/internal/storage"
)

const configPath = "config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.Default()
	}

	log := logger.New(cfg.Debug)
	defer func() { _ = log.Sync() }()

	cat := catalog.New()
	cat.Seed()

	carts, err := cart.NewFileStore(cfg.Cart.Dir)
	if err != nil {
		log.Fatal("failed to init cart store", zap.Error(err))
	}

	blocklist := cfg.Moderation.Blocklist
	if len(blocklist) == 0 {
		blocklist = moderation.DefaultBlocklist
	}
	policy := moderation.NewBlocklistPolicy(blocklist)
	generator := genai.NewClient(cfg.GenAI.BaseURL, cfg.GenAI.APIKey, cfg.GenAITimeout(), policy)

	var (
		orders    server.OrderStorage
		users     server.UserValidator
		publisher *kafka.Publisher
	)

	if dsn := config.DatabaseDSN(); dsn != "" {
		database, err := db.New(ctx, dsn)
		if err != nil {
			log.Fatal("database init failed", zap.Error(err))
		}
		defer database.Close()

		orderRepo := postgresql.NewOrderRepo(database)
		outboxRepo := postgresql.NewOutboxTaskRepo()
		orders = storage.NewPostgresStorage(database, orderRepo, outboxRepo, cfg.Kafka.Topic, cfg.Orders.NumberPrefix)
		users = postgresql.NewUserRepo(database)

		var producer kafka.Producer
		if cfg.Kafka.Console {
			producer = kafka.NewConsoleProducer()
		} else {
			producer = kafka.NewWriterProducer(cfg.Kafka.Brokers)
		}
		publisher = kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
			PollInterval: cfg.KafkaPollInterval(),
			BatchSize:    20,
			MaxAttempts:  5,
		}, log)
	} else {
		log.Info("DB_HOST not set, using in-memory order storage")
		orders = storage.NewMemoryStorage(cfg.Orders.NumberPrefix)
		users = server.NewStaticUserValidator(
			os.Getenv("ADMIN_USERNAME"),
			os.Getenv("ADMIN_PASSWORD"),
		)
	}

	srv := server.New(cat, carts, editor.NewSessionManager(), orders, users, generator, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx, cfg.Server.Port, cfg.ReadTimeout(), cfg.WriteTimeout())
	})

	if publisher != nil {
		g.Go(func() error {
			publisher.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
		if publisher != nil {
			publisher.Shutdown()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal("service exited", zap.Error(err))
	}
	log.Info("service stopped")
}

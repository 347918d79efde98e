package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httptransport "github.com/broncodesk/ticket-tracker/internal/api/http"
	"github.com/broncodesk/ticket-tracker/internal/api/http/handlers"
	"github.com/broncodesk/ticket-tracker/internal/auth"
	"github.com/broncodesk/ticket-tracker/internal/cache"
	"github.com/broncodesk/ticket-tracker/internal/config"
	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/events"
	"github.com/broncodesk/ticket-tracker/internal/identity"
	"github.com/broncodesk/ticket-tracker/internal/lifecycle"
	"github.com/broncodesk/ticket-tracker/internal/observability"
	"github.com/broncodesk/ticket-tracker/internal/query"
	"github.com/broncodesk/ticket-tracker/internal/store"
	"github.com/broncodesk/ticket-tracker/internal/store/memstore"
	"github.com/broncodesk/ticket-tracker/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	policy, err := lifecycle.ParseHandlerPolicy(cfg.Tracker.HandlerPolicy)
	if err != nil {
		logger.Fatal("invalid handler policy", zap.Error(err))
	}
	pager, err := query.NewPager(cfg.Tracker.PageSize)
	if err != nil {
		logger.Fatal("invalid page size", zap.Error(err))
	}

	var (
		tickets  store.TicketStore
		groups   store.GroupDirectory
		accounts identity.AccountDirectory
		checks   = map[string]handlers.Pinger{}
	)
	if cfg.Postgres.DSN != "" {
		pool, err := postgres.NewPool(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pool.Close()
		if cfg.Postgres.BootstrapSchema {
			if err := postgres.Bootstrap(ctx, pool, logger); err != nil {
				logger.Fatal("failed to bootstrap schema", zap.Error(err))
			}
		}
		tickets = postgres.NewTicketStore(pool)
		groups = postgres.NewGroupDirectory(pool)
		accounts = postgres.NewAccountDirectory(pool)
		checks["postgres"] = pool
	} else {
		logger.Warn("no POSTGRES_DSN configured, using in-memory store with demo data")
		tickets, groups, accounts = seedMemoryBackend(cfg, logger)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	snapshots := cache.NewSnapshotCache(redisClient, cfg.Tracker.SnapshotTTL(), logger)
	checks["redis"] = snapshots
	lister := cache.NewLister(tickets, snapshots)

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditLog(dispatcher, logger)

	engine := lifecycle.NewEngine(lifecycle.Dependencies{
		Tickets:    tickets,
		Groups:     groups,
		Dispatcher: dispatcher,
		Snapshots:  snapshots,
		Policy:     policy,
	})

	tokens := identity.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	identityService := identity.NewService(accounts, tokens)
	authMiddleware := auth.NewMiddleware(identity.NewJWTProvider(tokens))

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Auth:           handlers.NewAuthHandler(identityService),
		Tickets:        handlers.NewTicketsHandler(engine, lister, pager),
		Admin:          handlers.NewAdminHandler(engine, lister, groups, pager),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// seedMemoryBackend builds the development backend: two assignable
// groups and a pair of login accounts (admin@example.com / admin,
// user@example.com / user).
func seedMemoryBackend(cfg *config.Config, logger *zap.Logger) (store.TicketStore, store.GroupDirectory, identity.AccountDirectory) {
	bob := "Bob Martinez"
	groups := memstore.NewGroups(
		domain.Group{
			ID:             "technical-support",
			Name:           "Technical Support",
			Members:        []string{"Alice Chen", bob},
			DefaultHandler: &bob,
		},
		domain.Group{
			ID:      "billing",
			Name:    "Billing",
			Members: []string{"Charlie Fox", "Diana Reyes"},
		},
	)

	adminHash, err := identity.HashPassword("admin", cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash seed password", zap.Error(err))
	}
	userHash, err := identity.HashPassword("user", cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash seed password", zap.Error(err))
	}
	accounts := memstore.NewAccounts(
		identity.Account{
			ID:           "acc-admin",
			Name:         "Avery Admin",
			Email:        "admin@example.com",
			PasswordHash: adminHash,
			Role:         domain.RoleAdmin,
		},
		identity.Account{
			ID:           "acc-user",
			Name:         "Uma User",
			Email:        "user@example.com",
			PasswordHash: userHash,
			Role:         domain.RoleEndUser,
		},
	)

	return memstore.New(), groups, accounts
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

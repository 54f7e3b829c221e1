package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codygriffin/cardboard/internal/catalog"
	"github.com/codygriffin/cardboard/internal/common/clock"
	"github.com/codygriffin/cardboard/internal/common/idgen"
	"github.com/codygriffin/cardboard/internal/common/logger"
	"github.com/codygriffin/cardboard/internal/common/metrics"
	"github.com/codygriffin/cardboard/internal/config"
	"github.com/codygriffin/cardboard/internal/handlers/discord"
	"github.com/codygriffin/cardboard/internal/images"
	"github.com/codygriffin/cardboard/internal/repositories/guildconfig"
	"github.com/codygriffin/cardboard/internal/repositories/inventory"
	"github.com/codygriffin/cardboard/internal/repositories/user"
	"github.com/codygriffin/cardboard/internal/services/collection"
	"github.com/codygriffin/cardboard/internal/services/trade"
	"github.com/codygriffin/cardboard/internal/session"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		zlog.Fatalw("failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
	}

	// Initialize repositories
	userRepo, err := user.NewRedis(&user.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		zlog.Fatalw("failed to create user repository", "error", err)
	}

	inventoryRepo, err := inventory.NewRedis(&inventory.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		zlog.Fatalw("failed to create inventory repository", "error", err)
	}

	guildConfigRepo, err := guildconfig.NewRedis(&guildconfig.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		zlog.Fatalw("failed to create guild config repository", "error", err)
	}

	// Load the card catalog
	cards, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		zlog.Fatalw("failed to load card catalog", "path", cfg.CatalogPath, "error", err)
	}

	cat, err := catalog.New(&catalog.Config{
		Cards: cards,
	})
	if err != nil {
		zlog.Fatalw("failed to build card catalog", "error", err)
	}
	zlog.Infow("card catalog loaded", "path", cfg.CatalogPath, "cards", cat.Size())

	// Shared infrastructure
	clk := clock.New()
	gen := idgen.New(&idgen.Config{})
	m := metrics.New()

	sessions, err := session.New(&session.Config{
		UserRepo:      userRepo,
		InventoryRepo: inventoryRepo,
		Logger:        zlog,
	})
	if err != nil {
		zlog.Fatalw("failed to create session cache", "error", err)
	}

	// Initialize services
	collectionSvc, err := collection.New(&collection.Config{
		Sessions:      sessions,
		UserRepo:      userRepo,
		InventoryRepo: inventoryRepo,
		Catalog:       cat,
		IDGen:         gen,
		Clock:         clk,
		Logger:        zlog,
		Metrics:       m,
		DrawCooldown:  cfg.DrawCooldown,
		PackCooldown:  cfg.PackCooldown,
		PickCooldown:  cfg.PickCooldown,
	})
	if err != nil {
		zlog.Fatalw("failed to create collection service", "error", err)
	}

	tradeSvc, err := trade.New(&trade.Config{
		Sessions:      sessions,
		InventoryRepo: inventoryRepo,
		Catalog:       cat,
		Clock:         clk,
		Logger:        zlog,
		Metrics:       m,
	})
	if err != nil {
		zlog.Fatalw("failed to create trade service", "error", err)
	}

	compositor, err := images.NewCompositor(&images.CompositorConfig{
		Fetcher: images.NewHTTPFetcher(&images.HTTPFetcherConfig{}),
		Logger:  zlog,
		Metrics: m,
	})
	if err != nil {
		zlog.Fatalw("failed to create compositor", "error", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:             cfg.DiscordToken,
		ApplicationID:     cfg.ApplicationID,
		GuildID:           cfg.GuildID,
		CollectionService: collectionSvc,
		TradeService:      tradeSvc,
		Compositor:        compositor,
		GuildConfigRepo:   guildConfigRepo,
		Logger:            zlog,
		DrawCooldown:      cfg.DrawCooldown,
		PackCooldown:      cfg.PackCooldown,
		PickCooldown:      cfg.PickCooldown,
	})
	if err != nil {
		zlog.Fatalw("failed to create Discord bot", "error", err)
	}

	if err := bot.Start(); err != nil {
		zlog.Fatalw("failed to start Discord bot", "error", err)
	}

	// Optional Prometheus endpoint
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", m.Handler())
			zlog.Infow("serving metrics", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				zlog.Errorw("metrics server stopped", "error", err)
			}
		}()
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		zlog.Errorw("error stopping bot", "error", err)
	}

	zlog.Infow("bot has been shut down")
}

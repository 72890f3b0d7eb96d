package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/soldal/booking-platform/internal/api"
	"github.com/soldal/booking-platform/internal/cache"
	"github.com/soldal/booking-platform/internal/config"
	"github.com/soldal/booking-platform/internal/core"
	"github.com/soldal/booking-platform/internal/db"
	"github.com/soldal/booking-platform/internal/dns"
	"github.com/soldal/booking-platform/internal/logging"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) >= 2 && os.Args[1] == "create-session" {
		createSession(os.Args[2:])
		return
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := flag.String("migrate-dir", "migrations/core", "Migration files directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("edge-api"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		logger.Info().Str("dir", *migrateDirFlag).Msg("running database migrations")
		if err := db.RunMigrations(cfg.CoreDatabaseURL, *migrateDirFlag); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	corePool, err := db.NewCorePool(ctx, cfg.CoreDatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to core database")
	}
	defer corePool.Close()

	var tenantCache core.TenantCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		tenantCache = cache.NewTenantCache(redisClient, cfg.TenantCacheTTL, logger)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("tenant cache enabled")
	}

	checker, err := dns.NewCheckerFromConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure dns resolvers")
	}

	srv := api.NewServer(logger, corePool, tenantCache, checker, cfg)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting edge API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}

func createSession(args []string) {
	fs := flag.NewFlagSet("create-session", flag.ExitOnError)
	tenant := fs.String("tenant", "", "Tenant ID (omit for a super_admin session)")
	role := fs.String("role", core.RoleOwner, "Session role: owner, admin, or super_admin")
	ttl := fs.Duration("ttl", 30*24*time.Hour, "Session lifetime")
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewCorePool(ctx, cfg.CoreDatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var tenantID *string
	if *tenant != "" {
		tenantID = tenant
	}

	token, err := core.NewSessionService(pool).Create(ctx, tenantID, *role, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create session: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Session created.\n\n")
	fmt.Printf("  Token: %s\n\n", token)
	fmt.Printf("Save this token. It will not be shown again.\n")
}

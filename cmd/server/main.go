package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-stock-dashboard/internal/api/config"
	delivery "go-stock-dashboard/internal/api/delivery/http"
	"go-stock-dashboard/internal/api/repository"
	"go-stock-dashboard/internal/api/service"
	"go-stock-dashboard/pkg/cache"
	"go-stock-dashboard/pkg/logger"
	"go-stock-dashboard/pkg/postgres"
	"go-stock-dashboard/pkg/redis"
	"go-stock-dashboard/pkg/telegram"

	"google.golang.org/genai"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize the cache store. An empty Redis host selects the in-process
	// store so the service can run without Redis.
	var cacheStore cache.Store
	if cfg.Redis.Host != "" {
		redisCfg := redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}
		redisClient, err := redis.NewClient(redisCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		cacheStore = cache.NewRedisStore(redisClient)
	} else {
		appLogger.Info("Redis host not configured, using in-process cache store")
		cacheStore = cache.NewMemoryStore()
	}
	gateway := cache.NewGateway(cacheStore, appLogger)

	// Initialize repositories
	stockRepo := repository.NewStockRepository(db.DB)
	layoutRepo := repository.NewDashboardLayoutRepository(db.DB)
	yahooFinanceRepo := repository.NewYahooFinanceRepository(cfg, appLogger)

	// Initialize the AI provider. An empty API key disables it and narrative
	// generation falls back to templated text.
	var aiRepo repository.AIRepository
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		aiRepo, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
	} else {
		appLogger.Info("Gemini API key not configured, using templated narratives")
	}

	// Initialize services
	marketSvc := service.NewMarketService(yahooFinanceRepo, appLogger)
	narrativeSvc := service.NewNarrativeService(aiRepo, yahooFinanceRepo, gateway, appLogger)
	ingestSvc := service.NewIngestService(stockRepo, marketSvc, narrativeSvc, appLogger)
	historySvc := service.NewHistoryService(yahooFinanceRepo, gateway, appLogger)
	searchSvc := service.NewSearchService(yahooFinanceRepo, gateway, appLogger)
	newsSvc := service.NewNewsService(yahooFinanceRepo, gateway, cfg.News.RSSFeeds, appLogger)
	dashboardSvc := service.NewDashboardService(yahooFinanceRepo, stockRepo, marketSvc, historySvc, gateway, appLogger)
	stockSvc := service.NewStockService(stockRepo, marketSvc, yahooFinanceRepo, gateway, appLogger)
	layoutSvc := service.NewLayoutService(layoutRepo)

	// Start the scheduled refresh when a cron spec is configured.
	if cfg.Scheduler.CronSpec != "" {
		var notifier telegram.Notifier
		if cfg.Telegram.BotToken != "" {
			notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
			if err != nil {
				appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
			}
		}
		refreshScheduler := service.NewRefreshScheduler(cfg.Scheduler.CronSpec, ingestSvc, notifier, appLogger)
		if err := refreshScheduler.Start(); err != nil {
			appLogger.Fatal("Failed to start refresh scheduler", logger.ErrorField(err))
		}
		defer refreshScheduler.Stop()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	stockHandler := delivery.NewStockHandler(stockSvc, ingestSvc, historySvc, appLogger)
	stocksGroup := apiV1.Group("/stocks")
	stockHandler.RegisterRoutes(stocksGroup)

	marketHandler := delivery.NewMarketHandler(searchSvc, newsSvc, dashboardSvc, appLogger)
	marketHandler.RegisterRoutes(apiV1)

	layoutHandler := delivery.NewLayoutHandler(layoutSvc, appLogger)
	layoutHandler.RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "server"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing server CLI: %s\n", err)
		os.Exit(1)
	}
}

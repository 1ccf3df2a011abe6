package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yield_tracker/internal/client"
	"yield_tracker/internal/config"
	"yield_tracker/internal/metrics"
	"yield_tracker/internal/restapi"
	"yield_tracker/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		// Config loading logs through logrus before zap exists.
		os.Exit(1)
	}

	zapLogger := buildLogger(cfg.Logging.Level)
	defer zapLogger.Sync()

	// Bridge slog to zap so library code using the default slog logger lands
	// in the same sink.
	slog.SetDefault(slog.New(zapslog.NewHandler(zapLogger.Core())))

	zapLogger.Info("Yield tracker starting",
		zap.String("configPath", configPath),
		zap.String("logLevel", cfg.Logging.Level))

	metrics.MustRegisterMetrics()

	blockscoutClient := client.NewBlockscoutClient(
		cfg.Blockscout.BaseURL,
		time.Duration(cfg.Blockscout.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	explorerClient := client.NewExplorerClient(
		cfg.Explorer.BaseURL,
		time.Duration(cfg.Explorer.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	merklClient := client.NewMerklClient(
		cfg.Merkl.BaseURL,
		cfg.Merkl.ChainID,
		time.Duration(cfg.Merkl.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	midasClient := client.NewMidasClient(
		cfg.Midas.BaseURL,
		time.Duration(cfg.Midas.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	footprintClient := client.NewFootprintClient(
		cfg.Footprint.BaseURL,
		cfg.Footprint.ApiKey,
		cfg.Footprint.CardID,
		time.Duration(cfg.Footprint.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	icarusClient := client.NewIcarusClient(
		cfg.Icarus.Endpoint,
		time.Duration(cfg.Icarus.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)

	var tropykusClient client.TropykusClient
	if cfg.Tropykus.Enabled {
		tropykusClient = client.NewTropykusClient(
			cfg.Tropykus.BaseURL,
			time.Duration(cfg.Tropykus.RequestTimeoutMillis)*time.Millisecond,
			zapLogger,
		)
		zapLogger.Info("Tropykus markets source enabled", zap.String("baseURL", cfg.Tropykus.BaseURL))
	}

	balanceService := service.NewBalanceService(blockscoutClient, explorerClient, cfg.Blockscout.WRBTCAddress, zapLogger)
	yieldService := service.NewYieldService(midasClient, merklClient, cfg.Midas.Tokens, zapLogger)
	lendingService := service.NewLendingService(merklClient, footprintClient, tropykusClient, zapLogger)
	nftService := service.NewNFTService(blockscoutClient, icarusClient, zapLogger)
	rewardsService := service.NewRewardsService(merklClient, zapLogger)

	snapshotCache := gocache.New(
		time.Duration(cfg.Cache.DefaultExpirationMinutes)*time.Minute,
		time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
	)

	portfolioService := service.NewPortfolioService(
		balanceService,
		yieldService,
		lendingService,
		nftService,
		rewardsService,
		snapshotCache,
		service.PortfolioOptions{
			MaxConcurrentRequests: cfg.Portfolio.MaxConcurrentRequests,
			RateLimitPerSecond:    cfg.Portfolio.RateLimitPerSecond,
			LimiterBurst:          cfg.Portfolio.LimiterBurst,
			SnapshotTTL:           time.Duration(cfg.Portfolio.SnapshotTTLMinutes) * time.Minute,
		},
		zapLogger,
	)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	router.Use(cors.New(corsConfig))
	router.Use(restapi.ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	restapi.RegisterRoutes(router, portfolioService, zapLogger)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerPprof(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	zapLogger.Info("Shutdown signal received, stopping HTTP server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	} else {
		zapLogger.Info("HTTP server stopped")
	}
}

func buildLogger(level string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		os.Exit(1)
	}
	return logger
}

func registerPprof(router *gin.Engine) {
	debug := router.Group("/debug/pprof")
	{
		debug.GET("/", gin.WrapF(pprof.Index))
		debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		debug.GET("/profile", gin.WrapF(pprof.Profile))
		debug.GET("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/trace", gin.WrapF(pprof.Trace))
		debug.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		debug.GET("/block", gin.WrapH(pprof.Handler("block")))
		debug.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		debug.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		debug.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
		debug.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
	}
}

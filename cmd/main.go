package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/plantdoc/internal/advisor"
	"github.com/kdduha/plantdoc/internal/cache"
	"github.com/kdduha/plantdoc/internal/client"
	"github.com/kdduha/plantdoc/internal/config"
	"github.com/kdduha/plantdoc/internal/handler"
	"github.com/kdduha/plantdoc/internal/metrics"
	"github.com/kdduha/plantdoc/internal/ui"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/kdduha/plantdoc/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

const sweepInterval = time.Minute

// @title PlantDoc console
// @version 1.0
// @description Server-side page controller for the plant disease diagnosis app.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.Default()

	classifier := client.New(cfg.Classifier, nil)
	classifier.SetLogger(logger)

	var explainer handler.Explainer
	var advisorService *advisor.Advisor
	if cfg.AdvisorEnable {
		advisorService = advisor.New(
			logger,
			openai.NewClient(
				option.WithAPIKey(cfg.OpenAI.APIKey),
				option.WithBaseURL(cfg.OpenAI.BaseURL),
			), cfg.OpenAI)
		explainer = advisorService
		logger.Printf("advisor enabled, model %s\n", cfg.OpenAI.Model)
	}

	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(
			cfg.RedisConfig.Addr,
			cfg.RedisConfig.Password,
			cfg.RedisConfig.DB,
			cfg.RedisConfig.TTL,
		)
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			logger.Printf("redis is not reachable yet: %v\n", err)
		}
		classifier.SetCacheClient(redisCache)
		if advisorService != nil {
			advisorService.SetCacheClient(redisCache)
		}
		logger.Println("set redis as cache")
	}

	registry := ui.NewRegistry(func() *ui.Controller {
		return ui.NewController(logger, classifier, cfg.UI.NotificationTTL)
	}, cfg.UI.SessionIdleTTL)
	go registry.Run(ctx, sweepInterval)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.Logger,
		middleware.Recoverer,
		middleware.Throttle(cfg.Server.ThrottleLimit),
		metrics.Middleware,
	}...)

	if err := handler.Mount(r, handler.RouterOptions{
		Logger:        logger,
		Registry:      registry,
		ClassifierURL: classifier.BaseURL(),
		SecureCookie:  cfg.UI.SecureCookie,
		Timeout:       cfg.Server.Timeout,
		Explainer:     explainer,
	}); err != nil {
		logger.Fatalf("router error: %v", err)
	}
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Printf("server started :%s, classifier %s\n", cfg.Server.Port, classifier.BaseURL())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Println("server stopped")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	domaincheckout "github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/session"
	"github.com/storefront/backend/internal/infrastructure/upstream"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Category cache: memory by default, redis with in-memory fallback.
	cacheFactory := cache.NewCategoryCacheFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	categoryCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create category cache", zap.Error(err))
	}
	defer func() {
		if err := categoryCache.Close(); err != nil {
			log.Error("Error closing category cache", zap.Error(err))
		}
	}()

	upstreamClient, err := upstream.NewClient(&upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		StoreID: cfg.Upstream.StoreID,
		Timeout: cfg.Upstream.Timeout,
	}, upstream.WithClientLogger(log))
	if err != nil {
		log.Fatal("Failed to create upstream client", zap.Error(err))
	}

	sessionManager := session.NewManager(cfg.Session.TTL, session.WithManagerLogger(log))
	defer sessionManager.Close()

	categoryService := catalogapp.NewCategoryService(upstreamClient, categoryCache,
		cfg.Upstream.DefaultLanguage, catalogapp.WithCategoryLogger(log))
	cartService := cartapp.NewCartService(categoryService, log)
	checkoutService := checkoutapp.NewCheckoutService(
		orderGateway{client: upstreamClient},
		checkoutapp.WithCheckoutLogger(log),
		checkoutapp.WithClearDelay(cfg.Checkout.SuccessClearDelay),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
	}

	engine.Use(middleware.Session(sessionManager, middleware.SessionConfig{
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.CookieSecure,
		TTL:          cfg.Session.TTL,
	}))

	router.NewRouter(engine).
		Register(handler.NewSystemHandler()).
		Register(handler.NewCatalogHandler(categoryService)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewCheckoutHandler(checkoutService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// orderGateway adapts the upstream client to the checkout service's port
type orderGateway struct {
	client *upstream.Client
}

func (g orderGateway) PlaceOrder(ctx context.Context, order domaincheckout.OrderRequest) (checkoutapp.OrderConfirmation, error) {
	resp, err := g.client.PlaceOrder(ctx, order)
	if err != nil {
		return checkoutapp.OrderConfirmation{}, err
	}
	return checkoutapp.OrderConfirmation{
		TransactionURL: resp.TransactionURL,
		OrderNumber:    resp.OrderNumber,
	}, nil
}

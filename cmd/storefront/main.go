package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/api"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/cart"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/catalog"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/checkout"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/config"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/render"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/session"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/storage"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/web"
	"github.com/NilaRamamoorthy/ecommerce-frontend/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	kv, productCache, err := buildStorage(cfg)
	if err != nil {
		log.Error("storage setup failed", "err", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(api.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})

	cartStore := cart.NewStore(kv)
	sessionStore := session.NewStore(kv, session.Options{
		ClearRefreshTokenOnLogout: cfg.ClearRefreshTokenOnLogout,
	})
	catalogSvc := catalog.NewService(apiClient, productCache, log)
	checkoutSvc := checkout.NewService(cartStore, sessionStore, apiClient, checkout.Options{
		SendCartItems: cfg.SendCartItems,
		Logger:        log,
	})

	renderer, err := render.New()
	if err != nil {
		log.Error("template setup failed", "err", err)
		os.Exit(1)
	}

	handlers := web.NewHandlers(catalogSvc, apiClient, cartStore, sessionStore, checkoutSvc, renderer, web.Options{
		IncludeEmailOnSignup: cfg.IncludeEmailOnSignup,
		RequireLoginForCart:  cfg.RequireLoginForCart,
		ProductLimit:         12,
	}, log)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      web.NewRouter(handlers, cfg.RequestTimeout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront listening", "port", cfg.HTTPPort, "backend", cfg.BackendURL, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	log.Info("server exited")
}

// buildStorage picks the client-state backend and a matching product cache.
func buildStorage(cfg *config.Config) (storage.KV, catalog.ProductCache, error) {
	switch cfg.StorageBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, err
		}
		return storage.NewRedis(client, "storefront"), catalog.NewRedisCache(client), nil
	case "memory":
		return storage.NewMemory(), catalog.NewMemoryCache(0), nil
	default:
		return storage.NewFile(cfg.StatePath), catalog.NewMemoryCache(0), nil
	}
}

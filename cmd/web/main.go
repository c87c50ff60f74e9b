package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"phuongcosmetics.vn/storefront-web/internal/cart"
	"phuongcosmetics.vn/storefront-web/internal/catalog"
	handlersPkg "phuongcosmetics.vn/storefront-web/internal/handlers"
	"phuongcosmetics.vn/storefront-web/internal/i18n"
	mw "phuongcosmetics.vn/storefront-web/internal/middleware"
	"phuongcosmetics.vn/storefront-web/internal/platform/config"
	"phuongcosmetics.vn/storefront-web/internal/platform/observability"
)

const userAgent = "phuong-storefront-web"

// app carries the dependencies shared by every handler.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	catalog   *catalog.Store
	bundle    *i18n.Bundle
	views     *viewCache
	markdown  *handlersPkg.Markdown
	carts     *cart.Memory
	cartSink  cart.Sink
	site      handlersPkg.Site
	analytics handlersPkg.Analytics
	publicFS  fs.FS
	now       func() time.Time
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v (fields: %v)\n", err, verr.Fields())
		} else {
			fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		}
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	if mw.ConfigureSession(mw.SessionOptions{SigningKey: cfg.Session.SigningKey, Secure: cfg.Session.Secure}) {
		logger.Warn("session signing key not set; using an ephemeral key")
	}

	store, err := loadCatalog(cfg.Server.CatalogDir)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	memory := cart.NewMemory()
	// publish first so a broker failure never reaches the local cart
	var sinks cart.Multi
	if cfg.Cart.PubSubTopic != "" {
		client, err := pubsub.NewClient(ctx, cfg.Cart.PubSubProjectID, option.WithUserAgent(userAgent))
		if err != nil {
			logger.Fatal("failed to initialise pubsub client", zap.Error(err))
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("pubsub close error", zap.Error(err))
			}
		}()
		publisher, err := cart.NewPubSub(client.Topic(cfg.Cart.PubSubTopic))
		if err != nil {
			logger.Fatal("failed to initialise cart publisher", zap.Error(err))
		}
		defer publisher.Stop()
		sinks = append(sinks, publisher)
		logger.Info("cart events enabled", zap.String("topic", cfg.Cart.PubSubTopic))
	}
	sinks = append(sinks, memory)

	a, err := newApp(cfg, logger, store, memory, sinks)
	if err != nil {
		logger.Fatal("failed to initialise app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          log.New(observability.NewPrintfAdapter(logger.Named("http")), "", 0),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("web listening",
			zap.String("addr", server.Addr),
			zap.Bool("dev", cfg.Server.DevMode),
			zap.String("env", cfg.Site.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func loadCatalog(dir string) (*catalog.Store, error) {
	if dir == "" {
		return catalog.Default()
	}
	return catalog.Open(os.DirFS(dir))
}

func newApp(cfg config.Config, logger *zap.Logger, store *catalog.Store, memory *cart.Memory, sink cart.Sink) (*app, error) {
	bundle, err := i18n.Default()
	if err != nil {
		return nil, fmt.Errorf("load i18n: %w", err)
	}
	views, err := newViewCache(os.DirFS(cfg.Server.TemplatesDir), bundle, cfg.Server.DevMode)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if memory == nil {
		memory = cart.NewMemory()
	}
	if sink == nil {
		sink = memory
	}
	return &app{
		cfg:       cfg,
		logger:    logger,
		catalog:   store,
		bundle:    bundle,
		views:     views,
		markdown:  handlersPkg.NewMarkdown(),
		carts:     memory,
		cartSink:  sink,
		site:      handlersPkg.Site{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL},
		analytics: handlersPkg.AnalyticsFromConfig(cfg.Analytics),
		publicFS:  os.DirFS(filepath.Join(cfg.Server.PublicDir, "assets")),
		now:       time.Now,
	}, nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLoggerMiddleware(a.logger))
	r.Use(observability.TraceMiddleware(a.cfg.Log.ProjectID))
	r.Use(observability.RequestLoggerMiddleware())
	r.Use(observability.RecoveryMiddleware(a.logger))
	r.Use(chimw.Compress(5))
	if a.cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(a.cfg.Server.RequestTimeout))
	}

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	// Static assets under /assets/
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(a.publicFS)))

	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(mw.Session)
		r.Use(mw.Locale(a.bundle))
		r.Use(mw.CSRF)
		r.Use(mw.VaryLocale)

		r.Get("/", a.HomeHandler)
		r.Get("/products", a.ProductListHandler)
		r.Get("/products/{id}", a.ProductHandler)
		r.Post("/products/{id}/cart", a.AddToCartHandler)
		r.Get("/products/{id}/cart-button", a.CartButtonFrag)
		r.Get("/blog", a.BlogListHandler)
		r.Get("/blog/{id}", a.PostHandler)
	})

	r.NotFound(a.NotFoundHandler)
	return r
}

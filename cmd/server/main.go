package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/skadi/internal"
	"github.com/dukerupert/skadi/internal/cart"
	"github.com/dukerupert/skadi/internal/cartstore"
	"github.com/dukerupert/skadi/internal/catalog"
	"github.com/dukerupert/skadi/internal/checkout"
	"github.com/dukerupert/skadi/internal/discount"
	"github.com/dukerupert/skadi/internal/events"
	"github.com/dukerupert/skadi/internal/handler/api"
	"github.com/dukerupert/skadi/internal/middleware"
	"github.com/dukerupert/skadi/internal/postgres"
	"github.com/dukerupert/skadi/internal/pricing"
	"github.com/dukerupert/skadi/internal/recommend"
	"github.com/dukerupert/skadi/internal/shipping"
	"github.com/dukerupert/skadi/internal/tax"
	"github.com/dukerupert/skadi/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx := context.Background()

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Migrations run over database/sql; the application uses the pgx pool.
	logger.Info().Msg("connecting to database")
	sqlDB, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info().Msg("running database migrations")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	taxCalc, err := tax.NewPercentageCalculator(cfg.Tax.Rate)
	if err != nil {
		return fmt.Errorf("failed to initialize tax calculator: %w", err)
	}

	shippingProvider := shipping.NewFlatRateProvider([]shipping.FlatRate{
		{
			ServiceName: cfg.Shipping.ServiceName,
			ServiceCode: cfg.Shipping.ServiceCode,
			CostCents:   cfg.Shipping.FlatRateCents,
			DaysMin:     cfg.Shipping.DaysMin,
			DaysMax:     cfg.Shipping.DaysMax,
		},
	})

	calc := pricing.NewCalculator(taxCalc, shippingProvider)

	store, err := cartstore.NewStore(cfg.CartStore)
	if err != nil {
		return fmt.Errorf("failed to initialize cart store: %w", err)
	}
	logger.Info().Str("provider", cfg.CartStore.Provider).Msg("cart store initialized")

	var publisher events.Publisher = events.NewNoopPublisher()
	if cfg.Events.Enabled {
		publisher, err = events.NewNATSPublisher(cfg.Events.NATSURL)
		if err != nil {
			return fmt.Errorf("failed to connect event publisher: %w", err)
		}
		logger.Info().Str("url", cfg.Events.NATSURL).Msg("event publisher connected")
	}
	defer publisher.Close()

	metrics := telemetry.NewBusinessMetrics(prometheus.DefaultRegisterer, "skadi")

	engine := cart.NewEngine(ctx, cart.Config{
		Store:       store,
		Discounts:   discount.NewEngine(),
		Recommender: recommend.NewEngine(),
		Catalog:     catalog.NewStaticProvider(nil),
		Publisher:   publisher,
		Metrics:     metrics,
		Logger:      logger,
	})

	checkoutSvc := checkout.NewService(checkout.Config{
		Engine:    engine,
		Pricing:   calc,
		Orders:    postgres.NewOrderService(pool),
		Publisher: publisher,
		Metrics:   metrics,
		Logger:    logger,
		Currency:  cfg.Currency,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.NewHTTPMetrics(prometheus.DefaultRegisterer, "skadi").Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := api.NewHandler(engine, calc, checkoutSvc, logger)
	handler.RegisterRoutes(e.Group("/api"))

	// Serve until interrupted, then drain in-flight work.
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	engine.Flush()
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

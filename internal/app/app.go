package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/gostorefront/fulfillment/internal/domain/order"
	"github.com/gostorefront/fulfillment/internal/domain/payment"
	"github.com/gostorefront/fulfillment/internal/handler"
	"github.com/gostorefront/fulfillment/internal/notification"
	"github.com/gostorefront/fulfillment/internal/repository"
	"github.com/gostorefront/fulfillment/pkg/health"
	"github.com/gostorefront/fulfillment/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, health.PingCheck(pool))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Repositories.
	addressRepo := repository.NewAddressRepository(pool)
	shippingRepo := repository.NewShippingRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	// Confirmation delivery.
	gateway := newGateway(lg, cfg.SMTP)

	// Domain services.
	orderService := order.NewService(addressRepo, shippingRepo, cartRepo, orderRepo)
	paymentService := payment.NewService(orderRepo, cartRepo, gateway)

	// HTTP routes.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	handler.NewHandler(orderService, paymentService, orderRepo, addressRepo, shippingRepo).Register(mux)

	instrumented := otelhttp.NewHandler(mux, "fulfillment-api",
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(instrumented,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins: cfg.CORS.Origins,
				AllowHeaders: []string{"Content-Type", "Authorization"},
				MaxAge:       86400,
			}),
			httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

// newGateway picks the confirmation delivery transport. Without an SMTP host
// configured, confirmations land in the log, which keeps local development
// working with zero setup.
func newGateway(lg *zap.Logger, cfg SMTPConfig) notification.Gateway {
	if cfg.Disabled || cfg.Host == "" {
		lg.Info("SMTP not configured, logging confirmations instead")
		return notification.LogGateway{}
	}
	return notification.NewSMTPGateway(notification.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		From:     cfg.From,
		Username: cfg.Username,
		Password: cfg.Password,
	})
}

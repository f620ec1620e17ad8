package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"time"

	"chronopay-gw/internal/chronopay"
	"chronopay-gw/internal/config"
	"chronopay-gw/internal/db"
	"chronopay-gw/internal/logger"
	"chronopay-gw/internal/middleware"
	"chronopay-gw/internal/order"
	"chronopay-gw/internal/payment"
	"chronopay-gw/internal/payment/checkout"
	"chronopay-gw/internal/payment/webhook"
	"chronopay-gw/internal/settings"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(addr string, handler http.Handler) error {
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		}
		return srv.ListenAndServe()
	}
)

func main() {
	uninstall := flag.Bool("uninstall", false, "remove the chronopay settings and exit")
	flag.Parse()

	var err error
	if *uninstall {
		err = runUninstall()
	} else {
		err = run()
	}
	if err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

// handlers are the endpoints exposed by the server.
type handlers struct {
	IPN           http.HandlerFunc
	Checkout      http.HandlerFunc
	CheckoutRetry http.HandlerFunc
	GetConfigure  http.HandlerFunc
	PostConfigure http.HandlerFunc
	Stats         http.HandlerFunc
}

func setupRouter(h handlers, adminAuth func(http.Handler) http.Handler) *httprouter.Router {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Handler(http.MethodPost, "/"+chronopay.IPNPath, h.IPN)

	router.Handler(http.MethodGet, "/checkout/chronopay/:"+checkout.OrderParam, h.Checkout)
	router.Handler(http.MethodGet, "/checkout/chronopay/:"+checkout.OrderParam+"/retry", h.CheckoutRetry)

	router.Handler(http.MethodGet, "/"+chronopay.ConfigurePath, adminAuth(h.GetConfigure))
	router.Handler(http.MethodPost, "/"+chronopay.ConfigurePath, adminAuth(h.PostConfigure))
	router.Handler(http.MethodGet, "/Admin/PaymentChronoPay/Stats", adminAuth(h.Stats))

	return router
}

func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) http.Handler {
	orderSvc := order.NewService(order.NewRepository(database))
	settingsSvc := settings.NewService(settings.NewRepository(database))
	callbacks := payment.NewRepository(database)

	processor := chronopay.NewProcessor(settingsSvc, cfg.CurrencyCode, cfg.StoreURL)
	logger.L().Info("chronopay payment method ready",
		zap.String("system_name", processor.SystemName()),
		zap.String("configure_url", processor.ConfigurationPageURL()),
	)

	ipn := webhook.NewIPNHandler(orderSvc, settingsSvc, callbacks)
	checkoutHandler := checkout.NewHandler(orderSvc, processor)
	settingsHandler := settings.NewHandler(settingsSvc)

	router := setupRouter(handlers{
		IPN:           ipn.IPNHandler,
		Checkout:      checkoutHandler.Redirect,
		CheckoutRetry: checkoutHandler.Retry,
		GetConfigure:  settingsHandler.GetConfigure,
		PostConfigure: settingsHandler.PostConfigure,
		Stats:         ipn.StatsHandler,
	}, middleware.AdminOnly(cfg.AdminJWTSecret))

	return logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			limiter.Middleware(router),
		),
	)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx := context.Background()
	if err := settings.NewService(settings.NewRepository(database)).Install(ctx); err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter()
	stop := make(chan struct{})
	defer close(stop)
	go limiter.Run(time.Minute, stop)

	logger.L().Info("chronopay server starting",
		zap.String("port", cfg.AppPort),
		zap.String("store_url", cfg.StoreURL),
	)
	if cfg.AdminJWTSecret == "" {
		logger.L().Warn("ADMIN_JWT_SECRET is empty, admin endpoints will reject every request")
	}

	return startServerFunc(":"+cfg.AppPort, newServer(cfg, database, limiter))
}

func runUninstall() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	return settings.NewService(settings.NewRepository(database)).Uninstall(context.Background())
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sunnyside-shop/internal/config"
	"sunnyside-shop/internal/db"
	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/httpserver"
	"sunnyside-shop/internal/payment"
	"sunnyside-shop/internal/payment/cardpay"
	"sunnyside-shop/internal/payment/netsqr"
	orderrepo "sunnyside-shop/internal/repository/order"
	productrepo "sunnyside-shop/internal/repository/product"
	userrepo "sunnyside-shop/internal/repository/user"
	cartsvc "sunnyside-shop/internal/service/cart"
	catalogsvc "sunnyside-shop/internal/service/catalog"
	checkoutsvc "sunnyside-shop/internal/service/checkout"
	usersvc "sunnyside-shop/internal/service/user"
	"sunnyside-shop/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		logger.Println("no .env file found, using environment variables")
	}
	cfg := config.FromEnv()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)

	sessions := session.NewStore(cfg.SessionTTL)

	gateways := map[domain.PaymentProvider]payment.Gateway{
		domain.ProviderNETSQR: netsqr.New(netsqr.Config{
			BaseURL:   cfg.NETSAPIBaseURL,
			APIKey:    cfg.NETSAPIKey,
			ProjectID: cfg.NETSProjectID,
			Timeout:   cfg.GatewayTimeout,
		}, logger),
		domain.ProviderCard: cardpay.New(cardpay.Config{
			BaseURL:      cfg.CardAPIBaseURL,
			ClientID:     cfg.CardClientID,
			ClientSecret: cfg.CardClientSecret,
			Timeout:      cfg.GatewayTimeout,
		}, logger),
	}

	userService := usersvc.New(userRepo, sessions)
	catalogService := catalogsvc.New(productRepo)
	cartService := cartsvc.New(productRepo)
	checkoutService := checkoutsvc.New(productRepo, orderRepo, gateways, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:    sessions,
		UserSvc:     userService,
		CatalogSvc:  catalogService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		OrderReader: orderRepo,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-engine/internal/checkout"
	"storefront-engine/internal/config"
	"storefront-engine/internal/db"
	"storefront-engine/internal/gateway"
	"storefront-engine/internal/httpserver"
	"storefront-engine/internal/session"
	cartstore "storefront-engine/internal/store/cart"
	shippingstore "storefront-engine/internal/store/shipping"
	voucherstore "storefront-engine/internal/store/voucher"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	gw, err := gateway.New(cfg.CommerceBaseURL, cfg.CommerceTimeout, logger)
	if err != nil {
		logger.Fatalf("init gateway: %v", err)
	}

	sessions := session.NewManager(session.NewPostgres(dbpool), logger)
	if err := sessions.Load(ctx); err != nil {
		logger.Fatalf("load guest session: %v", err)
	}

	cartStore := cartstore.New(gw, sessions)
	voucherStore := voucherstore.New(gw)
	shippingStore := shippingstore.New(gw)
	checkoutCtrl := checkout.New(cartStore, voucherStore, shippingStore)
	cartStore.OnChange(checkoutCtrl.Reconcile)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Cart:     cartStore,
		Voucher:  voucherStore,
		Shipping: shippingStore,
		Checkout: checkoutCtrl,
		Gateway:  gw,
		Session:  sessions,
	}, cfg.CORSOrigins)
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

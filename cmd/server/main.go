package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"mediaUserApp/internal/account"
	"mediaUserApp/internal/config"
	"mediaUserApp/internal/db"
	grpcserver "mediaUserApp/internal/grpc"
	"mediaUserApp/internal/logging"
	"mediaUserApp/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	logger.Infof("configuration loaded: %v", cfg)

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Errorf("close db: %v", err)
		}
	}()

	store := repository.NewAccountRepository(d)
	accounts := account.NewService(store, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if _, err := accounts.Bootstrap(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		cancel()
		logger.Fatalf("bootstrap administrator: %v", err)
	}
	cancel()

	// Start gRPC
	addr, shutdown, err := grpcserver.StartGRPC(cfg, accounts, store, logger)
	if err != nil {
		logger.Fatalf("start grpc: %v", err)
	}
	logger.Infof("account service listening on %s", addr)

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
}

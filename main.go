package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messenger/model"
	"messenger/platform"
	"messenger/router"
	"messenger/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"
)

func main() {
	fmt.Println("Server started...")

	cfg, err := platform.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := platform.NewLogger(cfg.LogPath, "messenger", cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	//init database
	db, err := platform.OpenDB(cfg.DB, logger.Warn)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := model.InstallDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.New(router.Options{
		DB:         db,
		Tokens:     service.NewTokenService(cfg.Secret, cfg.AccessTTL),
		Logger:     log,
		CORSOrigin: cfg.CORSOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

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

	"github.com/gin-gonic/gin"

	"weddingplanner-backend/config"
	"weddingplanner-backend/controllers"
	"weddingplanner-backend/logger"
	"weddingplanner-backend/routes"
	"weddingplanner-backend/services"
	"weddingplanner-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect database", "error", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", "error", err)
	}

	shutdownTracing, err := config.InitTracing(cfg)
	if err != nil {
		log.Fatal("Failed to init tracing", "error", err)
	}

	var messenger services.Messenger
	if cfg.MessagingEnabled() {
		messenger = services.NewTwilioMessenger(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.TwilioWhatsAppNumber)
	} else {
		log.Warn("Twilio credentials not set, guest messaging disabled")
	}

	svc := services.New(db, messenger, log)
	sweeper, err := svc.Sweeper.StartScheduler(cfg.TaskSweepSchedule)
	if err != nil {
		log.Fatal("Failed to start task sweeper", "error", err)
	}

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	h := controllers.NewHandler(svc, log, cfg.DefaultCurrency)
	verifier := utils.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	r := routes.SetupRouter(cfg, h, verifier, log)
	printRoutes(r, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	<-sweeper.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error("Tracing shutdown failed", "error", err)
	}
}

func printRoutes(r *gin.Engine, log *logger.Logger) {
	for _, route := range r.Routes() {
		log.Debug("Route", "method", route.Method, "path", route.Path)
	}
}

package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"tickethub/config"
	"tickethub/handlers"
	"tickethub/monitoring"
	"tickethub/notify"
	"tickethub/security"
	"tickethub/services"
	"tickethub/store"
	"tickethub/utils"
)

func Start() error {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Notification channel: PubNub when keys are configured, logs otherwise
	var notifier notify.Notifier
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey

		notifier = notify.NewPubNubNotifier(pubnub.NewPubNub(pnConfig), cfg.NotifyChannel)
	} else {
		notifier = notify.NewLogNotifier()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Restore or seed the application state
	app := services.NewApp(store.NewRedisStore(redisClient), notifier)
	if err := app.Load(ctx); err != nil {
		return err
	}

	// Initialize services
	authService := services.NewAuthService(app)
	uploadService := services.NewUploadService(app)
	listingService := services.NewListingService(app, uploadService)
	orderService := services.NewOrderService(app)
	adminService := services.NewAdminService(app, uploadService)
	receiptService := services.NewReceiptService(app)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	marketHandler := handlers.NewMarketHandler(app, listingService, orderService, uploadService, receiptService)
	adminHandler := handlers.NewAdminHandler(adminService)

	limiter := security.NewRateLimiter(redisClient)

	e := echo.New()

	// Auth endpoints
	e.POST("/api/auth/login", authHandler.Login,
		limiter.LoginRateLimit(int64(cfg.MaxLoginAttempts), cfg.LoginAttemptWindow))
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/logout", authHandler.Logout)

	// View endpoints
	e.GET("/api/views", marketHandler.View)
	e.GET("/api/tickets/detail", marketHandler.TicketDetail)

	// Marketplace endpoints
	e.POST("/api/tickets", marketHandler.CreateListing)
	e.DELETE("/api/tickets", marketHandler.DeleteListing)
	e.POST("/api/orders", marketHandler.Purchase)
	e.GET("/api/orders/receipt", marketHandler.Receipt)

	// Upload endpoints
	e.POST("/api/uploads", marketHandler.StageUpload)
	e.DELETE("/api/uploads", marketHandler.CancelUpload)
	e.GET("/api/uploads/blob", marketHandler.Attachment)

	// Admin endpoints
	e.DELETE("/api/admin/users", adminHandler.DeleteUser)

	e.GET("/health", func(c echo.Context) error {
		if err := utils.RedisHealthCheck(redisClient); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.EnableMetrics {
		monitoring.NewMonitor(app.StateStats)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			slog.Info("metrics server listening", "port", cfg.MetricsPort)
			if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

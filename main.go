// File: tripforge/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripforge/config"
	"tripforge/cron"
	"tripforge/database"
	bookingRepo "tripforge/database/repository/booking"
	itineraryRepo "tripforge/database/repository/itinerary"
	recordsRepo "tripforge/database/repository/records"
	"tripforge/handlers"
	"tripforge/middleware"
	"tripforge/routes"
	"tripforge/services/booking"
	"tripforge/services/itinerary"
	"tripforge/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitIdemCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Stores and repositories.
	recordStore := recordsRepo.NewMongoRecordStore()
	idemStore := recordsRepo.NewRedisRecordStore(utils.GetIdemCacheClient())
	itinRepo := itineraryRepo.NewStoreItineraryRepo(recordStore)
	bookRepo := bookingRepo.NewStoreBookingRepo(recordStore)

	// Gateways. Stripe drives payments when a key is configured; otherwise the
	// deterministic simulator is used so the saga stays runnable locally.
	holdTTL := time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute
	supplierGateway := booking.NewSimSupplierGateway(logger, holdTTL)
	var paymentGateway booking.PaymentGateway
	if config.AppConfig.StripeKey != "" {
		paymentGateway = booking.NewStripePaymentGateway(logger, "pm_card_visa")
	} else {
		paymentGateway = booking.NewSimPaymentGateway(logger)
	}

	idemTTL := time.Duration(config.AppConfig.IdempotencyTTLHours) * time.Hour
	if idemTTL <= 0 {
		idemTTL = utils.DefaultIdempotencyTTL
	}
	guard := &booking.Guard{
		Store:  idemStore,
		TTL:    idemTTL,
		Logger: logger,
	}

	// Analytics queue and worker.
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}
	asynqClient := asynq.NewClient(queueOpts)
	defer asynqClient.Close()
	cron.InitAnalyticsWorker(recordStore)

	// Services.
	itinService := &itinerary.DefaultItineraryService{
		Repo:   itinRepo,
		Logger: logger,
	}
	bookingService := &booking.DefaultBookingService{
		Itineraries:  itinRepo,
		Bookings:     bookRepo,
		Suppliers:    supplierGateway,
		Payments:     paymentGateway,
		Guard:        guard,
		Analytics:    booking.NewAsynqAnalyticsEmitter(asynqClient),
		Logger:       logger,
		DiscountRate: config.AppConfig.BulkDiscountRate,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	itineraryHandler := handlers.NewItineraryHandler(itinService, logger)
	authHandler := handlers.NewAuthHandler(logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, itineraryHandler, authHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"barberbook/config"
	"barberbook/database"
	slotRepo "barberbook/database/repository/slot"
	"barberbook/handlers"
	"barberbook/middleware"
	"barberbook/routes"
	"barberbook/services/checkout"
	"barberbook/services/notify"
	"barberbook/services/reconcile"
	"barberbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	stripe.Key = config.AppConfig.StripeSecretKey

	// Slot store.
	var repo slotRepo.Repository
	if config.AppConfig.StoreBackend == "mongo" {
		database.InitDB()
		repo = slotRepo.NewMongoRepo(database.MongoClient, config.AppConfig.MongoDB)
		if config.AppConfig.AdminFCMToken != "" && config.AppConfig.FirebaseCredentialsFile != "" {
			utils.FirebaseInit()
		}
	} else {
		utils.FirebaseInit()
		repo = slotRepo.NewFirestoreRepo(utils.FirestoreClient)
	}

	utils.InitDedupCache()

	// Services.
	mailer := notify.NewHTTPMailer(
		config.AppConfig.MailAPIURL,
		config.AppConfig.MailAPIKey,
		config.AppConfig.MailFrom,
	)
	notifier := notify.NewDefaultService(
		mailer,
		utils.FCMClient,
		config.AppConfig.AdminEmail,
		config.AppConfig.AdminFCMToken,
		logger,
	)
	checkoutService := checkout.NewStripeService(
		config.AppConfig.StripeSecretKey,
		config.AppConfig.Currency,
		config.AppConfig.FrontendBaseURL,
		logger,
	)
	verifier := &reconcile.StripeVerifier{Secret: config.AppConfig.StripeWebhookSecret}
	reconciler := reconcile.NewReconciler(
		repo,
		notifier,
		reconcile.NewRedisDeduper(utils.GetDedupClient()),
		logger,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	hb := &routes.HandlerBundle{
		Checkout: handlers.NewCheckoutHandler(checkoutService, logger),
		Webhook:  handlers.NewWebhookHandler(verifier, reconciler, logger),
		Booking:  handlers.NewBookingHandler(repo, notifier, logger),
	}
	routes.RegisterRoutes(router, hb)

	utils.StartHealthMonitor(utils.DedupClient, database.MongoClient)

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

	// Let in-flight confirmation notifications finish.
	reconciler.Drain()

	logger.Sugar().Info("main: server stopped gracefully")
}

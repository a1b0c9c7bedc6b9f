package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"dineflow/config"
	"dineflow/cron"
	"dineflow/database"
	catalogRepo "dineflow/database/repository/catalog"
	reservationRepo "dineflow/database/repository/reservation"
	"dineflow/handlers"
	"dineflow/middleware"
	"dineflow/routes"
	"dineflow/services/agent"
	"dineflow/services/recommend"
	"dineflow/services/reservation"
	"dineflow/services/tasks"
	"dineflow/utils"
)

func main() {
	seed := flag.Bool("seed", false, "seed the restaurant catalog with sample data and exit")
	flag.Parse()

	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitHoldCache()

	// repositories.
	catalog := catalogRepo.NewMongoCatalogRepo()
	reservations := reservationRepo.NewMongoReservationRepo()

	if *seed {
		if err := database.SeedCatalog(catalog); err != nil {
			logger.Sugar().Fatalf("main: seeding failed: %v", err)
		}
		logger.Sugar().Info("main: catalog seeded")
		return
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	reminderScheduler := tasks.NewReminderScheduler(logger)
	bookingService := &reservation.DefaultBookingService{
		Catalog:      catalog,
		Reservations: reservations,
		Holds:        reservation.NewHoldStore(utils.GetHoldCacheClient(), config.TableHoldTTL()),
		Reminders:    reminderScheduler,
		Logger:       logger,
	}

	// With BOOKING_API_URL set, the agent books through a remote deployment
	// of these same endpoints instead of the in-process service.
	var agentBooking reservation.Service = bookingService
	if url := config.AppConfig.BookingAPIURL; url != "" {
		logger.Sugar().Infof("main: using remote booking API at %s", url)
		agentBooking = reservation.NewHTTPBookingService(url, config.BookingTimeout())
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	engine, err := recommend.NewEngine(bootCtx, agentBooking, logger)
	cancelBoot()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build recommendation engine: %v", err)
	}
	recommenderService := recommend.NewService(engine, logger)

	chatAgent := agent.NewAgent(agentBooking, recommenderService, config.BookingTimeout(), logger)

	// handlers.
	chatHandler := handlers.NewChatHandler(chatAgent, logger)
	restaurantHandler := handlers.NewRestaurantHandler(bookingService, logger)
	reservationHandler := handlers.NewReservationHandler(bookingService, reservations, catalog, logger)
	recommendationHandler := handlers.NewRecommendationHandler(recommenderService, logger)

	handlerBundle := &handlers.HandlerBundle{
		StartConversation: chatHandler.StartConversation,
		Chat:              chatHandler.Chat,
		ResetConversation: chatHandler.Reset,
		BookingStatus:     chatHandler.Status,

		ListRestaurants:   restaurantHandler.ListRestaurants,
		CheckAvailability: restaurantHandler.CheckAvailability,

		MakeReservation:   reservationHandler.MakeReservation,
		GetReservation:    reservationHandler.GetReservation,
		CancelReservation: reservationHandler.CancelReservation,

		Recommendations: recommendationHandler.Recommendations,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Reminder worker consumes the scheduled reservation reminders.
	cron.InitReminderWorker(reservations)

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

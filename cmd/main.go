package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/hosterlink/hosterlink-api/internal/app"
	"github.com/hosterlink/hosterlink-api/internal/auth"
	"github.com/hosterlink/hosterlink-api/internal/config"
	"github.com/hosterlink/hosterlink-api/internal/controllers"
	"github.com/hosterlink/hosterlink-api/internal/middleware"
	"github.com/hosterlink/hosterlink-api/internal/repositories"
	"github.com/hosterlink/hosterlink-api/internal/services"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	userRepo := repositories.NewUserRepository(application.DB)
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	maintenanceRepo := repositories.NewMaintenanceRepository(application.DB)
	messageRepo := repositories.NewMessageRepository(application.DB)
	notificationRepo := repositories.NewNotificationRepository(application.DB)

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	tokenService := auth.NewTokenService(
		cfg.RSAPrivateKey,
		cfg.RSAPublicKey,
		config.TokenIssuer,
		config.TokenAudience,
		cfg.TokenTTL,
	)

	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	propertyService := services.NewPropertyService(propertyRepo, unitRepo)
	unitService := services.NewUnitService(unitRepo, propertyRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo, propertyRepo, unitRepo)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, propertyRepo, unitRepo)
	messageService := services.NewMessageService(messageRepo, userRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	reminderService := services.NewPaymentReminderService(paymentRepo, notificationRepo)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	propertyController := controllers.NewPropertyController(propertyService)
	unitController := controllers.NewUnitController(unitService)
	paymentController := controllers.NewPaymentController(paymentService)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService)
	messageController := controllers.NewMessageController(messageService)
	notificationController := controllers.NewNotificationController(notificationService)
	healthController := controllers.NewHealthController(application)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	// Health
	router.HandleFunc("/health", healthController.HealthCheckHandler).Methods("GET")

	// /api/v1
	apiRouter := router.PathPrefix("/api").Subrouter()
	v1Router := apiRouter.PathPrefix("/v1").Subrouter()

	// Public endpoints
	v1Router.HandleFunc("/auth/register", authController.Register).Methods("POST")
	v1Router.HandleFunc("/auth/login", authController.Login).Methods("POST")

	// Protected endpoints require a valid token
	protected := v1Router.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(tokenService))

	protected.HandleFunc("/auth/logout", authController.Logout).Methods("POST")

	// Users
	protected.HandleFunc("/users/me", userController.Me).Methods("GET")
	protected.HandleFunc("/users", userController.List).Methods("GET")
	protected.HandleFunc("/users/{id}", userController.Get).Methods("GET")
	protected.HandleFunc("/users/{id}", userController.Update).Methods("PUT")
	protected.HandleFunc("/users/{id}", userController.Deactivate).Methods("DELETE")

	// Properties
	protected.HandleFunc("/properties", propertyController.Create).Methods("POST")
	protected.HandleFunc("/properties", propertyController.List).Methods("GET")
	protected.HandleFunc("/properties/{id}", propertyController.Get).Methods("GET")
	protected.HandleFunc("/properties/{id}", propertyController.Update).Methods("PUT")
	protected.HandleFunc("/properties/{id}", propertyController.Delete).Methods("DELETE")
	protected.HandleFunc("/properties/{propertyId}/units", unitController.ListByProperty).Methods("GET")
	protected.HandleFunc("/properties/{propertyId}/payments/report", paymentController.Report).Methods("GET")

	// Units
	protected.HandleFunc("/units", unitController.Create).Methods("POST")
	protected.HandleFunc("/units/{id}", unitController.Get).Methods("GET")
	protected.HandleFunc("/units/{id}/tenant", unitController.AssignTenant).Methods("PUT")
	protected.HandleFunc("/units/{id}/tenant", unitController.RemoveTenant).Methods("DELETE")

	// Payments
	protected.HandleFunc("/payments", paymentController.Create).Methods("POST")
	protected.HandleFunc("/payments", paymentController.List).Methods("GET")
	protected.HandleFunc("/payments/{id}", paymentController.Get).Methods("GET")
	protected.HandleFunc("/payments/{id}/status", paymentController.UpdateStatus).Methods("PUT")

	// Maintenance
	protected.HandleFunc("/maintenance", maintenanceController.Create).Methods("POST")
	protected.HandleFunc("/maintenance", maintenanceController.List).Methods("GET")
	protected.HandleFunc("/maintenance/{id}", maintenanceController.Get).Methods("GET")
	protected.HandleFunc("/maintenance/{id}/status", maintenanceController.UpdateStatus).Methods("PUT")
	protected.HandleFunc("/maintenance/{id}/assign", maintenanceController.Assign).Methods("PUT")
	protected.HandleFunc("/maintenance/{id}/cost", maintenanceController.UpdateCost).Methods("PUT")

	// Messages
	protected.HandleFunc("/messages", messageController.Send).Methods("POST")
	protected.HandleFunc("/messages", messageController.Inbox).Methods("GET")
	protected.HandleFunc("/messages/unread/count", messageController.UnreadCount).Methods("GET")
	protected.HandleFunc("/messages/conversation/{userId}", messageController.Conversation).Methods("GET")
	protected.HandleFunc("/messages/conversation/{userId}/read", messageController.MarkConversationRead).Methods("PUT")
	protected.HandleFunc("/messages/{id}/read", messageController.MarkRead).Methods("PUT")

	// Notifications
	protected.HandleFunc("/notifications", notificationController.Create).Methods("POST")
	protected.HandleFunc("/notifications", notificationController.List).Methods("GET")
	protected.HandleFunc("/notifications/read-all", notificationController.MarkAllRead).Methods("PUT")
	protected.HandleFunc("/notifications/{id}/read", notificationController.MarkRead).Methods("PUT")
	protected.HandleFunc("/notifications/{id}", notificationController.Delete).Methods("DELETE")

	//----------------------------------------------------------------------
	// Setup nightly overdue payment sweep via cron
	//----------------------------------------------------------------------
	c := cron.New()
	_, schErr := c.AddFunc("30 3 * * *", func() {
		if e := reminderService.SweepOverdue(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled overdue payment sweep failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule overdue payment sweep")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", config.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}

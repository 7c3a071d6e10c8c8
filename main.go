package main

import (
	"context"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/localxp/localxp_backend/config"
	"github.com/localxp/localxp_backend/controllers"
	"github.com/localxp/localxp_backend/middleware"
	"github.com/localxp/localxp_backend/repositories"
	"github.com/localxp/localxp_backend/routes"
	"github.com/localxp/localxp_backend/services"
	"github.com/localxp/localxp_backend/utils"
	"github.com/localxp/localxp_backend/websocket"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	_ = mime.AddExtensionType(".jpeg", "image/jpeg")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	client, err := config.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	db := client.Database(cfg.DBName)
	if err := config.SetupCollections(ctx, db); err != nil {
		log.Fatalf("Failed to set up collections: %v", err)
	}

	// Token revocation lives in Redis when it is reachable
	var blacklist middleware.TokenBlacklist
	if rdb := config.ConnectRedis(cfg.Redis); rdb != nil {
		defer rdb.Close()
		blacklist = middleware.NewRedisBlacklist(rdb)
	} else {
		memory := middleware.NewMemoryBlacklist()
		go memory.RunCleanup(ctx, 10*time.Minute)
		blacklist = memory
	}

	storage := utils.NewLocalStorage(cfg.UploadDir, "Uploads")
	if err := storage.Init("providers"); err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	mailer := services.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From, cfg.SMTP.AdminNotify)
	tokens := utils.NewTokenManager(cfg.JWTSecret)

	// Initialize repositories and services
	tourists := repositories.NewTouristRepository(db)
	providers := repositories.NewProviderRepository(db)
	admins := repositories.NewAdminRepository(db)

	providerService := services.NewProviderService(providers, storage).WithNotifications(wsHub, mailer)
	authService := services.NewAuthService(tourists, providerService, admins, tokens)
	touristService := services.NewTouristService(tourists)
	bookingService := services.NewBookingService(repositories.NewBookingRepository(db), tourists, providers, wsHub)
	contactService := services.NewContactService(repositories.NewContactRepository(db), wsHub, mailer)

	if err := authService.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	if cfg.Payment.Configured() {
		log.Println("Payment gateway credentials loaded")
	} else {
		log.Println("Payment gateway credentials not set")
	}

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = controllers.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler
	ipExtractor, err := middleware.IPExtractor(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	e.IPExtractor = ipExtractor

	rateLimiter := middleware.NewRateLimiter()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rateLimiter.Cleanup()
			}
		}
	}()

	origins := middleware.CORSOrigins(cfg.IsProduction(), cfg.CORSOrigins)

	// Middleware
	if cfg.IsProduction() {
		e.Use(httpsRedirect())
	}
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS(origins))
	e.Use(echoMiddleware.Secure())
	e.Use(middleware.SecurityHeaders(middleware.SecurityConfig{
		AllowedDomains: origins,
		AllowInlineJS:  !cfg.IsProduction(),
		HSTS:           cfg.IsProduction(),
	}))
	e.Use(middleware.ContentTypeGuard())
	e.Use(rateLimiter.RateLimit())

	routes.SetupRoutes(e, routes.Dependencies{
		Auth:           controllers.NewAuthController(authService, blacklist),
		Providers:      controllers.NewProviderController(providerService),
		Tourists:       controllers.NewTouristController(touristService),
		Bookings:       controllers.NewBookingController(bookingService),
		Contact:        controllers.NewContactController(contactService),
		Tokens:         tokens,
		Blacklist:      blacklist,
		Hub:            wsHub,
		AllowedOrigins: origins,
		UploadDir:      cfg.UploadDir,
	})

	// Start server
	go func() {
		log.Printf("Starting %s server on :%s", cfg.Env, cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(http.StatusMovedPermanently, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}

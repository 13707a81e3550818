package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/spf13/viper"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/hasher"
	"storefront/pkg/rabbitmq"
)

// Config holds the application settings resolved from the environment.
type Config struct {
	SessionExpiry time.Duration
	AdminPassword string
	PaymentDelay  time.Duration
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":5000")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("PAYMENT_DELAY_MS", 1000)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	cfg := Config{
		SessionExpiry: time.Duration(viper.GetInt("SESSION_EXPIRY_HOURS")) * time.Hour,
		AdminPassword: viper.GetString("ADMIN_PASSWORD"),
		PaymentDelay:  time.Duration(viper.GetInt("PAYMENT_DELAY_MS")) * time.Millisecond,
	}

	// --- Optional RabbitMQ publisher ---
	// The storefront is fully functional without a broker; order events are
	// published only when a URL is configured.
	var publisher services.EventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	app, err := NewApp(cfg, publisher)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// NewApp wires repositories, services and handlers into a Fiber app. All
// state lives in process memory: the default admin account and the seed
// catalog are rebuilt on every start.
func NewApp(cfg Config, publisher services.EventPublisher) (*fiber.App, error) {
	// --- Default admin account ---
	// Seeded at construction; registration can never produce an admin.
	adminHash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	admin := models.User{
		Username:  "admin",
		Password:  adminHash,
		Email:     "admin@ecommercepro.com",
		FirstName: strptr("Admin"),
		LastName:  strptr("User"),
		IsAdmin:   true,
	}

	// --- Repositories ---
	userRepo := repositories.NewMemoryUserRepository(admin)
	categoryRepo := repositories.NewMemoryCategoryRepository()
	productRepo := repositories.NewMemoryProductRepository()
	cartRepo := repositories.NewMemoryCartRepository()
	orderRepo := repositories.NewMemoryOrderRepository()
	wishlistRepo := repositories.NewMemoryWishlistRepository()

	if err := seedCatalog(categoryRepo, productRepo); err != nil {
		return nil, err
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo)
	catalogService := services.NewCatalogService(categoryRepo, productRepo)
	cartService := services.NewCartService(cartRepo, wishlistRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, cartRepo, categoryRepo, publisher)
	paymentProcessor := services.NewMockPaymentProcessor(cfg.PaymentDelay)

	// --- Session store ---
	// In-process memory storage with periodic expiry sweeps. Sessions do not
	// survive a restart, same as the rest of the state.
	store := session.New(session.Config{
		Expiration:     cfg.SessionExpiry,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
	})

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		ErrorHandler: jsonErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	authRequired := middleware.AuthRequired(store, userRepo)
	adminRequired := middleware.AdminRequired()

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, store)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, paymentProcessor)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api, authRequired)
	catalogHandler.RegisterRoutes(api, authRequired, adminRequired)
	cartHandler.RegisterRoutes(api, authRequired)
	orderHandler.RegisterRoutes(api, authRequired, adminRequired)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, nil
}

// jsonErrorHandler converts any error escaping a handler into a JSON body
// with a message field. Internal errors never leak details to the client.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code != fiber.StatusInternalServerError {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("Unhandled error: %v", err)
	}

	return c.Status(code).JSON(fiber.Map{"message": message})
}

// seedCatalog populates the fixed demo catalog: four categories and eight
// active products.
func seedCatalog(categories repositories.CategoryRepository, products repositories.ProductRepository) error {
	defaultCategories := []models.Category{
		{Name: "Electronics", Slug: "electronics", Description: strptr("Electronic devices and gadgets")},
		{Name: "Fashion", Slug: "fashion", Description: strptr("Clothing and accessories")},
		{Name: "Home & Garden", Slug: "home-garden", Description: strptr("Home and garden products")},
		{Name: "Sports", Slug: "sports", Description: strptr("Sports and fitness equipment")},
	}
	for i := range defaultCategories {
		if err := categories.Create(&defaultCategories[i]); err != nil {
			return err
		}
	}

	electronics := defaultCategories[0].ID
	fashion := defaultCategories[1].ID
	defaultProducts := []models.Product{
		{Name: "Premium Wireless Headphones", Description: strptr("High-quality audio with noise cancellation"), Price: "299.99", Stock: 25, CategoryID: &electronics},
		{Name: "Smart Fitness Watch", Description: strptr("Track your health and fitness goals"), Price: "199.99", Stock: 30, CategoryID: &electronics},
		{Name: "Professional Camera", Description: strptr("Capture stunning photos and videos"), Price: "899.99", Stock: 15, CategoryID: &electronics},
		{Name: "Ultra Thin Laptop", Description: strptr("Powerful performance in a sleek design"), Price: "1299.99", Stock: 10, CategoryID: &electronics},
		{Name: "Gaming Console Pro", Description: strptr("Next-gen gaming experience"), Price: "499.99", Stock: 20, CategoryID: &electronics},
		{Name: "Latest Smartphone", Description: strptr("Advanced features and stunning display"), Price: "799.99", Stock: 35, CategoryID: &electronics},
		{Name: "Designer Sunglasses", Description: strptr("Premium eyewear with UV protection"), Price: "149.99", Stock: 50, CategoryID: &fashion},
		{Name: "Travel Backpack", Description: strptr("Durable and spacious for all adventures"), Price: "89.99", Stock: 40, CategoryID: &fashion},
	}
	for i := range defaultProducts {
		defaultProducts[i].IsActive = true
		if err := products.Create(&defaultProducts[i]); err != nil {
			return err
		}
	}
	return nil
}

func strptr(s string) *string { return &s }

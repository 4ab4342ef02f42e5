package routes

import (
	"log"
	"time"

	"rewardhub/internal/adapters/http/handlers"
	"rewardhub/internal/adapters/http/middleware"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/config"
	"rewardhub/internal/core/services"
	"rewardhub/internal/pkg/clock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// catalogMaxAge is how long clients may cache the product catalog
const catalogMaxAge = 5 * time.Minute

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, clk clock.Clock) {
	store := repositories.NewStore(db)
	loc := cfg.Rewards.Location

	// Initialize services
	authService := services.NewAuthService(store, clk, cfg)
	userService := services.NewUserService(store)
	notifyService := services.NewNotificationService(cfg.Notify)
	if !notifyService.IsEnabled() {
		log.Println("⚠️ Admin notifications disabled: ADMIN_NOTIFY_TOKEN not set")
	}
	walletService := services.NewWalletService(store, clk, notifyService, cfg)
	productService := services.NewProductService(store)
	purchaseService := services.NewPurchaseService(store, clk, cfg)
	earningService := services.NewEarningService(store, clk)
	vipService := services.NewVIPService(store, clk)
	prizeService := services.NewPrizeService(store, clk, loc, nil)
	referralService := services.NewReferralService(store, clk, loc)
	settingsService := services.NewSettingsService(store, cfg)
	dashboardService := services.NewDashboardService(store, clk, loc)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService)
	productHandler := handlers.NewProductHandler(productService, purchaseService)
	earningHandler := handlers.NewEarningHandler(earningService)
	rewardHandler := handlers.NewRewardHandler(vipService, prizeService, referralService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	setupAuthRoutes(api.Group("/auth"), authHandler, cfg)

	// Everything below requires a valid access token
	auth := middleware.AuthMiddleware(cfg)

	setupProfileRoutes(api.Group("/profile", auth), userHandler)
	setupWalletRoutes(api.Group("/wallet", auth, middleware.NoCacheHeaders()), walletHandler)
	setupProductRoutes(api.Group("/products", auth), productHandler)
	setupEarningRoutes(api.Group("/my-products", auth, middleware.NoCacheHeaders()), earningHandler)
	setupRewardRoutes(api.Group("", auth, middleware.NoCacheHeaders()), rewardHandler)
	api.Get("/settings", auth, settingsHandler.Get)

	// Admin routes
	admin := api.Group("/admin", auth, middleware.AdminOnly(), middleware.NoCacheHeaders())
	setupAdminRoutes(admin, dashboardHandler, userHandler, productHandler, walletHandler, settingsHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (5 req/min/IP on credential checks)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", middleware.StrictRateLimiter(), handler.ChangePassword)
}

// setupWalletRoutes configures wallet routes (Authenticated)
func setupWalletRoutes(router fiber.Router, handler *handlers.WalletHandler) {
	router.Get("/", handler.GetWallet)
	router.Get("/transactions", handler.ListTransactions)

	// Money movement (3 req/min/IP)
	router.Post("/recharge", middleware.StrictRateLimiter(), handler.Recharge)
	router.Post("/withdraw", middleware.StrictRateLimiter(), handler.Withdraw)
}

// setupProductRoutes configures the catalog and purchase routes
func setupProductRoutes(router fiber.Router, handler *handlers.ProductHandler) {
	router.Get("/", middleware.CatalogCache(catalogMaxAge), handler.ListAvailable)
	router.Post("/:id/purchase", handler.Purchase)
}

// setupEarningRoutes configures holding routes
func setupEarningRoutes(router fiber.Router, handler *handlers.EarningHandler) {
	router.Get("/", handler.ListMyProducts)
	router.Get("/:id/window", handler.GetWindow)
	router.Post("/:id/claim", middleware.StrictRateLimiter(), handler.Claim)
}

// setupRewardRoutes configures VIP, prize and referral routes
func setupRewardRoutes(router fiber.Router, handler *handlers.RewardHandler) {
	router.Get("/vip", handler.GetVIPStatus)
	router.Post("/vip/claim", handler.ClaimVIPRewards)

	router.Get("/prize", handler.GetPrize)
	router.Post("/prize/smash", middleware.StrictRateLimiter(), handler.SmashPrize)

	router.Get("/referrals", handler.GetReferrals)
}

// setupAdminRoutes configures admin routes (Admin only)
func setupAdminRoutes(
	router fiber.Router,
	dashboardHandler *handlers.DashboardHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	walletHandler *handlers.WalletHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	router.Get("/dashboard", dashboardHandler.GetAdminDashboard)

	// Users
	router.Get("/users", userHandler.ListUsers)
	router.Get("/users/:id", userHandler.GetUser)
	router.Put("/users/:id", userHandler.UpdateUser)
	router.Delete("/users/:id", userHandler.DeleteUser)

	// Products
	router.Get("/products", productHandler.List)
	router.Get("/products/:id", productHandler.Get)
	router.Post("/products", productHandler.Create)
	router.Put("/products/:id", productHandler.Update)
	router.Delete("/products/:id", productHandler.Delete)

	// Transactions
	router.Get("/transactions", walletHandler.ListAllTransactions)
	router.Put("/transactions/:id/approve", walletHandler.Approve)
	router.Put("/transactions/:id/reject", walletHandler.Reject)

	// Settings
	router.Get("/settings", settingsHandler.Get)
	router.Put("/settings", settingsHandler.Update)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"topup-store/controllers"
	"topup-store/database"
	"topup-store/middleware"
	"topup-store/models"
	"topup-store/repository"
	"topup-store/routes"
	"topup-store/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	// --- Stores ---
	if err := database.ConnectPostgres(cfg.Postgres); err != nil {
		logger.Fatal("Postgres connection failed", zap.Error(err))
	}
	if err := models.Migrate(database.DB); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	if err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDBName); err != nil {
		logger.Fatal("MongoDB connection failed", zap.Error(err))
	}

	// Catalog cache is best-effort: a missing Redis only disables caching.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Structured HTTP request logging
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		switch {
		case status >= 500:
			logger.Error("http_request", fields...)
		case status >= 400:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
	})

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	userRepo := repository.NewGormUserRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)
	productRepo := repository.NewMongoProductRepository(database.Catalog)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	catalogCache := services.NewCatalogCache(redisClient, cfg.CacheTTL, logger)

	authService := services.NewAuthService(userRepo, tokenService, logger)
	userService := services.NewUserService(userRepo, logger)
	productService := services.NewProductService(productRepo, catalogCache, cfg.CurrencyPrefix, logger)
	orderService := services.NewOrderService(orderRepo, productRepo, logger)

	cookieSettings := controllers.CookieSettings{
		Domain: cfg.CookieDomain,
		Secure: cfg.CookieSecure,
		MaxAge: int(cfg.SessionTTL.Seconds()),
	}
	authController := controllers.NewAuthController(authService, cookieSettings)
	userController := controllers.NewUserController(userService)
	productController := controllers.NewProductController(productService)
	orderController := controllers.NewOrderController(orderService)

	r.Use(middleware.CurrentUser(tokenService, userRepo))
	routes.Register(r, authController, userController, productController, orderController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "topup-store"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Topup store started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if err := database.ClosePostgres(); err != nil {
		logger.Error("Postgres close error", zap.Error(err))
	}
	if err := database.CloseMongo(); err != nil {
		logger.Error("MongoDB close error", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Info("Topup store stopped gracefully")
}

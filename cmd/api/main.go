// @title Quizbook API
// @version 1.0
// @description Quiz authoring and quiz taking API.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quizbook/cmd/api/docs"
	"quizbook/internal/bootstrap"
	"quizbook/internal/config"
	"quizbook/internal/handler"
	"quizbook/internal/logger"
	"quizbook/internal/middleware"
	"quizbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()
	deps, err := bootstrap.New(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	authService, err := service.NewAuthService(cfg.JWT, cfg.GoogleOAuth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	if len(cfg.Admin.Emails) == 0 {
		appLogger.Warn("No administrator emails configured, admin routes will reject every caller")
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", healthHandler(deps))
	if deps.FSRoot != "" {
		app.Static("/assets", deps.FSRoot)
	}

	handler.RegisterRoutes(app, handler.Handlers{
		Quiz:        handler.NewQuizHandler(deps.Reader, deps.Scoring),
		Admin:       handler.NewAdminQuizHandler(deps.Editor, deps.Reader),
		Auth:        handler.NewAuthHandler(authService, deps.Policy),
		Assets:      handler.NewAssetHandler(deps.Blobs),
		AuthService: authService,
		Policy:      deps.Policy,
	})

	go func() {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited")
}

func healthHandler(deps *bootstrap.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.Map{"database": "ok"}
		healthy := true
		if err := deps.DB.PingContext(ctx); err != nil {
			status["database"] = fmt.Sprintf("error: %v", err)
			healthy = false
		}
		if deps.Cache != nil {
			status["cache"] = "ok"
			if err := deps.Cache.Ping(ctx); err != nil {
				// the reader falls through to the store without Redis
				status["cache"] = fmt.Sprintf("degraded: %v", err)
			}
		}
		if !healthy {
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		return c.JSON(status)
	}
}

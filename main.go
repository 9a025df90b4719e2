package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ordergrab/config"
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/jobs"
	"ordergrab/logging"
	"ordergrab/middlewares"
	"ordergrab/providers"
	"ordergrab/routes"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using environment")
	}

	cfg := config.Load()
	if err := logging.Init(cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logging.Sync()

	if err := database.Connect(cfg); err != nil {
		logging.Logger.Fatal("❌ Database connection failed", zap.Error(err))
	}
	if err := database.SeedAdmin(database.DB, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logging.Logger.Fatal("❌ Failed to seed admin", zap.Error(err))
	}

	if err := services.InitImageStore(context.Background(), cfg); err != nil {
		logging.Logger.Warn("⚠️ Image storage disabled", zap.Error(err))
	}
	if err := providers.SetupTelegram(cfg); err != nil {
		logging.Logger.Warn("⚠️ Telegram notifications disabled", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "ordergrab",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(middlewares.Metrics())

	limiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	routes.Setup(app, limiter)

	sched, err := jobs.StartScheduler(cfg, limiter)
	if err != nil {
		logging.Logger.Fatal("❌ Failed to start scheduler", zap.Error(err))
	}

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	logging.Logger.Info("🚀 Server running", zap.String("addr", addr), zap.Strings("notifiers", providers.Names()))

	go func() {
		if err := app.Listen(addr); err != nil {
			logging.Logger.Panic("Failed to start server", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logging.Logger.Info("Gracefully shutting down...")
	if err := sched.Shutdown(); err != nil {
		logging.Logger.Warn("Scheduler shutdown", zap.Error(err))
	}
	if err := app.Shutdown(); err != nil {
		logging.Logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logging.Logger.Info("Server exited cleanly")
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helpers.JSONStatus(c, fe.Code, "REQUEST_FAILED", fe.Message)
	}
	logging.Logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	return helpers.JSONFail(c, err)
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lms/config"
	courseControllers "lms/controllers/course"
	"lms/database"
	"lms/lifecycle"
	"lms/routers/authRoutes"
	"lms/routers/catalogRoutes"
	"lms/routers/courseRoutes"
	"lms/routers/forumRoutes"
	"lms/routers/requestRoutes"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Course lifecycle wiring: the service drives reconciliation and the
	// scheduler owns the status flags
	lifecycleService := lifecycle.NewService(database.Database.Db)
	courseControllers.Init(lifecycleService)
	courseControllers.InitMailer(services.NewMailer())
	courseControllers.InitRenderer(services.NewCertificateRenderer())

	scheduler := lifecycle.NewStatusScheduler(
		lifecycleService,
		lifecycle.SystemClock(),
		config.AppConfig.StatusInterval,
	)
	scheduler.Start()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded resource files
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	catalogRoutes.SetupCatalogRoutes(app)
	requestRoutes.SetupRequestRoutes(app)
	forumRoutes.SetupForumRoutes(app)

	// Stop the scheduler cleanly on shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		scheduler.Stop()
		_ = app.Shutdown()
	}()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

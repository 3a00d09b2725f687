package app

import (
	"database/sql"
	"fmt"
	"log"

	"internhub/internal/config"
	"internhub/internal/handlers"
	"internhub/internal/pdf"
	"internhub/internal/repositories"
	"internhub/internal/routes"
	"internhub/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "internhub/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	studentRepo := repositories.NewStudentRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	logRepo := repositories.NewLogRepository(db)

	// === Services ===
	authService := services.NewAuthService([]byte(cfg.JWT.Secret))
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.BaseURL,
	)
	userService := services.NewUserService(userRepo, studentRepo, emailService, authService)

	// activity sinks: in-app notifications always, Telegram when configured
	sinks := []services.ActivitySink{
		services.NewNotificationSink(notificationRepo, studentRepo),
	}
	if cfg.Telegram.Enabled {
		if tg := services.NewTelegramSink(cfg.Telegram.BotToken, userRepo, studentRepo); tg != nil {
			sinks = append(sinks, tg)
		}
	}

	taskService := services.NewTaskService(taskRepo, commentRepo, studentRepo, sinks...)
	reviewService := services.NewReviewService(taskRepo, commentRepo)
	ratingService := services.NewRatingService(ratingRepo, studentRepo)
	logService := services.NewLogService(logRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	activityService := services.NewActivityService(taskRepo, ratingRepo, studentRepo, userRepo)

	logbookGen := pdf.NewLogbookGenerator(cfg.Files.RootDir)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, reviewService, userService)
	ratingHandler := handlers.NewRatingHandler(ratingService, userService)
	logHandler := handlers.NewLogHandler(logService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	activityHandler := handlers.NewActivityHandler(activityService)
	reportHandler := handlers.NewReportHandler(reviewService, userService, logbookGen)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.JWT.Secret),
		authHandler,
		userHandler,
		taskHandler,
		ratingHandler,
		logHandler,
		notificationHandler,
		activityHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

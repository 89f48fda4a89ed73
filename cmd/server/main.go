package main

import (
	"context"
	"log"
	"os"
	"time"

	"dufaa.com/communitybackend/internal/handler"
	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/database"
	"dufaa.com/communitybackend/pkg/mailer"
	"dufaa.com/communitybackend/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const requestTimeout = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if os.Getenv("APP_ENV") == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	rdb := connectRedis()

	var searchService service.SearchService
	if host := os.Getenv("MEILI_HOST"); host != "" {
		client := meilisearch.New(host, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
		searchService = service.NewSearchService(client)
	} else {
		log.Println("MEILI_HOST not set, search is disabled")
	}

	mediaStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize media storage: %v", err)
	}

	mail := mailer.NewSMTPMailer()
	tokens := service.NewTokenManager()

	userRepo := repository.NewUserRepository(db)
	restrictionRepo := repository.NewRestrictionRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	learningRepo := repository.NewLearningRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	auditService := service.NewAuditService(auditRepo)
	notificationService := service.NewNotificationService(notificationRepo, rdb)

	authService := service.NewAuthService(userRepo, verificationRepo, mail, tokens, rdb)
	authHandler := handler.NewAuthHandler(authService)

	feedService := service.NewFeedService(postRepo)
	postService := service.NewPostService(postRepo, reactionRepo, searchService, mediaStorage)
	postHandler := handler.NewPostHandler(postService, feedService)

	commentService := service.NewCommentService(commentRepo, postRepo, notificationService)
	commentHandler := handler.NewCommentHandler(commentService)

	reactionService := service.NewReactionService(reactionRepo, postRepo, commentRepo)
	reactionHandler := handler.NewReactionHandler(reactionService)

	notificationHandler := handler.NewNotificationHandler(notificationService, rdb)

	profileService := service.NewProfileService(userRepo, searchService)
	profileHandler := handler.NewProfileHandler(profileService)

	reportService := service.NewReportService(reportRepo, postRepo, commentRepo, userRepo, auditService)
	reportHandler := handler.NewReportHandler(reportService)

	learningService := service.NewLearningService(learningRepo, searchService, auditService)
	learningHandler := handler.NewLearningHandler(learningService)

	adminService := service.NewAdminService(userRepo, restrictionRepo, searchService, auditService)
	announcementService := service.NewAnnouncementService(announcementRepo, auditService)
	adminHandler := handler.NewAdminHandler(adminService, auditService, announcementService)

	submissionService := service.NewSubmissionService(submissionRepo)
	submissionHandler := handler.NewSubmissionHandler(submissionService)

	uploadHandler := handler.NewUploadHandler(mediaStorage)

	var searchHandler *handler.SearchHandler
	if searchService != nil {
		searchHandler = handler.NewSearchHandler(searchService)
	}

	chain := middleware.NewAuthChain(tokens, userRepo, restrictionRepo)

	router := gin.Default()
	router.Use(cors.New(corsConfig()))
	router.Use(middleware.RequestTimeout(requestTimeout))

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/verify", authHandler.Verify)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/forgot", authHandler.Forgot)
		auth.POST("/reset", authHandler.Reset)
	}

	// Public level: the session is attached when present but never required.
	public := api.Group("", chain.Public())
	{
		public.GET("/feed", postHandler.GetFeed)
		public.GET("/posts/:id", postHandler.Get)
		public.GET("/posts/:id/comments", commentHandler.ListByPost)
		public.GET("/profile/:id", profileHandler.Get)
		public.GET("/people", profileHandler.ListPeople)
		public.GET("/reactions/counts", reactionHandler.Counts)
		public.GET("/learning/subjects", learningHandler.ListSubjects)
		public.GET("/learning/subjects/:id/materials", learningHandler.ListMaterials)
		public.GET("/announcements", adminHandler.ListActiveAnnouncements)
		public.GET("/gallery", submissionHandler.List)
		if searchHandler != nil {
			public.GET("/search", searchHandler.Search)
		}
	}

	// Each subsequent group layers one more guard on the previous ones.
	protected := api.Group("", chain.Protected())
	{
		protected.GET("/me", profileHandler.GetCurrent)
		protected.PUT("/profile", profileHandler.Update)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread", notificationHandler.UnreadCount)
		protected.GET("/notifications/stream", notificationHandler.Stream)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)

		protected.POST("/uploads/:kind", uploadHandler.Upload)

		protected.GET("/submissions", submissionHandler.ListOwn)
	}

	restricted := protected.Group("", chain.Restricted())
	{
		restricted.POST("/reports", reportHandler.Create)

		restricted.PUT("/reactions", reactionHandler.Set)
		restricted.DELETE("/reactions", reactionHandler.Remove)

		restricted.DELETE("/posts/:id", postHandler.Delete)

		restricted.POST("/submissions", submissionHandler.Create)
		restricted.PUT("/submissions/:id", submissionHandler.Update)
		restricted.DELETE("/submissions/:id", submissionHandler.Delete)

		restricted.POST("/learning/subjects/:id/materials", learningHandler.SubmitMaterial)
	}

	unmuted := restricted.Group("", chain.Unmuted())
	{
		unmuted.POST("/posts", postHandler.Create)
		unmuted.POST("/posts/:id/comments", commentHandler.Create)
		unmuted.PUT("/comments/:id", commentHandler.Update)
		unmuted.DELETE("/comments/:id", commentHandler.Delete)
	}

	admin := unmuted.Group("/admin", chain.Admin())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id/restrictions", adminHandler.ListUserRestrictions)
		admin.PUT("/users/:id/admin", adminHandler.SetAdmin)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.POST("/restrictions", adminHandler.CreateRestriction)
		admin.GET("/restrictions", adminHandler.ListRestrictions)
		admin.PUT("/restrictions/:id/lift", adminHandler.LiftRestriction)

		admin.GET("/reports", reportHandler.List)
		admin.PUT("/reports/:id/resolve", reportHandler.Resolve)

		admin.GET("/audit", adminHandler.ListAuditLog)

		admin.GET("/announcements", adminHandler.ListAllAnnouncements)
		admin.POST("/announcements", adminHandler.CreateAnnouncement)
		admin.PUT("/announcements/:id", adminHandler.UpdateAnnouncement)
		admin.DELETE("/announcements/:id", adminHandler.DeleteAnnouncement)

		admin.POST("/learning/subjects", learningHandler.CreateSubject)
		admin.PUT("/learning/materials/:id/status", learningHandler.SetMaterialStatus)

		admin.GET("/submissions/export", submissionHandler.Export)
	}

	// Purge stale verification and reset rows periodically.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := verificationRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("verification cleanup failed: %v", err)
			}
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowCredentials = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		config.AllowOrigins = []string{origins}
	} else {
		config.AllowAllOrigins = true
		config.AllowCredentials = false
	}
	return config
}

func connectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, rate limiting and live notifications are disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable at %s: %v", addr, err)
	}

	return client
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Restriction{},
		&model.Post{},
		&model.PostMedia{},
		&model.Comment{},
		&model.Reaction{},
		&model.Notification{},
		&model.Report{},
		&model.Subject{},
		&model.Material{},
		&model.EmailVerification{},
		&model.PasswordReset{},
		&model.Announcement{},
		&model.AuditLog{},
		&model.Submission{},
		&model.SubmissionImage{},
	)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@dufaa.com").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Email:        "admin@dufaa.com",
		CollegeID:    "000000000000",
		DisplayName:  "مشرف النظام",
		PasswordHash: string(hashedPassword),
		IsAdmin:      true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded: admin@dufaa.com / admin123")
	return nil
}

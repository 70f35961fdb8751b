package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/config"
	"github.com/quocanhngo/travelmate/internal/handler"
	"github.com/quocanhngo/travelmate/internal/middleware"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/internal/service"
	"github.com/quocanhngo/travelmate/internal/validation"
	"github.com/quocanhngo/travelmate/migrations"
	"github.com/quocanhngo/travelmate/pkg/auth"
	"github.com/quocanhngo/travelmate/pkg/chatstore"
	applog "github.com/quocanhngo/travelmate/pkg/logger"
	"github.com/quocanhngo/travelmate/pkg/notification"
	"github.com/quocanhngo/travelmate/pkg/storage"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// @title           TravelMate API
// @version         1.0
// @description     Travel community API: profiles, posts, itineraries, comments, likes, chat rooms and push notifications.

// @contact.name   API Support
// @contact.email  support@travelmate.local

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	migrateDown := flag.Bool("migrate-down", false, "roll back the last migration and exit")
	flag.Parse()

	// ==================== Load Config ====================
	cfg, envFile := config.Load()
	log := applog.Must(cfg.App.Env)
	defer func() { _ = log.Sync() }()

	log.Info("starting TravelMate API server", zap.String("env", cfg.App.Env), zap.Bool("dotenv", envFile))

	// ==================== Database (PostgreSQL) ====================
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.App.Production() {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database handle", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.DB.ConnMaxIdle)
	log.Info("connected to PostgreSQL", zap.Int("maxOpenConns", cfg.DB.MaxOpenConns))

	// ==================== Run Migrations ====================
	// The SQL migrations own the partial unique indexes, CHECKs and cascades
	// the services rely on, so there is no AutoMigrate fallback.
	if *migrateDown {
		if err := migrations.Rollback(cfg.DB.URL(), log); err != nil {
			log.Fatal("failed to roll back migration", zap.Error(err))
		}
		return
	}
	if err := migrations.Run(cfg.DB.URL(), log); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// ==================== Redis ====================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	log.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr()))

	// ==================== Repositories ====================
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	itineraryRepo := repository.NewItineraryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	chatRoomRepo := repository.NewChatRoomRepository(db)
	reportRepo := repository.NewReportRepository(db)
	fcmTokenRepo := repository.NewFcmTokenRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// ==================== Firebase (auth, FCM, Firestore) ====================
	var (
		verifier     auth.Verifier
		notifier     service.Notifier = notification.Nop{Log: log}
		bootstrapper service.RoomBootstrapper = chatstore.Nop{}
		fcmSender    *notification.FCMSender
		firestore    *chatstore.FirestoreBootstrapper
	)

	if cfg.Firebase.Enabled() {
		app, err := newFirebaseApp(ctx, cfg.Firebase)
		if err != nil {
			log.Fatal("failed to initialise Firebase", zap.Error(err))
		}

		if fcmSender, err = notification.NewFCMSender(ctx, app, fcmTokenRepo, log); err != nil {
			log.Warn("FCM not available, push notifications disabled", zap.Error(err))
		} else {
			notifier = fcmSender
		}

		if firestore, err = chatstore.NewFirestoreBootstrapper(ctx, app, cfg.Firebase.ChatCollection); err != nil {
			log.Warn("Firestore not available, chat documents are not bootstrapped", zap.Error(err))
		} else {
			bootstrapper = firestore
		}

		if cfg.Auth.Mode == config.AuthModeFirebase {
			if verifier, err = auth.NewFirebaseVerifier(ctx, app); err != nil {
				log.Fatal("failed to create Firebase auth client", zap.Error(err))
			}
		}
	}

	if verifier == nil {
		if cfg.App.Production() {
			log.Fatal("local token auth is not allowed in production", zap.String("authMode", cfg.Auth.Mode))
		}
		verifier = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
		log.Warn("using local HS256 bearer tokens; run cmd/seeder to mint one")
	}
	log.Info("auth configured", zap.String("mode", cfg.Auth.Mode))

	revocations := auth.NewRevocationList(rdb)

	// ==================== Services ====================
	identity := service.NewIdentityService(userRepo)
	targets := service.NewTargetResolver(userRepo, postRepo, itineraryRepo, commentRepo)

	authService := service.NewAuthService(identity, revocations)
	profileService := service.NewProfileService(identity, profileRepo)
	messageService := service.NewMessageService(identity, messageRepo, profileRepo, notifier)
	fcmService := service.NewFcmTokenService(identity, fcmTokenRepo)
	chatService := service.NewChatService(identity, chatRoomRepo, profileRepo, bootstrapper, log.Named("chat"))
	postService := service.NewPostService(identity, postRepo)
	itineraryService := service.NewItineraryService(identity, itineraryRepo)
	commentService := service.NewCommentService(identity, targets, commentRepo, profileRepo, notifier)
	interactionService := service.NewInteractionService(identity, targets, interactionRepo)
	reportService := service.NewReportService(identity, targets, reportRepo)

	if err := postService.EnsureDefaultCategories(ctx); err != nil {
		log.Fatal("failed to seed post categories", zap.Error(err))
	}

	// ==================== MinIO Storage ====================
	minioStorage, err := storage.NewMinIO(ctx, storage.Config{
		Endpoint:  cfg.MinIO.Endpoint,
		PublicURL: cfg.MinIO.PublicURL,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	}, log)
	if err != nil {
		log.Warn("MinIO not available, file upload disabled", zap.Error(err))
	} else {
		log.Info("connected to MinIO", zap.String("bucket", cfg.MinIO.Bucket))
	}

	// ==================== Handlers ====================
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	messageHandler := handler.NewMessageHandler(messageService, fcmService)
	chatHandler := handler.NewChatHandler(chatService)
	postHandler := handler.NewPostHandler(postService)
	itineraryHandler := handler.NewItineraryHandler(itineraryService)
	commentHandler := handler.NewCommentHandler(commentService)
	interactionHandler := handler.NewInteractionHandler(interactionService, reportService)

	// ==================== Gin Router ====================
	if cfg.App.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.RegisterJSONFieldNames()

	router := gin.New()
	router.Use(middleware.Standard(log, cfg.CORS.Origins)...)

	// Serve swagger.json at /docs/swagger.json to avoid conflict with /swagger/* wildcard
	router.StaticFile("/docs/swagger.json", "./docs/swagger.json")
	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "travelmate-api",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// ==================== API Routes ====================
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(verifier, revocations, log))
	{
		// Auth
		api.GET("/auth/me", authHandler.Me)
		api.POST("/auth/logout", authHandler.Logout)

		// Users
		api.GET("/users/profile", profileHandler.GetMyProfile)
		api.GET("/users/:userId/profile", profileHandler.GetProfile)
		api.PUT("/users/:userId/profile", profileHandler.UpdateProfile)
		api.PUT("/users/:userId/profile-image", profileHandler.UpdateProfileImage)

		// Messages & push tokens
		api.POST("/messages", messageHandler.SendMessage)
		api.POST("/fcm/token", messageHandler.RegisterToken)
		api.DELETE("/fcm/token", messageHandler.DeleteToken)

		// Chat rooms
		api.POST("/chat/room", chatHandler.RequestRoom)
		api.GET("/chat/rooms", chatHandler.ListRooms)

		// Posts
		api.GET("/posts", postHandler.List)
		api.GET("/posts/:postId", postHandler.Get)
		api.POST("/posts", postHandler.Create)
		api.PUT("/posts/:postId", postHandler.Update)
		api.DELETE("/posts/:postId", postHandler.Delete)

		// Itineraries
		api.GET("/itineraries", itineraryHandler.List)
		api.GET("/itineraries/:itineraryId", itineraryHandler.Get)
		api.POST("/itineraries", itineraryHandler.Create)
		api.PUT("/itineraries/:itineraryId", itineraryHandler.Update)
		api.DELETE("/itineraries/:itineraryId", itineraryHandler.Delete)

		// Comments
		api.GET("/comments", commentHandler.List)
		api.POST("/comments", commentHandler.Create)
		api.PUT("/comments/:commentId", commentHandler.Update)
		api.DELETE("/comments/:commentId", commentHandler.Delete)

		// Interactions & reports
		api.POST("/interactions/like", interactionHandler.ToggleLike)
		api.POST("/interactions/bookmark", interactionHandler.ToggleBookmark)
		api.GET("/interactions/status", interactionHandler.Status)
		api.POST("/reports", interactionHandler.Report)

		// Upload
		if minioStorage != nil {
			uploadHandler := handler.NewUploadHandler(minioStorage, cfg.Upload.MaxBytes)
			api.POST("/upload", uploadHandler.UploadImage)
			api.POST("/upload/profile", uploadHandler.UploadProfileImage)
			api.POST("/upload/multiple", uploadHandler.UploadMultiple)
		}
	}

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	log.Info("TravelMate API running",
		zap.String("addr", "http://0.0.0.0:"+cfg.App.Port),
		zap.String("docs", "http://0.0.0.0:"+cfg.App.Port+"/swagger/index.html"),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// Give ongoing requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	if fcmSender != nil {
		fcmSender.Wait()
	}
	if firestore != nil {
		if err := firestore.Close(); err != nil {
			log.Warn("failed to close Firestore client", zap.Error(err))
		}
	}
	if err := rdb.Close(); err != nil {
		log.Warn("failed to close Redis client", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
	log.Info("server exited gracefully")
}

func newFirebaseApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}
	return firebase.NewApp(ctx, fbConfig, opts...)
}

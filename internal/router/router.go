package router

import (
	"strconv"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/ai"
	"github.com/carena-app/backend/internal/handlers"
	"github.com/carena-app/backend/internal/mailer"
	"github.com/carena-app/backend/internal/middleware"
	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/repositories"
	"github.com/carena-app/backend/internal/scheduler"
	"github.com/carena-app/backend/internal/services"
	"github.com/carena-app/backend/internal/storage"
	"github.com/carena-app/backend/pkg/config"
	"github.com/carena-app/backend/pkg/logger"
	"github.com/carena-app/backend/pkg/metrics"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(requestMetrics)
	logger.Log.Info("global middleware configured")
}

// requestMetrics records per-request duration labeled by route pattern
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		metrics.RecordHTTPRequestDuration(c.Request().Method, c.Path(), strconv.Itoa(status), time.Since(start))
		return err
	}
}

// seedReactionCatalog inserts the default reaction kinds on first boot
func seedReactionCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Reaction{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&[]models.Reaction{
		{Name: "like", Emoji: "👍"},
		{Name: "support", Emoji: "💪"},
		{Name: "empathize", Emoji: "🤝"},
	}).Error
}

// SetupRoutes migrates the schema, wires repositories, services, and
// handlers, and registers every route. It returns the partition scheduler
// so the caller owns its lifecycle.
func SetupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	db *config.DB,
	firebaseAuthClient *auth.Client,
	s3 *storage.S3Storage,
	mail *mailer.Mailer,
	completer ai.Completer,
) (*scheduler.PartitionScheduler, error) {
	if err := db.MySQL.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.SurveyAnswer{},
		&models.Cancer{},
		&models.Emotion{},
		&models.SectionPrimary{},
		&models.SectionSecondary{},
		&models.Reaction{},
		&models.ReactionEntity{},
		&models.Diary{},
		&models.Post{},
		&models.Image{},
		&models.Article{},
		&models.ArticleImage{},
		&models.Comment{},
		&models.Reply{},
		&models.Question{},
	); err != nil {
		return nil, err
	}
	logger.Log.Info("auto-migrations completed")

	// --- Repositories ---
	userRepo := repositories.NewMySQLUserRepository(db.MySQL)
	refreshTokenRepo := repositories.NewMySQLRefreshTokenRepository(db.MySQL)
	lookupRepo := repositories.NewMySQLLookupRepository(db.MySQL)
	diaryRepo := repositories.NewMySQLDiaryRepository(db.MySQL)
	postRepo := repositories.NewMySQLPostRepository(db.MySQL)
	articleRepo := repositories.NewMySQLArticleRepository(db.MySQL)
	commentRepo := repositories.NewMySQLCommentRepository(db.MySQL)
	replyRepo := repositories.NewMySQLReplyRepository(db.MySQL)
	reactionRepo := repositories.NewMySQLReactionRepository(db.MySQL)
	notificationRepo := repositories.NewMySQLNotificationRepository(db.MySQL)
	questionRepo := repositories.NewMySQLQuestionRepository(db.MySQL)

	// The notifications table is range-partitioned by month, which
	// AutoMigrate cannot declare.
	if err := notificationRepo.EnsureTable(); err != nil {
		return nil, err
	}
	if err := seedReactionCatalog(db.MySQL); err != nil {
		return nil, err
	}

	// --- Services ---
	resolver := services.NewTargetResolver(diaryRepo, postRepo, commentRepo, replyRepo)
	notificationSvc := services.NewNotificationService(notificationRepo, cfg.NotificationWindowDays, logger.Log)
	reactionSvc := services.NewReactionService(reactionRepo, notificationSvc, resolver, cfg.ReactionUnique, logger.Log)
	verificationSvc := services.NewVerificationService(db.Redis, mail)
	questionSvc := services.NewQuestionService(questionRepo, completer, logger.Log)
	partitionSched := scheduler.NewPartitionScheduler(notificationRepo, logger.Log)

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, refreshTokenRepo, verificationSvc, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	logger.Log.Info("auth routes configured")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo, cfg.AnonymousUserEmail)
	userHandler.RegisterProfileRoutes(api)

	lookupHandler := handlers.NewLookupHandler(lookupRepo)
	lookupHandler.RegisterLookupRoutes(api)

	diaryHandler := handlers.NewDiaryHandler(diaryRepo, reactionSvc)
	diaryHandler.RegisterDiaryRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, commentRepo, reactionSvc)
	postHandler.RegisterPostRoutes(api)

	articleHandler := handlers.NewArticleHandler(articleRepo, userRepo, s3)
	articleHandler.RegisterArticleRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, replyRepo, articleRepo, resolver, notificationSvc, logger.Log)
	commentHandler.RegisterCommentRoutes(api)

	replyHandler := handlers.NewReplyHandler(replyRepo, commentRepo, notificationSvc, logger.Log)
	replyHandler.RegisterReplyRoutes(api)

	reactionHandler := handlers.NewReactionHandler(reactionSvc)
	reactionHandler.RegisterReactionRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationSvc, partitionSched, cfg.Env)
	notificationHandler.RegisterNotificationRoutes(api)

	questionHandler := handlers.NewQuestionHandler(questionSvc)
	questionHandler.RegisterQuestionRoutes(api)

	uploadHandler := handlers.NewUploadHandler(s3)
	uploadHandler.RegisterUploadRoutes(api)

	logger.Log.Info("routes configured", zap.String("env", cfg.Env))
	return partitionSched, nil
}

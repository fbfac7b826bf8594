package main

import (
	"context"

	dbadapter "board/internal/adapters/database"
	"board/internal/adapters/httpapi"
	redisadapter "board/internal/adapters/redis"
	"board/internal/adapters/storage"
	"board/internal/config"
	"board/internal/core/category"
	"board/internal/core/comment"
	"board/internal/core/favorite"
	imageapp "board/internal/core/image/service"
	"board/internal/core/notification"
	notificationapp "board/internal/core/notification/service"
	"board/internal/core/post"
	postapp "board/internal/core/post/service"
	"board/internal/core/user"
	userapp "board/internal/core/user/service"
	"board/internal/workers"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	config.Init()

	config.InitDB()

	if err := config.DB.AutoMigrate(
		&user.User{},
		&category.Category{},
		&post.Post{},
		&post.Image{},
		&favorite.Favorite{},
		&comment.Comment{},
		&comment.SubComment{},
		&notification.Notification{},
		&notification.Queue{},
	); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis()

	defer closeResources(config.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userRepo := dbadapter.NewUserRepositoryDatabase()
	categoryRepo := dbadapter.NewCategoryRepositoryDatabase()
	postRepo := dbadapter.NewPostRepositoryDatabase()
	favoriteRepo := dbadapter.NewFavoriteRepositoryDatabase()
	commentRepo := dbadapter.NewCommentRepositoryDatabase()
	queueRepo := dbadapter.NewNotificationQueueRepositoryDatabase()
	notificationRepo := dbadapter.NewNotificationRepositoryDatabase()
	transactor := dbadapter.NewTransactor()
	inbox := redisadapter.NewInboxRepositoryRedis(config.RedisClient, config.Logger)

	userSvc := userapp.NewUserService(userRepo, []byte(config.Cfg.JWTSecret), config.Logger)
	postSvc := postapp.NewPostService(postRepo, userRepo, categoryRepo, favoriteRepo, commentRepo, queueRepo, transactor, config.Logger)
	postSvc.SubCommentAuthor = postapp.SubCommentAuthor(config.Cfg.SubCommentAuthor)
	notificationSvc := notificationapp.NewNotificationService(userRepo, notificationRepo, inbox, config.Logger)

	seedCategories(ctx, postSvc, config.Cfg.Categories, config.Logger)

	var imageUC httpapi.ImageUseCase
	if config.Cfg.AWSBucket != "" {
		client, err := storage.NewS3Client(ctx, config.Cfg.AWSRegion, config.Cfg.AWSAccessKeyID, config.Cfg.AWSSecretKey)
		if err != nil {
			config.Logger.Fatal("Failed to create S3 client", zap.Error(err))
		}
		s3Storage := storage.NewS3Storage(client, config.Cfg.AWSBucket, config.Cfg.AWSRegion)
		imageUC = imageapp.NewImageService(s3Storage, config.Logger)
		config.Logger.Info("Image upload enabled", zap.String("bucket", config.Cfg.AWSBucket))
	}

	r := httpapi.SetupRoutes(userSvc, postSvc, notificationSvc, imageUC, httpapi.RouterOptions{
		JWTSecret:   []byte(config.Cfg.JWTSecret),
		CORSOrigins: config.Cfg.CORSOrigins,
	})

	worker := workers.NewNotificationWorker(queueRepo, postRepo, notificationRepo, inbox, config.Cfg.BatchSize, config.Logger)
	go worker.Run(ctx)

	config.Logger.Info("App is running...", zap.String("port", config.Cfg.AppPort))
	if err := r.Run(":" + config.Cfg.AppPort); err != nil {
		config.Logger.Fatal("Server failed to start", zap.Error(err))
	}
}

func seedCategories(ctx context.Context, svc *postapp.PostService, names []string, logger *zap.Logger) {
	for _, name := range names {
		if _, err := svc.CreateCategory(ctx, name); err != nil {
			logger.Error("Error seeding category", zap.String("name", name), zap.Error(err))
		}
	}
	if len(names) > 0 {
		logger.Info("Categories seeded", zap.Int("count", len(names)))
	}
}

// closeResources flushes traces and closes the Redis and database connections.
func closeResources(logger *zap.Logger) {
	if err := config.ShutdownTracing(context.Background()); err != nil {
		logger.Error("Error shutting down tracer provider", zap.Error(err))
	}

	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}

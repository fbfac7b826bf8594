package httpapi

import (
	"context"
	"io"
	"time"

	"board/internal/adapters/httpapi/middleware"
	categoryPort "board/internal/ports/category"
	commentPort "board/internal/ports/comment"
	favoritePort "board/internal/ports/favorite"
	imagePort "board/internal/ports/image"
	notificationPort "board/internal/ports/notification"
	postPort "board/internal/ports/post"
	userPort "board/internal/ports/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Inbound ports consumed by the controllers.

type UserUseCase interface {
	SignIn(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	SignUp(ctx context.Context, username, password, nickname, profileImage string) (*userPort.UserDTO, error)
	CheckUsername(ctx context.Context, username string) error
}

type PostUseCase interface {
	GetPost(ctx context.Context, categoryID, postID string) (*postPort.PostDTO, error)
	RegisterPost(ctx context.Context, req *postPort.PostBoardRequest, categoryID, username string) error
	DeletePost(ctx context.Context, categoryID, postID, username string) error
	PatchPost(ctx context.Context, categoryID, postID, username string, req *postPort.PatchBoardRequest) error
	GetLatestBoardList(ctx context.Context, categoryID string) ([]*postPort.PostDTO, error)
	GetTop3BoardList(ctx context.Context, categoryID string) ([]*postPort.PostDTO, error)
	GetSearchBoardList(ctx context.Context, searchWord, relationWord string) ([]*postPort.PostDTO, error)
	GetUserBoardList(ctx context.Context, username string) ([]*postPort.PostDTO, error)
	GetCategoryOfBoardList(ctx context.Context) ([]*categoryPort.CategoryDTO, error)
	CreateCategory(ctx context.Context, name string) (*categoryPort.CategoryDTO, error)
	LikeBoard(ctx context.Context, categoryID, postID, username string) (*postPort.FavoriteResponse, error)
	GetFavoriteList(ctx context.Context, categoryID, postID string) ([]*favoritePort.FavoriteDTO, error)
	AddComment(ctx context.Context, categoryID, postID, username string, req *commentPort.CommentRequest) error
	GetCommentList(ctx context.Context, categoryID, postID string) ([]*commentPort.CommentDTO, error)
	AddSubComment(ctx context.Context, categoryID, postID, username string, req *commentPort.SubCommentRequest) error
}

type NotificationUseCase interface {
	GetNotifications(ctx context.Context, username string, start, limit int64) ([]*notificationPort.NotificationDTO, error)
}

type ImageUseCase interface {
	Upload(ctx context.Context, body io.ReadSeeker, contentType string, size int64) (*imagePort.UploadResponse, error)
}

type RouterOptions struct {
	JWTSecret   []byte
	CORSOrigins []string
}

// SetupRoutes only wires routes; the use cases are injected from main. A nil
// imageUC leaves /images unrouted.
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	notificationUC NotificationUseCase,
	imageUC ImageUseCase,
	opts RouterOptions,
) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	auth := middleware.JWTAuthMiddleware(opts.JWTSecret)
	uc := NewUserController(userUC)
	pc := NewPostController(postUC)
	nc := NewNotificationController(notificationUC)

	r.POST("/auth/sign-up", uc.SignUp)
	r.POST("/auth/sign-in", uc.SignIn)
	r.POST("/auth/user-id-check", uc.CheckUsername)

	board := r.Group("/board")
	{
		board.GET("/categories", pc.GetCategoryOfBoardList)
		board.POST("/categories", auth, pc.CreateCategory)
		board.GET("/search", pc.GetSearchBoardList)
		board.GET("/users/:username", pc.GetUserBoardList)

		board.GET("/:categoryId/latest", pc.GetLatestBoardList)
		board.GET("/:categoryId/top-3", pc.GetTop3BoardList)
		board.POST("/:categoryId", auth, pc.RegisterPost)

		board.GET("/:categoryId/:postId", pc.GetPost)
		board.PATCH("/:categoryId/:postId", auth, pc.PatchPost)
		board.DELETE("/:categoryId/:postId", auth, pc.DeletePost)

		board.PUT("/:categoryId/:postId/favorite", auth, pc.LikeBoard)
		board.GET("/:categoryId/:postId/favorites", pc.GetFavoriteList)
		board.POST("/:categoryId/:postId/comments", auth, pc.AddComment)
		board.GET("/:categoryId/:postId/comments", pc.GetCommentList)
		board.POST("/:categoryId/:postId/sub-comments", auth, pc.AddSubComment)
	}

	r.GET("/notifications", auth, nc.GetNotifications)

	if imageUC != nil {
		ic := NewImageController(imageUC)
		r.POST("/images", auth, ic.Upload)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

package postapp

import (
	"context"
	"strings"
	"time"

	"board/internal/core/apperror"
	categoryEntity "board/internal/core/category"
	commentEntity "board/internal/core/comment"
	favoriteEntity "board/internal/core/favorite"
	"board/internal/core/notification"
	postEntity "board/internal/core/post"
	userEntity "board/internal/core/user"
	categoryPort "board/internal/ports/category"
	commentPort "board/internal/ports/comment"
	favoritePort "board/internal/ports/favorite"
	notificationPort "board/internal/ports/notification"
	postPort "board/internal/ports/post"
	txPort "board/internal/ports/tx"
	userPort "board/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// SubCommentAuthor selects whose profile a sub-comment is displayed with.
type SubCommentAuthor string

const (
	// SubCommentAuthorParent shows the author of the parent comment.
	SubCommentAuthorParent SubCommentAuthor = "parent"
	// SubCommentAuthorOwn shows the user who wrote the reply.
	SubCommentAuthorOwn SubCommentAuthor = "own"
)

const (
	top3Limit  = 3
	top3Window = 7 * 24 * time.Hour
)

// PostService validates and applies every post, favorite and comment use case.
// Each call is one unit of work.
type PostService struct {
	PostRepository     postPort.PostRepository
	UserRepository     userPort.UserRepository
	CategoryRepository categoryPort.CategoryRepository
	FavoriteRepository favoritePort.FavoriteRepository
	CommentRepository  commentPort.CommentRepository
	QueueRepository    notificationPort.QueueRepository
	Transactor         txPort.Transactor
	Logger             *zap.Logger
	SubCommentAuthor   SubCommentAuthor
	Now                func() time.Time
}

func NewPostService(
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	categoryRepo categoryPort.CategoryRepository,
	favoriteRepo favoritePort.FavoriteRepository,
	commentRepo commentPort.CommentRepository,
	queueRepo notificationPort.QueueRepository,
	transactor txPort.Transactor,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:     postRepo,
		UserRepository:     userRepo,
		CategoryRepository: categoryRepo,
		FavoriteRepository: favoriteRepo,
		CommentRepository:  commentRepo,
		QueueRepository:    queueRepo,
		Transactor:         transactor,
		Logger:             logger,
		SubCommentAuthor:   SubCommentAuthorParent,
		Now:                time.Now,
	}
}

// run executes fn in a transaction and turns gateway failures into storage errors.
func (s *PostService) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	err := s.Transactor.WithinTransaction(ctx, fn)
	if err == nil {
		return nil
	}

	err = apperror.Storage(err)
	if apperror.KindOf(err) == apperror.KindStorage {
		s.Logger.Error("Post service storage failure", zap.String("op", op), zap.Error(err))
	} else {
		s.Logger.Debug("Post service rejected request", zap.String("op", op), zap.Error(err))
	}
	return err
}

func (s *PostService) findUser(ctx context.Context, username string) (*userEntity.User, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.ErrUserNotFound
	}
	return u, nil
}

func (s *PostService) findCategory(ctx context.Context, categoryID string) (*categoryEntity.Category, error) {
	id, err := uuid.FromString(categoryID)
	if err != nil {
		return nil, apperror.ErrCategoryNotFound
	}
	c, err := s.CategoryRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.ErrCategoryNotFound
	}
	return c, nil
}

// findPost resolves a post by its (category, post) pair.
func (s *PostService) findPost(ctx context.Context, categoryID, postID string) (*postEntity.Post, error) {
	cid, pid, ok := parsePair(categoryID, postID)
	if !ok {
		return nil, apperror.ErrPostNotFound
	}
	p, err := s.PostRepository.FindByCategoryAndID(ctx, cid, pid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.ErrPostNotFound
	}
	return p, nil
}

func parsePair(categoryID, postID string) (uuid.UUID, uuid.UUID, bool) {
	cid, err := uuid.FromString(categoryID)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	pid, err := uuid.FromString(postID)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return cid, pid, true
}

func (s *PostService) enqueue(ctx context.Context, postID, actorID uuid.UUID, kind notification.Kind) error {
	_, err := s.QueueRepository.Enqueue(ctx, &notification.Queue{
		ID:      uuid.Must(uuid.NewV4()),
		PostID:  postID,
		ActorID: actorID,
		Kind:    kind,
		Status:  notification.StatusPending,
	})
	return err
}

// GetPost returns the post view and counts the read as one view.
func (s *PostService) GetPost(ctx context.Context, categoryID, postID string) (*postPort.PostDTO, error) {
	var dto *postPort.PostDTO
	err := s.run(ctx, "GetPost", func(ctx context.Context) error {
		if _, err := s.findCategory(ctx, categoryID); err != nil {
			return err
		}

		cid, pid, ok := parsePair(categoryID, postID)
		if !ok {
			return apperror.ErrPostNotFound
		}
		exists, err := s.PostRepository.ExistsByCategoryAndID(ctx, cid, pid)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.ErrPostNotFound
		}

		if err := s.PostRepository.IncreaseViewCount(ctx, pid); err != nil {
			return err
		}

		p, err := s.PostRepository.FindDetail(ctx, cid, pid)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.ErrPostNotFound
		}
		dto = NewPostDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// RegisterPost creates a post owned by username in the category.
func (s *PostService) RegisterPost(ctx context.Context, req *postPort.PostBoardRequest, categoryID, username string) error {
	return s.run(ctx, "RegisterPost", func(ctx context.Context) error {
		u, err := s.findUser(ctx, username)
		if err != nil {
			return err
		}
		c, err := s.findCategory(ctx, categoryID)
		if err != nil {
			return err
		}

		id := uuid.Must(uuid.NewV4())
		p := &postEntity.Post{
			ID:         id,
			Title:      req.Title,
			Contents:   req.Content,
			UserID:     u.ID,
			CategoryID: c.ID,
			Images:     postEntity.NewImages(id, req.ImageURLs),
		}
		if _, err := s.PostRepository.Create(ctx, p); err != nil {
			return err
		}

		s.Logger.Info("Post registered", zap.String("postID", id.String()), zap.String("username", username))
		return nil
	})
}

// DeletePost checks user, then post, then ownership before deleting.
func (s *PostService) DeletePost(ctx context.Context, categoryID, postID, username string) error {
	return s.run(ctx, "DeletePost", func(ctx context.Context) error {
		u, err := s.findUser(ctx, username)
		if err != nil {
			return err
		}

		cid, pid, ok := parsePair(categoryID, postID)
		if !ok {
			return apperror.ErrPostNotFound
		}
		exists, err := s.PostRepository.ExistsByCategoryAndID(ctx, cid, pid)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.ErrPostNotFound
		}

		owner, err := s.PostRepository.IsOwner(ctx, cid, pid, u.ID)
		if err != nil {
			return err
		}
		if !owner {
			return apperror.ErrNoPermission
		}

		if err := s.PostRepository.Delete(ctx, pid); err != nil {
			return err
		}
		s.Logger.Info("Post deleted", zap.String("postID", pid.String()), zap.String("username", username))
		return nil
	})
}

// PatchPost replaces title, contents and the whole image list.
func (s *PostService) PatchPost(ctx context.Context, categoryID, postID, username string, req *postPort.PatchBoardRequest) error {
	return s.run(ctx, "PatchPost", func(ctx context.Context) error {
		u, err := s.findUser(ctx, username)
		if err != nil {
			return err
		}
		if _, err := s.findCategory(ctx, categoryID); err != nil {
			return err
		}
		p, err := s.findPost(ctx, categoryID, postID)
		if err != nil {
			return err
		}
		if p.UserID != u.ID {
			return apperror.ErrNoPermission
		}

		p.Title = req.Title
		p.Contents = req.Content
		if err := s.PostRepository.Update(ctx, p); err != nil {
			return err
		}
		return s.PostRepository.ReplaceImages(ctx, p.ID, postEntity.NewImages(p.ID, req.ImageURLs))
	})
}

// GetLatestBoardList lists the category newest first. An unknown category is an empty list.
func (s *PostService) GetLatestBoardList(ctx context.Context, categoryID string) ([]*postPort.PostDTO, error) {
	cid, err := uuid.FromString(categoryID)
	if err != nil {
		return []*postPort.PostDTO{}, nil
	}

	var posts []*postEntity.Post
	err = s.run(ctx, "GetLatestBoardList", func(ctx context.Context) error {
		posts, err = s.PostRepository.FindLatestByCategory(ctx, cid)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewPostDTOs(posts), nil
}

// GetTop3BoardList ranks the last seven days of the category by favorites,
// then comments, then views, then recency.
func (s *PostService) GetTop3BoardList(ctx context.Context, categoryID string) ([]*postPort.PostDTO, error) {
	cid, err := uuid.FromString(categoryID)
	if err != nil {
		return []*postPort.PostDTO{}, nil
	}

	since := s.Now().Add(-top3Window)
	var posts []*postEntity.Post
	err = s.run(ctx, "GetTop3BoardList", func(ctx context.Context) error {
		posts, err = s.PostRepository.FindTopByCategorySince(ctx, cid, since, top3Limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewPostDTOs(posts), nil
}

// GetSearchBoardList matches searchWord, narrowed by relationWord when given.
func (s *PostService) GetSearchBoardList(ctx context.Context, searchWord, relationWord string) ([]*postPort.PostDTO, error) {
	searchWord = strings.TrimSpace(searchWord)
	relationWord = strings.TrimSpace(relationWord)
	if searchWord == "" {
		return nil, apperror.Validation("Search word is required.")
	}

	var posts []*postEntity.Post
	err := s.run(ctx, "GetSearchBoardList", func(ctx context.Context) error {
		var err error
		posts, err = s.PostRepository.Search(ctx, searchWord, relationWord)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewPostDTOs(posts), nil
}

func (s *PostService) GetUserBoardList(ctx context.Context, username string) ([]*postPort.PostDTO, error) {
	var posts []*postEntity.Post
	err := s.run(ctx, "GetUserBoardList", func(ctx context.Context) error {
		u, err := s.findUser(ctx, username)
		if err != nil {
			return err
		}
		posts, err = s.PostRepository.FindByUserID(ctx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewPostDTOs(posts), nil
}

func (s *PostService) GetCategoryOfBoardList(ctx context.Context) ([]*categoryPort.CategoryDTO, error) {
	var categories []*categoryEntity.Category
	err := s.run(ctx, "GetCategoryOfBoardList", func(ctx context.Context) error {
		var err error
		categories, err = s.CategoryRepository.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]*categoryPort.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, NewCategoryDTO(c))
	}
	return dtos, nil
}

// CreateCategory returns the existing category when the name is taken.
func (s *PostService) CreateCategory(ctx context.Context, name string) (*categoryPort.CategoryDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("Category name is required.")
	}

	var c *categoryEntity.Category
	err := s.run(ctx, "CreateCategory", func(ctx context.Context) error {
		existing, err := s.CategoryRepository.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			c = existing
			return nil
		}
		c, err = s.CategoryRepository.Create(ctx, &categoryEntity.Category{
			ID:   uuid.Must(uuid.NewV4()),
			Name: name,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewCategoryDTO(c), nil
}

// LikeBoard toggles the caller's favorite and returns the resulting count.
func (s *PostService) LikeBoard(ctx context.Context, categoryID, postID, username string) (*postPort.FavoriteResponse, error) {
	var count int
	err := s.run(ctx, "LikeBoard", func(ctx context.Context) error {
		u, err := s.findUser(ctx, username)
		if err != nil {
			return err
		}
		p, err := s.findPost(ctx, categoryID, postID)
		if err != nil {
			return err
		}

		liked, err := s.FavoriteRepository.Exists(ctx, u.ID, p.ID)
		if err != nil {
			return err
		}
		// Counters follow only favorite rows that actually changed.
		if !liked {
			created, err := s.FavoriteRepository.Create(ctx, &favoriteEntity.Favorite{UserID: u.ID, PostID: p.ID})
			if err != nil {
				return err
			}
			if created {
				if err := s.PostRepository.IncreaseFavoriteCount(ctx, p.ID); err != nil {
					return err
				}
				if err := s.enqueue(ctx, p.ID, u.ID, notification.KindFavorite); err != nil {
					return err
				}
			}
		} else {
			removed, err := s.FavoriteRepository.Delete(ctx, u.ID, p.ID)
			if err != nil {
				return err
			}
			if removed {
				if err := s.PostRepository.DecreaseFavoriteCount(ctx, p.ID); err != nil {
					return err
				}
			}
		}

		count, err = s.PostRepository.FavoriteCount(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &postPort.FavoriteResponse{FavoriteCount: count}, nil
}

func (s *PostService) AddComment(ctx context.Context, categoryID, postID, username string, req *commentPort.CommentRequest) error {
	return s.run(ctx, "AddComment", func(ctx context.Context) error {
		u, err := s.findUser(ctx, username)
		if err != nil {
			return err
		}
		p, err := s.findPost(ctx, categoryID, postID)
		if err != nil {
			return err
		}

		c := &commentEntity.Comment{
			ID:       uuid.Must(uuid.NewV4()),
			Contents: req.Content,
			UserID:   u.ID,
			PostID:   p.ID,
		}
		if _, err := s.CommentRepository.Create(ctx, c); err != nil {
			return err
		}
		if err := s.PostRepository.IncreaseCommentCount(ctx, p.ID); err != nil {
			return err
		}
		return s.enqueue(ctx, p.ID, u.ID, notification.KindComment)
	})
}

// GetCommentList returns the comments of the post with their replies. A post
// outside the category yields an empty list.
func (s *PostService) GetCommentList(ctx context.Context, categoryID, postID string) ([]*commentPort.CommentDTO, error) {
	cid, pid, ok := parsePair(categoryID, postID)
	if !ok {
		return []*commentPort.CommentDTO{}, nil
	}

	var comments []*commentEntity.Comment
	err := s.run(ctx, "GetCommentList", func(ctx context.Context) error {
		exists, err := s.PostRepository.ExistsByCategoryAndID(ctx, cid, pid)
		if err != nil || !exists {
			return err
		}
		comments, err = s.CommentRepository.FindByPostID(ctx, pid)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.NewCommentDTOs(comments), nil
}

func (s *PostService) GetFavoriteList(ctx context.Context, categoryID, postID string) ([]*favoritePort.FavoriteDTO, error) {
	var favorites []*favoriteEntity.Favorite
	err := s.run(ctx, "GetFavoriteList", func(ctx context.Context) error {
		p, err := s.findPost(ctx, categoryID, postID)
		if err != nil {
			return err
		}
		favorites, err = s.FavoriteRepository.FindByPostID(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewFavoriteDTOs(favorites), nil
}

// AddSubComment replies to a comment of the post.
func (s *PostService) AddSubComment(ctx context.Context, categoryID, postID, username string, req *commentPort.SubCommentRequest) error {
	return s.run(ctx, "AddSubComment", func(ctx context.Context) error {
		u, err := s.findUser(ctx, username)
		if err != nil {
			return err
		}
		p, err := s.findPost(ctx, categoryID, postID)
		if err != nil {
			return err
		}

		parentID, err := uuid.FromString(req.ParentCommentID)
		if err != nil {
			return apperror.ErrCommentNotFound
		}
		parent, err := s.CommentRepository.FindByID(ctx, parentID)
		if err != nil {
			return err
		}
		if parent == nil || parent.PostID != p.ID {
			return apperror.ErrCommentNotFound
		}

		authorID := u.ID
		sub := &commentEntity.SubComment{
			ID:              uuid.Must(uuid.NewV4()),
			Content:         req.Content,
			ParentCommentID: parent.ID,
			UserID:          &authorID,
		}
		if _, err := s.CommentRepository.CreateSubComment(ctx, sub); err != nil {
			return err
		}
		return s.enqueue(ctx, p.ID, u.ID, notification.KindSubComment)
	})
}

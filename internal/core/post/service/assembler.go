package postapp

import (
	categoryEntity "board/internal/core/category"
	commentEntity "board/internal/core/comment"
	favoriteEntity "board/internal/core/favorite"
	postEntity "board/internal/core/post"
	userEntity "board/internal/core/user"
	categoryPort "board/internal/ports/category"
	commentPort "board/internal/ports/comment"
	favoritePort "board/internal/ports/favorite"
	postPort "board/internal/ports/post"
	userPort "board/internal/ports/user"
)

const dateTimeLayout = "2006-01-02 15:04:05"

func NewCategoryDTO(c *categoryEntity.Category) *categoryPort.CategoryDTO {
	return &categoryPort.CategoryDTO{
		ID:   c.ID.String(),
		Name: c.Name,
	}
}

// NewPostDTO flattens a post loaded with its writer, category and images.
func NewPostDTO(p *postEntity.Post) *postPort.PostDTO {
	images := make([]postPort.ImageDTO, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, postPort.ImageDTO{URL: img.URL})
	}

	return &postPort.PostDTO{
		ID:            p.ID.String(),
		Category:      NewCategoryDTO(&p.Category),
		Writer:        userPort.NewUserDTO(&p.User),
		Title:         p.Title,
		Contents:      p.Contents,
		FavoriteCount: p.FavoriteCount,
		CommentCount:  p.CommentCount,
		ViewCount:     p.ViewCount,
		Images:        images,
		CreatedAt:     p.CreatedAt.Format(dateTimeLayout),
	}
}

func NewPostDTOs(posts []*postEntity.Post) []*postPort.PostDTO {
	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, NewPostDTO(p))
	}
	return dtos
}

func NewFavoriteDTOs(favorites []*favoriteEntity.Favorite) []*favoritePort.FavoriteDTO {
	dtos := make([]*favoritePort.FavoriteDTO, 0, len(favorites))
	for _, f := range favorites {
		dtos = append(dtos, &favoritePort.FavoriteDTO{
			Username:     f.User.Username,
			Nickname:     f.User.Nickname,
			ProfileImage: f.User.ProfileImage,
		})
	}
	return dtos
}

// NewCommentDTOs builds the comment views. Sub-comments are shown with the
// parent comment's author unless SubCommentAuthor is SubCommentAuthorOwn and
// the reply has a recorded author.
func (s *PostService) NewCommentDTOs(comments []*commentEntity.Comment) []*commentPort.CommentDTO {
	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		subs := make([]commentPort.SubCommentDTO, 0, len(c.SubComments))
		for _, sub := range c.SubComments {
			subs = append(subs, commentPort.SubCommentDTO{
				ID:      sub.ID.String(),
				Content: sub.Content,
				Writer:  userPort.NewUserDTO(s.subCommentWriter(c, sub)),
			})
		}

		dtos = append(dtos, &commentPort.CommentDTO{
			ID:          c.ID.String(),
			Contents:    c.Contents,
			Writer:      userPort.NewUserDTO(&c.User),
			SubComments: subs,
			CreatedAt:   c.CreatedAt.Format(dateTimeLayout),
		})
	}
	return dtos
}

func (s *PostService) subCommentWriter(parent *commentEntity.Comment, sub commentEntity.SubComment) *userEntity.User {
	if s.SubCommentAuthor == SubCommentAuthorOwn && sub.User != nil {
		return sub.User
	}
	return &parent.User
}

package httpapi

import (
	"net/http"

	commentPort "board/internal/ports/comment"
	postPort "board/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) GetPost(c *gin.Context) {
	post, err := ctl.pc.GetPost(c.Request.Context(), c.Param("categoryId"), c.Param("postId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"post": post})
}

func (ctl *PostController) RegisterPost(c *gin.Context) {
	var req postPort.PostBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	username, ok := caller(c)
	if !ok {
		return
	}
	if err := ctl.pc.RegisterPost(c.Request.Context(), &req, c.Param("categoryId"), username); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, nil)
}

func (ctl *PostController) PatchPost(c *gin.Context) {
	var req postPort.PatchBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	username, ok := caller(c)
	if !ok {
		return
	}
	if err := ctl.pc.PatchPost(c.Request.Context(), c.Param("categoryId"), c.Param("postId"), username, &req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	username, ok := caller(c)
	if !ok {
		return
	}
	if err := ctl.pc.DeletePost(c.Request.Context(), c.Param("categoryId"), c.Param("postId"), username); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func (ctl *PostController) GetLatestBoardList(c *gin.Context) {
	posts, err := ctl.pc.GetLatestBoardList(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"latestList": posts})
}

func (ctl *PostController) GetTop3BoardList(c *gin.Context) {
	posts, err := ctl.pc.GetTop3BoardList(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"top3List": posts})
}

func (ctl *PostController) GetSearchBoardList(c *gin.Context) {
	posts, err := ctl.pc.GetSearchBoardList(c.Request.Context(), c.Query("searchWord"), c.Query("relationWord"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"searchList": posts})
}

func (ctl *PostController) GetUserBoardList(c *gin.Context) {
	posts, err := ctl.pc.GetUserBoardList(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"userBoardList": posts})
}

func (ctl *PostController) GetCategoryOfBoardList(c *gin.Context) {
	categories, err := ctl.pc.GetCategoryOfBoardList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"categoryList": categories})
}

func (ctl *PostController) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"categoryName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	category, err := ctl.pc.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"category": category})
}

func (ctl *PostController) LikeBoard(c *gin.Context) {
	username, ok := caller(c)
	if !ok {
		return
	}
	res, err := ctl.pc.LikeBoard(c.Request.Context(), c.Param("categoryId"), c.Param("postId"), username)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"favoriteCount": res.FavoriteCount})
}

func (ctl *PostController) GetFavoriteList(c *gin.Context) {
	favorites, err := ctl.pc.GetFavoriteList(c.Request.Context(), c.Param("categoryId"), c.Param("postId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"favoriteList": favorites})
}

func (ctl *PostController) AddComment(c *gin.Context) {
	var req commentPort.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	username, ok := caller(c)
	if !ok {
		return
	}
	if err := ctl.pc.AddComment(c.Request.Context(), c.Param("categoryId"), c.Param("postId"), username, &req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, nil)
}

func (ctl *PostController) GetCommentList(c *gin.Context) {
	comments, err := ctl.pc.GetCommentList(c.Request.Context(), c.Param("categoryId"), c.Param("postId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"commentList": comments})
}

func (ctl *PostController) AddSubComment(c *gin.Context) {
	var req commentPort.SubCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	username, ok := caller(c)
	if !ok {
		return
	}
	if err := ctl.pc.AddSubComment(c.Request.Context(), c.Param("categoryId"), c.Param("postId"), username, &req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, nil)
}

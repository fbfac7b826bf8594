package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) SignIn(c *gin.Context) {
	var req struct {
		Username string `json:"userId" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	res, err := ctl.uc.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"token": res.Token, "expirationTime": res.ExpiresAt})
}

func (ctl *UserController) SignUp(c *gin.Context) {
	var req struct {
		Username     string `json:"userId" binding:"required"`
		Password     string `json:"password" binding:"required"`
		Nickname     string `json:"nickname" binding:"required"`
		ProfileImage string `json:"profileImage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	u, err := ctl.uc.SignUp(c.Request.Context(), req.Username, req.Password, req.Nickname, req.ProfileImage)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"user": u})
}

// CheckUsername answers whether a userId is still free before sign up.
func (ctl *UserController) CheckUsername(c *gin.Context) {
	var req struct {
		Username string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := ctl.uc.CheckUsername(c.Request.Context(), req.Username); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

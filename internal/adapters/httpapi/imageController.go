package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ImageController struct{ ic ImageUseCase }

func NewImageController(ic ImageUseCase) *ImageController { return &ImageController{ic: ic} }

// Upload expects a multipart form with the image under "file".
func (ctl *ImageController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c)
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c)
		return
	}
	defer file.Close()

	res, err := ctl.ic.Upload(c.Request.Context(), file, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"url": res.URL})
}

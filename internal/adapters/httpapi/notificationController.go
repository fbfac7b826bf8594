package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NotificationController struct{ nc NotificationUseCase }

func NewNotificationController(nc NotificationUseCase) *NotificationController {
	return &NotificationController{nc: nc}
}

func (ctrl *NotificationController) GetNotifications(c *gin.Context) {
	username, ok := caller(c)
	if !ok {
		return
	}

	start, err := strconv.ParseInt(c.DefaultQuery("start", "0"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}

	notifications, err := ctrl.nc.GetNotifications(c.Request.Context(), username, start, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"notificationList": notifications})
}

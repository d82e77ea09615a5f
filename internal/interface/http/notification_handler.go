package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udconnect/udconnect-api/internal/application"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
	"github.com/udconnect/udconnect-api/pkg/response"
)

// NotificationHandler serves the inbox and the match lifecycle.
type NotificationHandler struct {
	Svc *application.MatchService
}

func NewNotificationHandler(svc *application.MatchService) *NotificationHandler {
	return &NotificationHandler{Svc: svc}
}

type matchRequest struct {
	TargetUserID string `json:"targetUserId" binding:"required"`
}

func (h *NotificationHandler) RequestMatch(c *gin.Context) {
	var req matchRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.Svc.Request(c.Request.Context(), middleware.UserID(c), req.TargetUserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Solicitud de match enviada", response.Payload{"notification": toNotificationView(d)})
}

func (h *NotificationHandler) Mine(c *gin.Context) {
	list, unread, err := h.Svc.Notifications(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{
		"notifications": toNotificationViews(list),
		"unreadCount":   unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notificación marcada como leída", nil)
}

func (h *NotificationHandler) Accept(c *gin.Context) {
	requester, err := h.Svc.Accept(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Match aceptado exitosamente", response.Payload{"match": toUserSummary(requester)})
}

func (h *NotificationHandler) Reject(c *gin.Context) {
	if _, err := h.Svc.Reject(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Solicitud rechazada", nil)
}

func (h *NotificationHandler) Matches(c *gin.Context) {
	users, err := h.Svc.Matches(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"matches": toUserSummaries(users), "count": len(users)})
}

func (h *NotificationHandler) Status(c *gin.Context) {
	st, err := h.Svc.Status(c.Request.Context(), middleware.UserID(c), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	payload := response.Payload{"status": st.Status}
	if st.NotificationID != "" {
		payload["notificationId"] = st.NotificationID
	}
	response.Success(c, http.StatusOK, "", payload)
}

func (h *NotificationHandler) Unmatch(c *gin.Context) {
	if err := h.Svc.Unmatch(c.Request.Context(), middleware.UserID(c), c.Param("userId")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Match eliminado", nil)
}

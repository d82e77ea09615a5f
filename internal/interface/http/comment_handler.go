package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udconnect/udconnect-api/internal/application"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
	"github.com/udconnect/udconnect-api/pkg/response"
)

type CommentHandler struct {
	Svc *application.CommentService
}

func NewCommentHandler(svc *application.CommentService) *CommentHandler {
	return &CommentHandler{Svc: svc}
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required,notblank,max=500"`
	PostID   string `json:"post_id" binding:"required"`
	ParentID string `json:"parent_comment_id"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.PostID, req.Content, req.ParentID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Comentario creado", response.Payload{"comment": toCommentView(d)})
}

func (h *CommentHandler) ByPost(c *gin.Context) {
	page, err := h.Svc.ListByPost(c.Request.Context(), c.Param("postId"),
		queryInt(c, "limit", application.DefaultCommentPageSize),
		queryInt(c, "page", 1),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{
		"comments": toCommentViews(page.Comments),
		"total":    page.Total,
		"page":     page.Page,
		"limit":    page.Limit,
	})
}

func (h *CommentHandler) ToggleLike(c *gin.Context) {
	res, err := h.Svc.ToggleLike(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", likePayload(res))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comentario eliminado", nil)
}

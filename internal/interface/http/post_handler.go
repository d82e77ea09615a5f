package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udconnect/udconnect-api/internal/application"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
	"github.com/udconnect/udconnect-api/pkg/response"
)

type PostHandler struct {
	Svc *application.PostService
}

func NewPostHandler(svc *application.PostService) *PostHandler {
	return &PostHandler{Svc: svc}
}

// Content is checked by the service so that membership is verified first.
type createPostRequest struct {
	Content string `json:"content"`
	SpaceID string `json:"space_id" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.SpaceID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Publicación creada", response.Payload{"post": toPostView(d)})
}

func (h *PostHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"post": toPostView(d)})
}

func (h *PostHandler) Recent(c *gin.Context) {
	list, err := h.Svc.Recent(c.Request.Context())
	h.renderList(c, list, err)
}

func (h *PostHandler) BySpace(c *gin.Context) {
	list, err := h.Svc.ListBySpace(c.Request.Context(), c.Param("spaceId"))
	h.renderList(c, list, err)
}

func (h *PostHandler) ByUser(c *gin.Context) {
	list, err := h.Svc.ListByAuthor(c.Request.Context(), c.Param("userId"))
	h.renderList(c, list, err)
}

func (h *PostHandler) renderList(c *gin.Context, list []*application.PostDetail, err error) {
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"posts": toPostViews(list)})
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	res, err := h.Svc.ToggleLike(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", likePayload(res))
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Publicación eliminada", nil)
}

func likePayload(res *application.LikeResult) response.Payload {
	action := "unliked"
	if res.Liked {
		action = "liked"
	}
	return response.Payload{"action": action, "likes": strs(res.Likes), "likesCount": len(res.Likes)}
}

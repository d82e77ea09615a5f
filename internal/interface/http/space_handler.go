package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udconnect/udconnect-api/internal/application"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
	"github.com/udconnect/udconnect-api/pkg/response"
)

type SpaceHandler struct {
	Svc   *application.SpaceService
	Posts *application.PostService
}

func NewSpaceHandler(svc *application.SpaceService, posts *application.PostService) *SpaceHandler {
	return &SpaceHandler{Svc: svc, Posts: posts}
}

type createSpaceRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type updateSpaceRequest struct {
	Name        string `json:"name" binding:"max=100"`
	Description string `json:"description" binding:"max=500"`
}

func (h *SpaceHandler) Create(c *gin.Context) {
	var req createSpaceRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Espacio creado", response.Payload{"space": toSpaceView(d)})
}

func (h *SpaceHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"spaces": toSpaceViews(list)})
}

func (h *SpaceHandler) Explore(c *gin.Context) {
	list, err := h.Svc.Explore(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"spaces": toSpaceViews(list), "count": len(list)})
}

func (h *SpaceHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"space": toSpaceView(d)})
}

func (h *SpaceHandler) Update(c *gin.Context) {
	var req updateSpaceRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Espacio actualizado", response.Payload{"space": toSpaceView(d)})
}

func (h *SpaceHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Espacio eliminado", nil)
}

func (h *SpaceHandler) Join(c *gin.Context) {
	d, err := h.Svc.Join(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Te uniste al espacio", response.Payload{"space": toSpaceView(d)})
}

func (h *SpaceHandler) Leave(c *gin.Context) {
	d, err := h.Svc.Leave(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Saliste del espacio", response.Payload{"space": toSpaceView(d)})
}

func (h *SpaceHandler) Members(c *gin.Context) {
	members, err := h.Svc.Members(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"members": toUserSummaries(members)})
}

func (h *SpaceHandler) RecentPosts(c *gin.Context) {
	limit := queryInt(c, "limit", application.SpaceRecentPostsLimit)
	posts, err := h.Posts.RecentInSpace(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"posts": toPostViews(posts)})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/internal/application"
	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
	"github.com/udconnect/udconnect-api/pkg/helpers"
	"github.com/udconnect/udconnect-api/pkg/response"
)

type UserHandler struct {
	Svc     *application.UserService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, cookies *helpers.Manager, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type avatarRequest struct {
	BodyColor       string `json:"bodyColor" binding:"omitempty,hexcolor"`
	HairStyle       string `json:"hairStyle" binding:"omitempty,hairstyle"`
	HairColor       string `json:"hairColor" binding:"omitempty,hexcolor"`
	EyeStyle        string `json:"eyeStyle" binding:"omitempty,eyestyle"`
	MouthStyle      string `json:"mouthStyle" binding:"omitempty,mouthstyle"`
	BackgroundColor string `json:"backgroundColor" binding:"omitempty,hexcolor"`
}

func (a *avatarRequest) toEntity() entity.Avatar {
	return entity.Avatar{
		BodyColor:       a.BodyColor,
		HairStyle:       a.HairStyle,
		HairColor:       a.HairColor,
		EyeStyle:        a.EyeStyle,
		MouthStyle:      a.MouthStyle,
		BackgroundColor: a.BackgroundColor,
	}
}

type registerRequest struct {
	Name         string         `json:"name" binding:"required,notblank,max=100"`
	Email        string         `json:"email" binding:"required,email"`
	Password     string         `json:"password" binding:"required,pwd"`
	Major        string         `json:"major" binding:"max=100"`
	IGUser       string         `json:"ig_user" binding:"max=60"`
	IGProfileURL string         `json:"ig_profile_url" binding:"omitempty,url"`
	Avatar       *avatarRequest `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateAvatarRequest struct {
	Avatar *avatarRequest `json:"avatar" binding:"required"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	in := application.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Major:        req.Major,
		IGUser:       req.IGUser,
		IGProfileURL: req.IGProfileURL,
	}
	if req.Avatar != nil {
		a := req.Avatar.toEntity()
		in.Avatar = &a
	}
	s, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Cookies.SetSession(c, s.Token, s.ExpiresAt)
	response.Success(c, http.StatusCreated, "Usuario registrado", response.Payload{"user": toUserView(s.User)})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Cookies.SetSession(c, s.Token, s.ExpiresAt)
	response.Success(c, http.StatusOK, "Sesión iniciada", response.Payload{"user": toUserView(s.User)})
}

// Logout never fails; a valid session is also revoked server side.
func (h *UserHandler) Logout(c *gin.Context) {
	if claims := middleware.SessionClaims(c); claims != nil && claims.ExpiresAt != nil {
		h.Svc.Logout(c.Request.Context(), claims.ID, claims.ExpiresAt.Time)
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, "Sesión cerrada", nil)
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"user": toUserView(u)})
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	var req updateAvatarRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateAvatar(c.Request.Context(), middleware.UserID(c), req.Avatar.toEntity())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Avatar actualizado", response.Payload{"user": toUserView(u)})
}

func (h *UserHandler) All(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"users": toUserViews(users), "count": len(users)})
}

func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.Svc.Search(c.Request.Context(), c.Query("q"), queryInt(c, "size", 10))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"users": toUserSummaries(users), "count": len(users)})
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.Payload{"user": toUserView(u)})
}

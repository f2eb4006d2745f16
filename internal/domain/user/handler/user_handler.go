package handler

import (
	"errors"
	"net/http"

	"social_feed/internal/domain/user/service"
	"social_feed/internal/pkg/middleware"
	"social_feed/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// CredentialsInput 注册/登录输入
type CredentialsInput struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register 注册
// @Summary 注册新用户
// @Tags User
// @Accept json
// @Produce json
// @Param input body CredentialsInput true "用户名和密码"
// @Success 201 {object} response.Response
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	token, err := h.service.Register(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Error(c, http.StatusBadRequest, response.ErrUserExists, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Created(c, gin.H{"token": token})
}

// Login 登录
// @Summary 登录
// @Tags User
// @Accept json
// @Produce json
// @Param input body CredentialsInput true "用户名和密码"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	token, err := h.service.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"token": token})
}

// Me 当前用户信息
// @Summary 当前用户信息
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthorized, "Authentication required")
		return
	}

	user, err := h.service.GetUser(principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, user)
}

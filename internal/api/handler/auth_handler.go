package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/dto"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/service"
	"github.com/sumikko-Charlotte/AI-Career-Helper/pkg/response"
)

// AuthHandler 注册/登录 HTTP 处理器
type AuthHandler struct {
	userSvc service.UserService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(userSvc service.UserService) *AuthHandler {
	return &AuthHandler{userSvc: userSvc}
}

// Register 用户注册
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "用户名和密码为必填")
		return
	}

	user, err := h.userSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			response.Fail(c, "用户名和密码为必填")
		case errors.Is(err, service.ErrUsernameTaken):
			response.Fail(c, "用户名已存在")
		default:
			response.Fail(c, "注册失败")
		}
		return
	}

	response.OK(c, user, "注册成功")
}

// Login 用户登录
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "用户名与密码必填")
		return
	}

	user, err := h.userSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			response.Fail(c, "用户名与密码必填")
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, "用户名或密码错误")
		default:
			response.Fail(c, "登录失败")
		}
		return
	}

	response.OK(c, user, "登录成功")
}

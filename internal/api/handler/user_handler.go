package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/dto"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/model"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/service"
	"github.com/sumikko-Charlotte/AI-Career-Helper/pkg/response"
)

// UserHandler 用户管理 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 获取全部用户
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, "获取用户列表失败")
		return
	}

	response.OK(c, users, "获取用户列表成功")
}

// UpdateStatus 更新用户状态
// POST /api/user/updateStatus
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "用户名必填")
		return
	}

	user, err := h.userSvc.UpdateStatus(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			response.Fail(c, "用户名必填")
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, "未找到用户")
		default:
			response.Fail(c, "更新失败")
		}
		return
	}

	response.OK(c, user, "用户状态已更新")
}

// DeleteUser 删除用户
// POST /api/user/delete
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var req dto.UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "用户名必填")
		return
	}

	if err := h.userSvc.DeleteUser(c.Request.Context(), req.Username); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			response.Fail(c, "用户名必填")
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, "未找到该用户")
		default:
			response.Fail(c, "删除失败")
		}
		return
	}

	response.OK(c, gin.H{}, "删除成功")
}

// AddTask 任务计数加一
// POST /api/user/addTask
func (h *UserHandler) AddTask(c *gin.Context) {
	h.bumpCounter(c, h.userSvc.AddTask, "任务数已更新")
}

// AddResume 简历计数加一
// POST /api/user/addResume
func (h *UserHandler) AddResume(c *gin.Context) {
	h.bumpCounter(c, h.userSvc.AddResume, "简历数已更新")
}

func (h *UserHandler) bumpCounter(
	c *gin.Context,
	bump func(ctx context.Context, username string) (*model.User, error),
	okMsg string,
) {
	var req dto.UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "用户名必填")
		return
	}

	user, err := bump(c.Request.Context(), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			response.Fail(c, "用户名必填")
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, "未找到用户")
		default:
			response.Fail(c, "更新失败")
		}
		return
	}

	response.OK(c, user, okMsg)
}

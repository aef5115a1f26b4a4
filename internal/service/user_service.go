package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/dto"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/model"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/store"
)

// ── 用户模块业务错误 ──

var (
	ErrInvalidInput       = errors.New("必填参数缺失")
	ErrUsernameTaken      = errors.New("用户名已存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserNotFound       = errors.New("未找到用户")
)

// UserService 用户业务接口
type UserService interface {
	// Register 注册新用户，计数归零、状态 normal、register_time 取当前时间
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	// Login 校验凭据并刷新 last_login
	Login(ctx context.Context, req *dto.LoginRequest) (*model.User, error)
	// ListAll 返回全部用户
	ListAll(ctx context.Context) ([]*model.User, error)
	// UpdateStatus 覆写状态；status 为空时保持现状
	UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*model.User, error)
	// DeleteUser 删除用户
	DeleteUser(ctx context.Context, username string) error
	// AddTask createTaskNum 加一
	AddTask(ctx context.Context, username string) (*model.User, error)
	// AddResume uploadedResumeNum 加一
	AddResume(ctx context.Context, username string) (*model.User, error)
}

type userService struct {
	store  store.UserStore
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService 创建 UserService 实例
func NewUserService(st store.UserStore, logger *zap.Logger) UserService {
	return &userService{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

func (s *userService) timestamp() string {
	return s.now().UTC().Format(model.TimeLayout)
}

// ────────────────────── Register ──────────────────────

func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidInput
	}

	user := &model.User{
		Username:     req.Username,
		Password:     req.Password,
		Grade:        req.Grade,
		TargetRole:   req.TargetRole,
		Status:       model.StatusNormal,
		RegisterTime: s.timestamp(),
	}

	created, err := s.store.InsertIfAbsent(user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("注册用户失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	return created, nil
}

// ────────────────────── Login ──────────────────────

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidInput
	}

	if _, ok := s.store.FindByCredentials(req.Username, req.Password); !ok {
		return nil, ErrInvalidCredentials
	}

	loginTime := s.timestamp()
	updated, err := s.store.Update(req.Username, func(u *model.User) {
		u.LastLogin = loginTime
	})
	if err != nil {
		// 凭据校验与更新之间用户被删除时按凭据错误处理
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("更新登录时间失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	return updated, nil
}

// ────────────────────── ListAll ──────────────────────

func (s *userService) ListAll(ctx context.Context) ([]*model.User, error) {
	return s.store.ListAll(), nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *userService) UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*model.User, error) {
	if req.Username == "" {
		return nil, ErrInvalidInput
	}

	updated, err := s.store.Update(req.Username, func(u *model.User) {
		if req.Status != "" {
			u.Status = req.Status
		}
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("更新用户状态失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	return updated, nil
}

// ────────────────────── DeleteUser ──────────────────────

func (s *userService) DeleteUser(ctx context.Context, username string) error {
	if username == "" {
		return ErrInvalidInput
	}

	if err := s.store.Delete(username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("删除用户失败", zap.String("username", username), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 计数递增 ──────────────────────

func (s *userService) AddTask(ctx context.Context, username string) (*model.User, error) {
	return s.increment(username, func(u *model.User) { u.CreateTaskNum++ })
}

func (s *userService) AddResume(ctx context.Context, username string) (*model.User, error) {
	return s.increment(username, func(u *model.User) { u.UploadedResumeNum++ })
}

func (s *userService) increment(username string, bump func(*model.User)) (*model.User, error) {
	if username == "" {
		return nil, ErrInvalidInput
	}

	updated, err := s.store.Update(username, bump)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("更新计数失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

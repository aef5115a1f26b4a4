package service

import (
	"go.uber.org/zap"

	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/store"
)

// Service 所有 Service 的聚合入口
type Service struct {
	User   UserService
	Export ExportService
}

// NewService 创建 Service 聚合
func NewService(st store.UserStore, logger *zap.Logger) *Service {
	return &Service{
		User:   NewUserService(st, logger),
		Export: NewExportService(st, logger),
	}
}

package handler

import "github.com/sumikko-Charlotte/AI-Career-Helper/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(svc.User),
		User:   NewUserHandler(svc.User),
		Export: NewExportHandler(svc.Export),
	}
}

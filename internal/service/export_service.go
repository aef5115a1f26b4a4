package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/store"
)

// ExportService 导出业务接口
//
// 将用户名册导出为 Excel (.xlsx)，以 bytes.Buffer 返回，
// 由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportUsers 导出全部用户；返回文件内容与建议文件名
	ExportUsers(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	store  store.UserStore
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(st store.UserStore, logger *zap.Logger) ExportService {
	return &exportService{store: st, logger: logger}
}

// exportHeader 导出表头（密码列不导出）
var exportHeader = []string{
	"用户名", "年级", "目标岗位", "任务数", "简历数", "状态", "注册时间", "最近登录",
}

func (s *exportService) ExportUsers(ctx context.Context) (*bytes.Buffer, string, error) {
	users := s.store.ListAll()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "用户列表"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			s.logger.Error("写入导出表头失败", zap.Error(err))
			return nil, "", err
		}
	}

	for i, u := range users {
		row := []interface{}{
			u.Username,
			u.Grade,
			u.TargetRole,
			strconv.Itoa(u.CreateTaskNum),
			strconv.Itoa(u.UploadedResumeNum),
			u.Status,
			u.RegisterTime,
			u.LastLogin,
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			s.logger.Error("写入导出数据行失败", zap.Error(err))
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 文件失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("用户列表_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

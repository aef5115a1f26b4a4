package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/dto"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/store"
)

func TestExportService_ExportUsers(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "users.csv"), false, zap.NewNop())
	if err != nil {
		t.Fatalf("打开测试存储失败: %v", err)
	}
	userSvc := NewUserService(st, zap.NewNop())
	exportSvc := NewExportService(st, zap.NewNop())

	if _, err := userSvc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice", Password: "alice123", Grade: "大三", TargetRole: "前端",
	}); err != nil {
		t.Fatal(err)
	}

	buf, filename, err := exportSvc.ExportUsers(context.Background())
	if err != nil {
		t.Fatalf("ExportUsers 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("用户列表")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望表头 + 1 行数据，实际 %d 行", len(rows))
	}
	if rows[1][0] != "alice" {
		t.Errorf("期望首列为 alice，实际 %s", rows[1][0])
	}
	// 密码不应出现在导出内容中
	for _, row := range rows {
		for _, cell := range row {
			if cell == "alice123" {
				t.Error("导出内容不应包含密码")
			}
		}
	}
}

func TestExportService_EmptyRegistry(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "users.csv"), false, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	exportSvc := NewExportService(st, zap.NewNop())

	buf, _, err := exportSvc.ExportUsers(context.Background())
	if err != nil {
		t.Fatalf("空名册导出应成功: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("用户列表")
	if len(rows) != 1 {
		t.Errorf("空名册应只有表头行，实际 %d 行", len(rows))
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/dto"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/model"
	"github.com/sumikko-Charlotte/AI-Career-Helper/internal/service"
	"github.com/sumikko-Charlotte/AI-Career-Helper/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

type mockUserService struct {
	registerResult *model.User
	registerErr    error
	loginResult    *model.User
	loginErr       error
	listResult     []*model.User
	listErr        error
	statusResult   *model.User
	statusErr      error
	deleteErr      error
	addTaskResult  *model.User
	addTaskErr     error
	addResResult   *model.User
	addResErr      error
}

func (m *mockUserService) Register(_ context.Context, _ *dto.RegisterRequest) (*model.User, error) {
	return m.registerResult, m.registerErr
}
func (m *mockUserService) Login(_ context.Context, _ *dto.LoginRequest) (*model.User, error) {
	return m.loginResult, m.loginErr
}
func (m *mockUserService) ListAll(_ context.Context) ([]*model.User, error) {
	return m.listResult, m.listErr
}
func (m *mockUserService) UpdateStatus(_ context.Context, _ *dto.UpdateStatusRequest) (*model.User, error) {
	return m.statusResult, m.statusErr
}
func (m *mockUserService) DeleteUser(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockUserService) AddTask(_ context.Context, _ string) (*model.User, error) {
	return m.addTaskResult, m.addTaskErr
}
func (m *mockUserService) AddResume(_ context.Context, _ string) (*model.User, error) {
	return m.addResResult, m.addResErr
}

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportUsers(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	return resp
}

func doPost(t *testing.T, path string, h gin.HandlerFunc, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST(path, h)
	r.ServeHTTP(w, req)
	return w
}

func sampleAlice() *model.User {
	return &model.User{
		Username:     "alice",
		Password:     "alice123",
		Grade:        "大三",
		TargetRole:   "前端",
		Status:       model.StatusNormal,
		RegisterTime: "2025-01-01 10:00:00",
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Register_Success(t *testing.T) {
	mock := &mockUserService{registerResult: sampleAlice()}
	h := NewAuthHandler(mock)

	w := doPost(t, "/api/register", h.Register, jsonBody(dto.RegisterRequest{
		Username: "alice",
		Password: "alice123",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("HTTP 状态应恒为 200，实际 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != response.CodeOK {
		t.Errorf("期望 code=200，实际 %d", resp.Code)
	}
	if resp.Msg != "注册成功" {
		t.Errorf("期望 msg=注册成功，实际 %s", resp.Msg)
	}
	if resp.Data == nil {
		t.Error("成功响应应携带用户记录")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	mock := &mockUserService{}
	h := NewAuthHandler(mock)

	w := doPost(t, "/api/register", h.Register, jsonBody(map[string]string{
		"username": "alice",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("缺参也应返回 HTTP 200，实际 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != response.CodeFail {
		t.Errorf("期望 code=400，实际 %d", resp.Code)
	}
	if resp.Msg != "用户名和密码为必填" {
		t.Errorf("失败消息不符: %s", resp.Msg)
	}
	if resp.Data != nil {
		t.Error("失败响应 data 应为 null")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	mock := &mockUserService{registerErr: service.ErrUsernameTaken}
	h := NewAuthHandler(mock)

	w := doPost(t, "/api/register", h.Register, jsonBody(dto.RegisterRequest{
		Username: "alice",
		Password: "alice123",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeFail || resp.Msg != "用户名已存在" {
		t.Errorf("期望重名失败封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestAuthHandler_Register_StoreFailure(t *testing.T) {
	mock := &mockUserService{registerErr: errors.New("disk full")}
	h := NewAuthHandler(mock)

	w := doPost(t, "/api/register", h.Register, jsonBody(dto.RegisterRequest{
		Username: "alice",
		Password: "alice123",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("存储故障也应返回 HTTP 200，实际 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != response.CodeFail || resp.Msg != "注册失败" {
		t.Errorf("期望通用失败封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	alice := sampleAlice()
	alice.LastLogin = "2025-02-01 09:15:00"
	mock := &mockUserService{loginResult: alice}
	h := NewAuthHandler(mock)

	w := doPost(t, "/api/login", h.Login, jsonBody(dto.LoginRequest{
		Username: "alice",
		Password: "alice123",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeOK || resp.Msg != "登录成功" {
		t.Errorf("期望登录成功，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockUserService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := doPost(t, "/api/login", h.Login, jsonBody(dto.LoginRequest{
		Username: "alice",
		Password: "wrong",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeFail || resp.Msg != "用户名或密码错误" {
		t.Errorf("期望凭据错误封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_ListUsers(t *testing.T) {
	mock := &mockUserService{listResult: []*model.User{sampleAlice()}}
	h := NewUserHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users", nil)
	r := gin.New()
	r.GET("/api/users", h.ListUsers)
	r.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	if resp.Code != response.CodeOK || resp.Msg != "获取用户列表成功" {
		t.Errorf("期望列表成功封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestUserHandler_ListUsers_Empty(t *testing.T) {
	mock := &mockUserService{listResult: []*model.User{}}
	h := NewUserHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users", nil)
	r := gin.New()
	r.GET("/api/users", h.ListUsers)
	r.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	if resp.Code != response.CodeOK {
		t.Errorf("空列表也是成功，实际 code=%d", resp.Code)
	}
}

func TestUserHandler_UpdateStatus_Success(t *testing.T) {
	updated := sampleAlice()
	updated.Status = "banned"
	mock := &mockUserService{statusResult: updated}
	h := NewUserHandler(mock)

	w := doPost(t, "/api/user/updateStatus", h.UpdateStatus, jsonBody(dto.UpdateStatusRequest{
		Username: "alice",
		Status:   "banned",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeOK || resp.Msg != "用户状态已更新" {
		t.Errorf("期望更新成功封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestUserHandler_UpdateStatus_NotFound(t *testing.T) {
	mock := &mockUserService{statusErr: service.ErrUserNotFound}
	h := NewUserHandler(mock)

	w := doPost(t, "/api/user/updateStatus", h.UpdateStatus, jsonBody(dto.UpdateStatusRequest{
		Username: "ghost",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeFail || resp.Msg != "未找到用户" {
		t.Errorf("期望未找到封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestUserHandler_UpdateStatus_MissingUsername(t *testing.T) {
	mock := &mockUserService{}
	h := NewUserHandler(mock)

	w := doPost(t, "/api/user/updateStatus", h.UpdateStatus, jsonBody(map[string]string{
		"status": "banned",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeFail || resp.Msg != "用户名必填" {
		t.Errorf("期望必填失败封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestUserHandler_DeleteUser_Success(t *testing.T) {
	mock := &mockUserService{}
	h := NewUserHandler(mock)

	w := doPost(t, "/api/user/delete", h.DeleteUser, jsonBody(dto.UsernameRequest{
		Username: "bob",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeOK || resp.Msg != "删除成功" {
		t.Errorf("期望删除成功封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
	// data 应为空对象而非 null
	if _, ok := resp.Data.(map[string]interface{}); !ok {
		t.Errorf("删除成功 data 应为空对象，实际 %T", resp.Data)
	}
}

func TestUserHandler_DeleteUser_NotFound(t *testing.T) {
	mock := &mockUserService{deleteErr: service.ErrUserNotFound}
	h := NewUserHandler(mock)

	w := doPost(t, "/api/user/delete", h.DeleteUser, jsonBody(dto.UsernameRequest{
		Username: "ghost",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeFail || resp.Msg != "未找到该用户" {
		t.Errorf("期望未找到封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestUserHandler_AddTask_Success(t *testing.T) {
	updated := sampleAlice()
	updated.CreateTaskNum = 1
	mock := &mockUserService{addTaskResult: updated}
	h := NewUserHandler(mock)

	w := doPost(t, "/api/user/addTask", h.AddTask, jsonBody(dto.UsernameRequest{
		Username: "alice",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeOK || resp.Msg != "任务数已更新" {
		t.Errorf("期望计数成功封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestUserHandler_AddResume_Success(t *testing.T) {
	updated := sampleAlice()
	updated.UploadedResumeNum = 1
	mock := &mockUserService{addResResult: updated}
	h := NewUserHandler(mock)

	w := doPost(t, "/api/user/addResume", h.AddResume, jsonBody(dto.UsernameRequest{
		Username: "alice",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeOK || resp.Msg != "简历数已更新" {
		t.Errorf("期望计数成功封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

func TestUserHandler_AddTask_NotFound(t *testing.T) {
	mock := &mockUserService{addTaskErr: service.ErrUserNotFound}
	h := NewUserHandler(mock)

	w := doPost(t, "/api/user/addTask", h.AddTask, jsonBody(dto.UsernameRequest{
		Username: "ghost",
	}))

	resp := parseResponse(t, w)
	if resp.Code != response.CodeFail || resp.Msg != "未找到用户" {
		t.Errorf("期望未找到封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "用户列表_20250314.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users/export", nil)
	r := gin.New()
	r.GET("/api/users/export", h.ExportUsers)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type 不符: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("应设置 Content-Disposition 头")
	}
}

func TestExportHandler_Failure(t *testing.T) {
	mock := &mockExportService{err: errors.New("boom")}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users/export", nil)
	r := gin.New()
	r.GET("/api/users/export", h.ExportUsers)
	r.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	if resp.Code != response.CodeFail || resp.Msg != "导出失败" {
		t.Errorf("期望导出失败封包，实际 code=%d msg=%s", resp.Code, resp.Msg)
	}
}

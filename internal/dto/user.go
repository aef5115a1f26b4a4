package dto

// ── 用户模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Grade      string `json:"grade"`
	TargetRole string `json:"target_role"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateStatusRequest 更新用户状态请求
// Status 为空时保持现状（幂等空操作）
type UpdateStatusRequest struct {
	Username string `json:"username" binding:"required"`
	Status   string `json:"status"`
}

// UsernameRequest 仅携带用户名的请求（删除、计数递增）
type UsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

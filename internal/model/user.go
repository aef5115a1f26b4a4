package model

// User 用户记录，对应 users.csv 的一行
// 字段顺序与 CSV 表头顺序一致，username 为唯一键（区分大小写，创建后不可变）
type User struct {
	Username          string `csv:"username"          json:"username"`
	Password          string `csv:"password"          json:"password"`
	Grade             string `csv:"grade"             json:"grade"`
	TargetRole        string `csv:"target_role"       json:"target_role"`
	CreateTaskNum     int    `csv:"createTaskNum"     json:"createTaskNum"`
	UploadedResumeNum int    `csv:"uploadedResumeNum" json:"uploadedResumeNum"`
	Status            string `csv:"status"            json:"status"`
	RegisterTime      string `csv:"register_time"     json:"register_time"`
	LastLogin         string `csv:"last_login"        json:"last_login"`
}

// StatusNormal 新注册用户的默认状态
const StatusNormal = "normal"

// TimeLayout 持久化时间戳格式（与历史数据保持一致）
const TimeLayout = "2006-01-02 15:04:05"

// Clone 返回记录的独立副本
func (u *User) Clone() *User {
	c := *u
	return &c
}

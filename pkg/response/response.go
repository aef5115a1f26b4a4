package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构（与前端约定一致）
// 成功失败只通过 Code 区分，HTTP 传输层状态码恒为 200
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

const (
	// CodeOK 业务成功
	CodeOK = 200
	// CodeFail 业务失败
	CodeFail = 400
)

// OK 成功响应
func OK(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusOK, Response{
		Code: CodeOK,
		Msg:  msg,
		Data: data,
	})
}

// Fail 失败响应（data 为 null）
func Fail(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Response{
		Code: CodeFail,
		Msg:  msg,
		Data: nil,
	})
}

// TooManyRequests 限流响应（唯一偏离恒 200 约定的场景，发生在业务层之前）
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, Response{
		Code: CodeFail,
		Msg:  "请求过于频繁，请稍后再试",
		Data: nil,
	})
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sumikko-Charlotte/AI-Career-Helper/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes: 允许的最大请求体字节数（原服务为 1MB）
// 超限发生在进入业务层之前，按传输层语义返回 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, response.Response{
				Code: response.CodeFail,
				Msg:  "请求体过大",
			})
			return
		}

		// Content-Length 不可信（分块传输时为 -1），读取侧再兜底一层
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}

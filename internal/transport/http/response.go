package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/backend/internal/domain"
)

// 对外提示信息
const (
	MsgSubmissionReceived = "留言已收到，感谢您的来信！"
	MsgValidationFailed   = "提交内容校验未通过"
	MsgInternalError      = "服务器内部错误，请稍后重试"
	MsgNotFound           = "页面不存在"
)

// Accepted 提交成功响应（200）
func Accepted(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{
		"message": msg,
	})
}

// ValidationFailed 校验失败响应（400），携带逐字段错误列表
func ValidationFailed(c *gin.Context, msg string, errs []domain.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": msg,
		"errors":  errs,
	})
}

// InternalError 服务器内部错误（500）
//
// 对外只返回固定提示，不泄露内部错误细节；细节进服务端日志。
func InternalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": msg,
	})
}

// NotFound 资源不存在错误（404）
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{
		"message": msg,
	})
}

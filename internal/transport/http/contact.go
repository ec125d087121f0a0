package httptransport

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/backend/internal/domain"
	"portfolio/backend/internal/service"
)

// ContactHandler 联系表单处理器
type ContactHandler struct {
	submissions *service.SubmissionService
	logger      *zap.Logger
}

// NewContactHandler 创建联系表单处理器
func NewContactHandler(submissions *service.SubmissionService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		submissions: submissions,
		logger:      logger,
	}
}

// CreateSubmission 处理联系表单提交
//
// 请求体解析采取宽容策略：格式错误的 JSON 不单独返回解析错误，
// 而是按空输入走校验流程，统一以字段错误列表响应。访客收到的
// 永远是三种形状之一：200 成功、400 校验失败、500 内部错误。
func (h *ContactHandler) CreateSubmission(c *gin.Context) {
	var input domain.SubmissionInput

	body, err := io.ReadAll(c.Request.Body)
	if err == nil {
		// 解析失败时 input 保持零值，交给校验层产出字段错误
		_ = json.Unmarshal(body, &input)
	}

	submission, fieldErrs, err := h.submissions.Submit(input)
	if err != nil {
		h.logger.Error("failed to handle contact submission", zap.Error(err))
		InternalError(c, MsgInternalError)
		return
	}

	if len(fieldErrs) > 0 {
		ValidationFailed(c, MsgValidationFailed, fieldErrs)
		return
	}

	h.logger.Debug("contact submission accepted",
		zap.String("submission_id", submission.ID),
	)
	Accepted(c, MsgSubmissionReceived)
}

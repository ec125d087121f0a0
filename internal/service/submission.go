package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio/backend/internal/domain"
	"portfolio/backend/internal/monitoring"
	"portfolio/backend/internal/notify"
	"portfolio/backend/internal/storage"
)

// SubmissionService 封装联系表单的业务流程：校验、入库、通知。
type SubmissionService struct {
	repo     storage.SubmissionRepository
	notifier notify.Notifier
	log      *zap.Logger
	metrics  *monitoring.Metrics // 可选
}

// NewSubmissionService 创建留言业务服务。
func NewSubmissionService(repo storage.SubmissionRepository, notifier notify.Notifier, log *zap.Logger) *SubmissionService {
	return &SubmissionService{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// SetMetrics 设置监控指标（可选）
func (s *SubmissionService) SetMetrics(metrics *monitoring.Metrics) {
	s.metrics = metrics
}

// Submit 处理一次联系表单提交。
//
// 流程：校验 → 入库 → 异步通知。校验失败时返回字段错误列表，
// 不产生任何写入；入库失败时返回错误；入库成功后通知在独立
// goroutine 中发送，其结果不影响返回值——响应在通知完成前即可
// 返回，通知失败只出现在服务端日志里。
func (s *SubmissionService) Submit(input domain.SubmissionInput) (*domain.Submission, []domain.FieldError, error) {
	normalized, fieldErrs := domain.ValidateSubmission(input)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	submission := &domain.Submission{
		ID:        uuid.NewString(),
		Name:      normalized.Name,
		Email:     normalized.Email,
		Message:   normalized.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.SaveSubmission(submission); err != nil {
		return nil, nil, fmt.Errorf("failed to store submission: %w", err)
	}

	s.log.Info("submission stored",
		zap.String("submission_id", submission.ID),
		zap.String("email", submission.Email),
	)

	// 通知不阻塞响应，也没有取消机制——发出即忘
	go s.notifyAsync(submission)

	return submission, nil, nil
}

// notifyAsync 在独立 goroutine 中发送通知。
//
// 任何错误（含 panic）只汇入日志，绝不回流到响应路径：
// 丢一封通知邮件可以接受（记录还在），丢记录不可以。
func (s *SubmissionService) notifyAsync(submission *domain.Submission) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic in notification dispatch",
				zap.String("submission_id", submission.ID),
				zap.Any("error", r),
			)
		}
	}()

	if err := s.notifier.NotifySubmission(submission); err != nil {
		s.log.Warn("submission notification failed",
			zap.String("submission_id", submission.ID),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordNotificationFailed()
		}
		return
	}

	if s.metrics != nil {
		s.metrics.RecordNotificationSent()
	}
}

package storage

import (
	"errors"

	"portfolio/backend/internal/domain"
)

var (
	// ErrUnavailable 主存储后端不可达错误
	ErrUnavailable = errors.New("primary store unavailable")
)

// SubmissionRepository 定义留言数据的存取操作。
//
// 每次调用 SaveSubmission 恰好持久化一条记录；本层不提供幂等保证，
// 相同内容的重复调用会产生重复记录。
type SubmissionRepository interface {
	SaveSubmission(submission *domain.Submission) error

	// 工具方法
	Close() error
	Health() error
}

package hybrid

import (
	"fmt"

	"go.uber.org/zap"

	"portfolio/backend/internal/domain"
	"portfolio/backend/internal/storage"
)

// Store 组合主数据库存储与文件回退存储。
//
// 每次写入前重新询问主存储的健康状态（不缓存结果）：
//   - 主存储在线：写主存储，写入失败向上传播（主存储损坏必须暴露）
//   - 主存储离线：写文件回退存储；此时回退写入失败仅记录日志，
//     不影响请求结果（回退是尽力而为，记录已尽可能保全）
//
// 当进程未配置数据库时，不要使用本类型——直接使用 jsonl.Store，
// 使文件写入失败正常向上传播（文件此时是唯一主存储）。
type Store struct {
	primary  storage.SubmissionRepository
	fallback storage.SubmissionRepository
	log      *zap.Logger
}

// NewStore 创建混合存储
func NewStore(primary, fallback storage.SubmissionRepository, log *zap.Logger) *Store {
	return &Store{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

// SaveSubmission 按当前主存储可用性选择后端并写入一条记录。
func (s *Store) SaveSubmission(submission *domain.Submission) error {
	if err := s.primary.Health(); err != nil {
		// 主存储不可达：本次请求回退到文件存储
		s.log.Warn("primary store unavailable, falling back to file store",
			zap.Error(err),
		)

		if ferr := s.fallback.SaveSubmission(submission); ferr != nil {
			s.log.Warn("fallback store write failed",
				zap.String("submission_id", submission.ID),
				zap.Error(ferr),
			)
		}
		return nil
	}

	if err := s.primary.SaveSubmission(submission); err != nil {
		return fmt.Errorf("primary store write failed: %w", err)
	}
	return nil
}

// Close 关闭两个后端
func (s *Store) Close() error {
	ferr := s.fallback.Close()
	if err := s.primary.Close(); err != nil {
		return err
	}
	return ferr
}

// Health 报告存储整体健康状态。
//
// 主存储离线期间写入仍会落到回退存储，因此只要任一后端
// 可写，整体就视为健康。
func (s *Store) Health() error {
	if err := s.primary.Health(); err == nil {
		return nil
	}
	return s.fallback.Health()
}

package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"portfolio/backend/internal/domain"
)

// record 文件中单行记录的序列化结构（字段名自描述，便于人工查看和解析回读）
type record struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store 追加式 JSON Lines 文件存储实现。
//
// 每条留言序列化为一行 JSON 并以单次追加写入文件末尾；
// 文件只追加，本系统从不重写或压缩它。记录的原子性依赖
// 操作系统对 O_APPEND 模式下有界写入不交错的保证，不再加锁。
type Store struct {
	path string
}

// NewStore 创建 JSON Lines 文件存储实例
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	// 确保父目录存在
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	// 验证路径可追加写入
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	f.Close()

	return &Store{path: path}, nil
}

// Path 返回存储文件路径
func (s *Store) Path() string {
	return s.path
}

// SaveSubmission 将一条留言追加写入文件。
//
// 整条记录（含换行符）通过一次 Write 调用写入，
// 并发写入方不会截断或交错破坏彼此的记录。
func (s *Store) SaveSubmission(submission *domain.Submission) error {
	line, err := json.Marshal(record{
		Name:      submission.Name,
		Email:     submission.Email,
		Message:   submission.Message,
		CreatedAt: submission.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open store file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("failed to append submission: %w", err)
	}

	return nil
}

// ReadAll 解析文件中的全部记录（诊断和测试用途，不构成查询 API）
func (s *Store) ReadAll() ([]domain.Submission, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	defer f.Close()

	var submissions []domain.Submission
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}

		submissions = append(submissions, domain.Submission{
			Name:      rec.Name,
			Email:     rec.Email,
			Message:   rec.Message,
			CreatedAt: rec.CreatedAt,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	return submissions, nil
}

// Close 关闭存储（文件按次打开，无需清理）
func (s *Store) Close() error {
	return nil
}

// Health 检查文件是否仍可追加写入
func (s *Store) Health() error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("store file not writable: %w", err)
	}
	return f.Close()
}

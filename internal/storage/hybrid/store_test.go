package hybrid

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/backend/internal/domain"
)

// stubStore 可编程的存储桩
type stubStore struct {
	healthErr error
	saveErr   error
	saved     []*domain.Submission
}

func (s *stubStore) SaveSubmission(submission *domain.Submission) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, submission)
	return nil
}

func (s *stubStore) Close() error  { return nil }
func (s *stubStore) Health() error { return s.healthErr }

func testSubmission() *domain.Submission {
	return &domain.Submission{
		ID:        "test-submission-001",
		Name:      "Alex",
		Email:     "alex@example.com",
		Message:   "Hello there!",
		CreatedAt: time.Now().UTC(),
	}
}

// TestSaveSubmission 测试混合存储的后端选择策略
func TestSaveSubmission(t *testing.T) {
	t.Run("primary live writes primary only", func(t *testing.T) {
		primary := &stubStore{}
		fallback := &stubStore{}
		store := NewStore(primary, fallback, zap.NewNop())

		require.NoError(t, store.SaveSubmission(testSubmission()))

		assert.Len(t, primary.saved, 1)
		assert.Empty(t, fallback.saved)
	})

	t.Run("primary down falls back to file store", func(t *testing.T) {
		primary := &stubStore{healthErr: errors.New("connection refused")}
		fallback := &stubStore{}
		store := NewStore(primary, fallback, zap.NewNop())

		require.NoError(t, store.SaveSubmission(testSubmission()))

		assert.Empty(t, primary.saved)
		assert.Len(t, fallback.saved, 1)
	})

	t.Run("primary write failure propagates", func(t *testing.T) {
		primary := &stubStore{saveErr: errors.New("insert failed")}
		fallback := &stubStore{}
		store := NewStore(primary, fallback, zap.NewNop())

		err := store.SaveSubmission(testSubmission())
		require.Error(t, err)
		assert.Empty(t, fallback.saved)
	})

	t.Run("fallback write failure absorbed when subordinate", func(t *testing.T) {
		primary := &stubStore{healthErr: errors.New("connection refused")}
		fallback := &stubStore{saveErr: errors.New("disk full")}
		store := NewStore(primary, fallback, zap.NewNop())

		// 回退存储只是尽力而为，其失败不得影响请求结果
		assert.NoError(t, store.SaveSubmission(testSubmission()))
	})

	t.Run("healthy while either backend writable", func(t *testing.T) {
		primary := &stubStore{healthErr: errors.New("connection refused")}
		fallback := &stubStore{}
		store := NewStore(primary, fallback, zap.NewNop())

		assert.NoError(t, store.Health())

		fallback.healthErr = errors.New("disk full")
		assert.Error(t, store.Health())
	})

	t.Run("availability rechecked on every call", func(t *testing.T) {
		primary := &stubStore{healthErr: errors.New("connection refused")}
		fallback := &stubStore{}
		store := NewStore(primary, fallback, zap.NewNop())

		require.NoError(t, store.SaveSubmission(testSubmission()))
		assert.Len(t, fallback.saved, 1)

		// 数据库恢复后，后续请求自动回到主存储
		primary.healthErr = nil
		require.NoError(t, store.SaveSubmission(testSubmission()))
		assert.Len(t, primary.saved, 1)
		assert.Len(t, fallback.saved, 1)
	})
}

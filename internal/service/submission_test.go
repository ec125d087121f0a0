package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/backend/internal/domain"
)

// mockRepo 模拟存储接口
type mockRepo struct {
	mu      sync.Mutex
	saveErr error
	saved   []*domain.Submission
}

func (m *mockRepo) SaveSubmission(submission *domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, submission)
	return nil
}

func (m *mockRepo) Close() error  { return nil }
func (m *mockRepo) Health() error { return nil }

func (m *mockRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

// mockNotifier 模拟通知器，通过 channel 同步异步调用
type mockNotifier struct {
	err    error
	called chan *domain.Submission
}

func newMockNotifier(err error) *mockNotifier {
	return &mockNotifier{err: err, called: make(chan *domain.Submission, 1)}
}

func (m *mockNotifier) NotifySubmission(submission *domain.Submission) error {
	m.called <- submission
	return m.err
}

func validInput() domain.SubmissionInput {
	return domain.SubmissionInput{
		Name:    "Alex",
		Email:   "alex@example.com",
		Message: "Hello there!",
	}
}

// TestSubmit 测试留言提交流程
func TestSubmit(t *testing.T) {
	t.Run("valid input stored with id and timestamp", func(t *testing.T) {
		repo := &mockRepo{}
		notifier := newMockNotifier(nil)
		svc := NewSubmissionService(repo, notifier, zap.NewNop())

		before := time.Now().UTC()
		submission, fieldErrs, err := svc.Submit(validInput())
		require.NoError(t, err)
		assert.Empty(t, fieldErrs)
		require.NotNil(t, submission)

		assert.NotEmpty(t, submission.ID)
		assert.False(t, submission.CreatedAt.Before(before))
		assert.Equal(t, 1, repo.count())
	})

	t.Run("invalid input performs zero writes", func(t *testing.T) {
		repo := &mockRepo{}
		notifier := newMockNotifier(nil)
		svc := NewSubmissionService(repo, notifier, zap.NewNop())

		submission, fieldErrs, err := svc.Submit(domain.SubmissionInput{
			Name:    "",
			Email:   "bad",
			Message: "hi",
		})
		require.NoError(t, err)
		assert.Nil(t, submission)
		assert.Len(t, fieldErrs, 3)
		assert.Equal(t, 0, repo.count())

		// 校验失败时通知也不能发出
		select {
		case <-notifier.called:
			t.Fatal("notifier must not be called for rejected input")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("store failure propagates and skips notification", func(t *testing.T) {
		repo := &mockRepo{saveErr: errors.New("disk full")}
		notifier := newMockNotifier(nil)
		svc := NewSubmissionService(repo, notifier, zap.NewNop())

		_, fieldErrs, err := svc.Submit(validInput())
		require.Error(t, err)
		assert.Empty(t, fieldErrs)

		select {
		case <-notifier.called:
			t.Fatal("notifier must not be called when storage failed")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("notification dispatched after successful store", func(t *testing.T) {
		repo := &mockRepo{}
		notifier := newMockNotifier(nil)
		svc := NewSubmissionService(repo, notifier, zap.NewNop())

		submission, _, err := svc.Submit(validInput())
		require.NoError(t, err)

		select {
		case notified := <-notifier.called:
			assert.Equal(t, submission.ID, notified.ID)
		case <-time.After(time.Second):
			t.Fatal("notifier was not called")
		}
	})

	t.Run("notification failure invisible to caller", func(t *testing.T) {
		repo := &mockRepo{}
		notifier := newMockNotifier(errors.New("mail server unreachable"))
		svc := NewSubmissionService(repo, notifier, zap.NewNop())

		submission, fieldErrs, err := svc.Submit(validInput())
		require.NoError(t, err)
		assert.Empty(t, fieldErrs)
		assert.NotNil(t, submission)

		<-notifier.called
	})

	t.Run("repeated submissions produce repeated records", func(t *testing.T) {
		repo := &mockRepo{}
		notifier := &mockNotifier{called: make(chan *domain.Submission, 2)}
		svc := NewSubmissionService(repo, notifier, zap.NewNop())

		_, _, err := svc.Submit(validInput())
		require.NoError(t, err)
		_, _, err = svc.Submit(validInput())
		require.NoError(t, err)

		assert.Equal(t, 2, repo.count())
	})
}

package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"portfolio/backend/internal/domain"
)

// TestConfigEnabled 测试通知配置判定
func TestConfigEnabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{Host: "smtp.example.com"}.Enabled())
	assert.False(t, Config{To: "owner@example.com"}.Enabled())
	assert.True(t, Config{Host: "smtp.example.com", To: "owner@example.com"}.Enabled())
}

// TestCompose 测试通知邮件内容
func TestCompose(t *testing.T) {
	mailer := NewMailer(Config{
		Host:     "smtp.example.com",
		Username: "site@example.com",
		Password: "secret",
		To:       "owner@example.com",
	}, zap.NewNop())

	msg := mailer.compose(&domain.Submission{
		ID:        "test-submission-001",
		Name:      "Alex",
		Email:     "alex@example.com",
		Message:   "Hello there!",
		CreatedAt: time.Now().UTC(),
	})

	assert.Contains(t, msg, "Subject: New contact from Alex\r\n")
	assert.Contains(t, msg, "Reply-To: alex@example.com\r\n")
	assert.Contains(t, msg, "To: owner@example.com\r\n")
	assert.Contains(t, msg, "From: site@example.com\r\n")
	assert.Contains(t, msg, "Name: Alex\r\n")
	assert.Contains(t, msg, "Hello there!\r\n")
}

// TestNewMailerDefaults 测试默认端口和发件人
func TestNewMailerDefaults(t *testing.T) {
	mailer := NewMailer(Config{
		Host:     "smtp.example.com",
		Username: "site@example.com",
		To:       "owner@example.com",
	}, zap.NewNop())

	assert.Equal(t, 587, mailer.cfg.Port)
	assert.Equal(t, "site@example.com", mailer.cfg.From)
}

// TestNopNotifier 测试空通知器
func TestNopNotifier(t *testing.T) {
	assert.NoError(t, NopNotifier{}.NotifySubmission(&domain.Submission{}))
}

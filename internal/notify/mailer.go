package notify

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"portfolio/backend/internal/domain"
)

// Notifier 定义留言通知操作。
//
// 通知是尽力而为的：仅在存储成功后调用，失败只记录日志，
// 永远不影响已经判定成功的请求结果。不重试，不排队，
// 不跟踪投递确认。
type Notifier interface {
	NotifySubmission(submission *domain.Submission) error
}

// Config 邮件通知配置
type Config struct {
	Host     string // SMTP 服务器地址
	Port     int    // SMTP 服务器端口，默认 587
	Username string // SMTP 认证用户名
	Password string // SMTP 认证密码
	From     string // 发件人地址，留空时使用 Username
	To       string // 站长接收通知的固定地址
}

// Enabled 判断配置是否足以发送通知
func (c Config) Enabled() bool {
	return c.Host != "" && c.To != ""
}

// Mailer 通过 SMTP 发送留言通知邮件。
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// NewMailer 创建邮件通知器
func NewMailer(cfg Config, log *zap.Logger) *Mailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Mailer{cfg: cfg, log: log}
}

// NotifySubmission 向站长发送一封摘要邮件。
func (m *Mailer) NotifySubmission(submission *domain.Submission) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth sasl.Client
	if m.cfg.Username != "" {
		auth = sasl.NewPlainClient("", m.cfg.Username, m.cfg.Password)
	}

	msg := m.compose(submission)
	if err := gosmtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, strings.NewReader(msg)); err != nil {
		return fmt.Errorf("failed to send notification mail: %w", err)
	}

	m.log.Info("submission notification sent",
		zap.String("submission_id", submission.ID),
		zap.String("to", m.cfg.To),
	)
	return nil
}

// compose 生成通知邮件内容。
//
// Reply-To 设置为访客邮箱，站长可直接回复。
func (m *Mailer) compose(submission *domain.Submission) string {
	subject := fmt.Sprintf("New contact from %s", submission.Name)

	var b strings.Builder
	b.WriteString("From: " + m.cfg.From + "\r\n")
	b.WriteString("To: " + m.cfg.To + "\r\n")
	b.WriteString("Reply-To: " + submission.Email + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("\r\n")
	b.WriteString("Name: " + submission.Name + "\r\n")
	b.WriteString("Email: " + submission.Email + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(submission.Message + "\r\n")

	return b.String()
}

// NopNotifier 未配置 SMTP 时的空通知器。
type NopNotifier struct{}

// NotifySubmission 不做任何事
func (NopNotifier) NotifySubmission(*domain.Submission) error {
	return nil
}

package domain

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// 校验常量
const (
	// MinMessageLength 留言内容去除首尾空白后的最小长度
	MinMessageLength = 5
)

// 邮箱格式校验（local@domain.tld 形状：@ 前后各一段非空白字符，域名部分必须带点）
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 字段校验失败原因
const (
	ReasonNameRequired    = "姓名不能为空"
	ReasonEmailInvalid    = "邮箱格式无效"
	ReasonMessageTooShort = "留言内容至少需要5个字符"
)

// SubmissionInput 表示联系表单提交的原始输入。
type SubmissionInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// FieldError 描述单个字段的校验失败。
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidateSubmission 校验并规范化联系表单输入。
//
// 三个字段的错误会全部收集后一并返回，不会在首个错误处中断，
// 以便调用方在一次响应中报告所有问题。
//
// 规范化规则：
//   - name: 去除首尾空白并做 HTML 转义
//   - email: 去除首尾空白并转为小写
//   - message: 去除首尾空白并做 HTML 转义
//
// 纯函数，无任何副作用；时间戳由调用方在接受请求时赋值。
func ValidateSubmission(input SubmissionInput) (SubmissionInput, []FieldError) {
	var errs []FieldError

	name := strings.TrimSpace(input.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Reason: ReasonNameRequired})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailRegex.MatchString(email) {
		errs = append(errs, FieldError{Field: "email", Reason: ReasonEmailInvalid})
	}

	message := strings.TrimSpace(input.Message)
	if utf8.RuneCountInString(message) < MinMessageLength {
		errs = append(errs, FieldError{Field: "message", Reason: ReasonMessageTooShort})
	}

	normalized := SubmissionInput{
		Name:    html.EscapeString(name),
		Email:   email,
		Message: html.EscapeString(message),
	}

	return normalized, errs
}

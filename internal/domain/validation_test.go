package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateSubmission 测试联系表单校验
func TestValidateSubmission(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		normalized, errs := ValidateSubmission(SubmissionInput{
			Name:    "Alex",
			Email:   "alex@example.com",
			Message: "Hello there!",
		})
		assert.Empty(t, errs)
		assert.Equal(t, "Alex", normalized.Name)
		assert.Equal(t, "alex@example.com", normalized.Email)
		assert.Equal(t, "Hello there!", normalized.Message)
	})

	t.Run("all errors collected at once", func(t *testing.T) {
		_, errs := ValidateSubmission(SubmissionInput{
			Name:    "",
			Email:   "bad",
			Message: "hi",
		})
		require.Len(t, errs, 3)

		fields := make([]string, 0, len(errs))
		for _, fe := range errs {
			fields = append(fields, fe.Field)
		}
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "message")
	})

	t.Run("whitespace-only name rejected", func(t *testing.T) {
		_, errs := ValidateSubmission(SubmissionInput{
			Name:    "   ",
			Email:   "alex@example.com",
			Message: "Hello there!",
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, ReasonNameRequired, errs[0].Reason)
	})

	t.Run("email must contain dotted domain", func(t *testing.T) {
		for _, email := range []string{"", "plain", "no-at.example.com", "a@b", "a b@c.de", "a@b c.de"} {
			_, errs := ValidateSubmission(SubmissionInput{
				Name:    "Alex",
				Email:   email,
				Message: "Hello there!",
			})
			require.Len(t, errs, 1, "email %q should be rejected", email)
			assert.Equal(t, "email", errs[0].Field)
		}
	})

	t.Run("email normalized to trimmed lowercase", func(t *testing.T) {
		normalized, errs := ValidateSubmission(SubmissionInput{
			Name:    "Alex",
			Email:   "  Alex@Example.COM  ",
			Message: "Hello there!",
		})
		assert.Empty(t, errs)
		assert.Equal(t, "alex@example.com", normalized.Email)
	})

	t.Run("message length counted after trimming", func(t *testing.T) {
		_, errs := ValidateSubmission(SubmissionInput{
			Name:    "Alex",
			Email:   "alex@example.com",
			Message: "  hi  ",
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "message", errs[0].Field)

		_, errs = ValidateSubmission(SubmissionInput{
			Name:    "Alex",
			Email:   "alex@example.com",
			Message: "  hello  ",
		})
		assert.Empty(t, errs)
	})

	t.Run("html escaped before storage", func(t *testing.T) {
		normalized, errs := ValidateSubmission(SubmissionInput{
			Name:    "<b>Alex</b>",
			Email:   "alex@example.com",
			Message: "<script>alert(1)</script>",
		})
		assert.Empty(t, errs)
		assert.Equal(t, "&lt;b&gt;Alex&lt;/b&gt;", normalized.Name)
		assert.NotContains(t, normalized.Message, "<script>")
	})
}

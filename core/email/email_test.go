package email_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/core/email"
)

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	valid := email.Message{
		To:       "queue@observatory.example",
		Subject:  "file uploaded for S22B-QN001",
		BodyHTML: "<p>stored</p>",
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("bad recipient", func(t *testing.T) {
		for _, to := range []string{"", "not-an-email", "user@", "@example.com", "a b@example.com"} {
			msg := valid
			msg.To = to
			assert.ErrorIs(t, msg.Validate(), email.ErrInvalidMessage, "to %q", to)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		msg := valid
		msg.Subject = ""
		assert.ErrorIs(t, msg.Validate(), email.ErrInvalidMessage)
	})

	t.Run("missing body", func(t *testing.T) {
		msg := valid
		msg.BodyHTML = ""
		assert.ErrorIs(t, msg.Validate(), email.ErrInvalidMessage)
	})

	t.Run("reports all problems at once", func(t *testing.T) {
		err := email.Message{}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid email address")
		assert.Contains(t, err.Error(), "subject is required")
		assert.Contains(t, err.Error(), "body is required")
	})
}

func TestDevSender_Send(t *testing.T) {
	t.Parallel()

	t.Run("writes html and metadata", func(t *testing.T) {
		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.Send(context.Background(), email.Message{
			To:       "queue@observatory.example",
			Subject:  "File Uploaded: S22B-QN001",
			BodyHTML: "<p>stored at /uploads</p>",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var htmlFile string
		for _, e := range entries {
			if filepath.Ext(e.Name()) == ".html" {
				htmlFile = e.Name()
			}
		}
		require.NotEmpty(t, htmlFile)
		assert.Contains(t, htmlFile, "file_uploaded_s22b-qn001")

		body, err := os.ReadFile(filepath.Join(dir, htmlFile))
		require.NoError(t, err)
		assert.Equal(t, "<p>stored at /uploads</p>", string(body))
	})

	t.Run("rejects invalid message before touching disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "never-created")
		sender := email.NewDevSender(dir)

		err := sender.Send(context.Background(), email.Message{})
		require.ErrorIs(t, err, email.ErrInvalidMessage)

		_, err = os.Stat(dir)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestIsValidAddress(t *testing.T) {
	t.Parallel()

	assert.True(t, email.IsValidAddress("ops@observatory.example"))
	assert.True(t, email.IsValidAddress("first.last+tag@mail.example.com"))
	assert.False(t, email.IsValidAddress("nope"))
	assert.False(t, email.IsValidAddress("user@@example.com"))
}

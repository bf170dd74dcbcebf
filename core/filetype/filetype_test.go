package filetype_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/core/filetype"
)

// zipBytes builds a minimal real zip archive.
func zipBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("sheet1.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<data/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// oleBytes builds a buffer with the OLE compound-file magic that legacy
// Excel workbooks use.
func oleBytes() []byte {
	data := make([]byte, 1024)
	copy(data, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	return data
}

func TestValidate(t *testing.T) {
	t.Run("txt extension rejected with allow-list message", func(t *testing.T) {
		r := filetype.Validate("prop.txt", []byte("hello"))
		assert.False(t, r.ExtensionOK)
		assert.False(t, r.OK())
		assert.Contains(t, r.ExtensionError(), "xlsx")
		assert.Contains(t, r.ExtensionError(), "xls")
	})

	t.Run("xlsx name with text bytes fails content check", func(t *testing.T) {
		r := filetype.Validate("prop.xlsx", []byte("just some text, not a spreadsheet"))
		assert.True(t, r.ExtensionOK)
		assert.False(t, r.ContentOK)
		assert.False(t, r.OK())
		assert.Contains(t, r.ContentError(), r.Detected)
		assert.Contains(t, r.ContentError(), "xlsx")
	})

	t.Run("zip container accepted for xlsx", func(t *testing.T) {
		r := filetype.Validate("prop.xlsx", zipBytes(t))
		assert.True(t, r.ExtensionOK)
		assert.True(t, r.ContentOK)
		assert.True(t, r.OK())
		assert.Empty(t, r.ExtensionError())
		assert.Empty(t, r.ContentError())
	})

	t.Run("ole container accepted for xls", func(t *testing.T) {
		r := filetype.Validate("prop.xls", oleBytes())
		assert.True(t, r.ExtensionOK)
		assert.True(t, r.ContentOK)
	})

	t.Run("zip bytes with xls name fail content check", func(t *testing.T) {
		r := filetype.Validate("prop.xls", zipBytes(t))
		assert.True(t, r.ExtensionOK)
		assert.False(t, r.ContentOK, "a zip is not an OLE workbook")
	})

	t.Run("checks are independent", func(t *testing.T) {
		// Wrong extension with genuinely allowed bytes: only the
		// extension check fails the submission.
		r := filetype.Validate("prop.zip", zipBytes(t))
		assert.False(t, r.ExtensionOK)
		assert.False(t, r.ContentOK, "unknown extension has no acceptable signatures")
		assert.False(t, r.OK())
	})

	t.Run("uppercase extension accepted", func(t *testing.T) {
		r := filetype.Validate("PROP.XLSX", zipBytes(t))
		assert.True(t, r.ExtensionOK)
		assert.Equal(t, "xlsx", r.Extension)
	})

	t.Run("empty file fails content check", func(t *testing.T) {
		r := filetype.Validate("prop.xlsx", nil)
		assert.True(t, r.ExtensionOK)
		assert.False(t, r.ContentOK)
	})

	t.Run("filename without extension", func(t *testing.T) {
		r := filetype.Validate("proposal", []byte("x"))
		assert.Empty(t, r.Extension)
		assert.False(t, r.ExtensionOK)
	})
}

func TestAllowedExtensions(t *testing.T) {
	exts := filetype.AllowedExtensions()
	assert.Equal(t, []string{"xlsx", "xls"}, exts)

	// Mutating the returned slice must not affect the package state.
	exts[0] = "exe"
	assert.Equal(t, []string{"xlsx", "xls"}, filetype.AllowedExtensions())
}

package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/core/binder"
)

type submitForm struct {
	Proposal  string                  `form:"proposal"`
	Action    string                  `form:"action"`
	SheetName string                  `form:"sheet_name"`
	Notify    bool                    `form:"notify"`
	Upload    *multipart.FileHeader   `file:"upload_file"`
	Extra     []*multipart.FileHeader `file:"attachments"`
	Internal  string                  `form:"-"`
}

func TestForm_URLEncoded(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	form.Set("proposal", "S22B-QN017")
	form.Set("action", "check")
	form.Set("notify", "on")
	form.Set("internal", "should not bind")

	req := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dst submitForm
	require.NoError(t, binder.Form()(req, &dst))

	assert.Equal(t, "S22B-QN017", dst.Proposal)
	assert.Equal(t, "check", dst.Action)
	assert.True(t, dst.Notify)
	assert.Empty(t, dst.SheetName)
	assert.Empty(t, dst.Internal)
	assert.Nil(t, dst.Upload)
}

func TestForm_Multipart(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("proposal", "S22B-QN017"))
	require.NoError(t, w.WriteField("action", "upload"))
	part, err := w.CreateFormFile("upload_file", "targets.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("workbook bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/submit", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var dst submitForm
	require.NoError(t, binder.Form()(req, &dst))

	assert.Equal(t, "S22B-QN017", dst.Proposal)
	assert.Equal(t, "upload", dst.Action)
	require.NotNil(t, dst.Upload)
	assert.Equal(t, "targets.xlsx", dst.Upload.Filename)
	assert.Equal(t, int64(len("workbook bytes")), dst.Upload.Size)
}

func TestForm_SanitizesUploadedFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		filename string
		want     string
	}{
		{"path traversal", "../../etc/passwd", "passwd"},
		{"windows path", `C:\Users\obs\targets.xls`, "targets.xls"},
		{"null byte", "tar\x00gets.xlsx", "targets.xlsx"},
		{"dot only", ".", "unnamed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var body bytes.Buffer
			w := multipart.NewWriter(&body)
			part, err := w.CreateFormFile("upload_file", tc.filename)
			require.NoError(t, err)
			_, err = part.Write([]byte("x"))
			require.NoError(t, err)
			require.NoError(t, w.Close())

			req := httptest.NewRequest("POST", "/submit", &body)
			req.Header.Set("Content-Type", w.FormDataContentType())

			var dst submitForm
			require.NoError(t, binder.Form()(req, &dst))
			require.NotNil(t, dst.Upload)
			assert.Equal(t, tc.want, dst.Upload.Filename)
		})
	}
}

func TestForm_MultipleFiles(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, name := range []string{"a.xlsx", "b.xlsx"} {
		part, err := w.CreateFormFile("attachments", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/submit", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var dst submitForm
	require.NoError(t, binder.Form()(req, &dst))
	require.Len(t, dst.Extra, 2)
	assert.Equal(t, "a.xlsx", dst.Extra[0].Filename)
	assert.Equal(t, "b.xlsx", dst.Extra[1].Filename)
}

func TestForm_StripsControlCharacters(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	form.Set("proposal", "S22B\r\nSet-Cookie: pwned")
	form.Set("sheet_name", "queue\x00Targets")

	req := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dst submitForm
	require.NoError(t, binder.Form()(req, &dst))
	assert.Equal(t, "S22BSet-Cookie: pwned", dst.Proposal)
	assert.Equal(t, "queueTargets", dst.SheetName)
}

func TestForm_TypedFields(t *testing.T) {
	t.Parallel()

	type typedForm struct {
		Rows    int      `form:"rows"`
		Ratio   float64  `form:"ratio"`
		Tags    []string `form:"tags"`
		Comment *string  `form:"comment"`
	}

	form := url.Values{}
	form.Set("rows", "42")
	form.Set("ratio", "0.5")
	form.Add("tags", "alpha")
	form.Add("tags", "beta, gamma")
	form.Set("comment", "resubmission")

	req := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dst typedForm
	require.NoError(t, binder.Form()(req, &dst))

	assert.Equal(t, 42, dst.Rows)
	assert.InDelta(t, 0.5, dst.Ratio, 1e-9)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, dst.Tags)
	require.NotNil(t, dst.Comment)
	assert.Equal(t, "resubmission", *dst.Comment)
}

func TestForm_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/submit", strings.NewReader("proposal=S22B"))

		var dst submitForm
		err := binder.Form()(req, &dst)
		require.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/submit", strings.NewReader(`{"proposal":"S22B"}`))
		req.Header.Set("Content-Type", "application/json")

		var dst submitForm
		err := binder.Form()(req, &dst)
		require.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("non-pointer target", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/submit", strings.NewReader("proposal=S22B"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var dst submitForm
		err := binder.Form()(req, dst)
		require.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})

	t.Run("value does not fit field type", func(t *testing.T) {
		t.Parallel()

		type typedForm struct {
			Rows int `form:"rows"`
		}

		form := url.Values{}
		form.Set("rows", "not-a-number")

		req := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var dst typedForm
		err := binder.Form()(req, &dst)
		require.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})

	t.Run("oversized multipart boundary", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/submit", strings.NewReader("irrelevant"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary="+strings.Repeat("b", 200))

		var dst submitForm
		err := binder.Form()(req, &dst)
		require.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})
}

package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"
)

// DefaultMaxMemory bounds the in-memory portion of multipart parsing;
// larger uploads spill to temporary files.
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data
// requests into a tagged struct.
//
// Struct tags:
//   - `form:"name"` binds a form field; `form:"-"` skips the field.
//   - `file:"name"` binds an uploaded file as *multipart.FileHeader
//     (or a slice of them); `file:"-"` skips it.
//
// Form fields support strings, integer and float types, bools
// (accepting on/yes/off/no as checkboxes send them), slices of those,
// and pointers for optional fields. Uploaded filenames are stripped to
// their base name before binding.
func Form() Binder {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
		}

		mediaType := contentType
		if idx := strings.Index(contentType, ";"); idx != -1 {
			mediaType = strings.TrimSpace(contentType[:idx])
		}

		var (
			values map[string][]string
			files  map[string][]*multipart.FileHeader
		)

		switch {
		case mediaType == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.Form

		case strings.HasPrefix(mediaType, "multipart/form-data"):
			_, params, err := mime.ParseMediaType(contentType)
			if err != nil {
				return fmt.Errorf("%w: malformed content type", ErrFailedToParseForm)
			}
			if !validBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid multipart boundary", ErrFailedToParseForm)
			}

			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}

			if r.MultipartForm != nil {
				values = r.MultipartForm.Value
				files = r.MultipartForm.File
			} else {
				values = make(map[string][]string)
			}

		default:
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
		}

		// Multipart cleanup stays with the caller so bound file
		// headers remain readable after binding.
		return bindForm(v, values, files)
	}
}

func bindForm(v any, values map[string][]string, files map[string][]*multipart.FileHeader) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParseForm)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParseForm)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		if name, ok := tagName(fieldType.Tag.Get("form")); ok {
			if fieldValues, exists := values[name]; exists && len(fieldValues) > 0 {
				if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
					return fmt.Errorf("%w: field %s: %v", ErrFailedToParseForm, fieldType.Name, err)
				}
			}
		}

		if name, ok := tagName(fieldType.Tag.Get("file")); ok && files != nil {
			if headers, exists := files[name]; exists && len(headers) > 0 {
				if err := setFileField(field, fieldType.Type, headers); err != nil {
					return fmt.Errorf("%w: field %s: %v", ErrFailedToParseForm, fieldType.Name, err)
				}
			}
		}
	}
	return nil
}

// tagName extracts the binding name from a tag value, dropping options
// after a comma. Empty and "-" tags are skipped.
func tagName(tag string) (string, bool) {
	if tag == "" || tag == "-" {
		return "", false
	}
	if idx := strings.Index(tag, ","); idx != -1 {
		tag = tag[:idx]
	}
	return tag, tag != ""
}

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

func setFileField(field reflect.Value, fieldType reflect.Type, headers []*multipart.FileHeader) error {
	for _, fh := range headers {
		fh.Filename = sanitizeFilename(fh.Filename)
	}

	if fieldType == fileHeaderType {
		field.Set(reflect.ValueOf(headers[0]))
		return nil
	}

	if fieldType.Kind() == reflect.Slice && fieldType.Elem() == fileHeaderType {
		slice := reflect.MakeSlice(fieldType, len(headers), len(headers))
		for i, fh := range headers {
			slice.Index(i).Set(reflect.ValueOf(fh))
		}
		field.Set(slice)
		return nil
	}

	return fmt.Errorf("unsupported type for file field: %v", fieldType)
}

// sanitizeFilename strips directories and null bytes from uploaded
// filenames. Browsers normally send bare names; anything else is a
// crafted request.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}

// validBoundary rejects boundary values that would break multipart
// re-parsing downstream.
func validBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 100 {
		return false
	}
	for _, r := range boundary {
		if r == '\x00' || r == '\r' || r == '\n' {
			return false
		}
	}
	return true
}

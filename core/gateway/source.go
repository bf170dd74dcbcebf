package gateway

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"qgate/core/upload"
)

// inputSource is one of the two ways a spreadsheet reaches the gateway:
// a file part on the request or a named sheet pulled from the external
// export service. The variant is chosen once per request and drives both
// the byte resolution and the notification verb.
type inputSource interface {
	Kind() upload.Kind
	Resolve(ctx context.Context) (filename string, data []byte, err error)
}

type fileSource struct {
	header *multipart.FileHeader
}

func (s fileSource) Kind() upload.Kind { return upload.KindFile }

func (s fileSource) Resolve(context.Context) (string, []byte, error) {
	f, err := s.header.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("read uploaded file: %w", err)
	}
	return s.header.Filename, data, nil
}

type sheetSource struct {
	fetcher SheetFetcher
	name    string
}

func (s sheetSource) Kind() upload.Kind { return upload.KindSheet }

func (s sheetSource) Resolve(ctx context.Context) (string, []byte, error) {
	return s.fetcher.Fetch(ctx, s.name)
}

// chooseSource picks the input variant for this request. A file part wins
// over a sheet name when both are present; neither is an input error.
func (g *Gateway) chooseSource(form *submitForm) (inputSource, error) {
	switch {
	case form.File != nil:
		return fileSource{header: form.File}, nil
	case strings.TrimSpace(form.SheetName) != "":
		if g.sheets == nil {
			return nil, errSheetSourceDisabled
		}
		return sheetSource{fetcher: g.sheets, name: strings.TrimSpace(form.SheetName)}, nil
	default:
		return nil, errNoInputSource
	}
}

package upload

import (
	"path"
	"strings"
	"time"
)

// Kind distinguishes the two submission sources. The distinction only
// changes wording: a browser-supplied workbook is "uploaded", a sheet
// fetched from its online export URL is "submitted".
type Kind string

const (
	KindFile  Kind = "file"
	KindSheet Kind = "sheet"
)

// Verb returns the notification verb for this source.
func (k Kind) Verb() string {
	if k == KindSheet {
		return "submitted"
	}
	return "uploaded"
}

// Request carries one validated submission into storage.
type Request struct {
	Proposal string
	Filename string
	Data     []byte
	Source   Kind
}

// Credentials summarizes how the request was authenticated. The
// session and login outcomes are resolved by the caller; the manager
// only decides whether they permit a write and how to word the
// rejection.
type Credentials struct {
	SessionValid     bool
	SessionPresented bool
	AuthAttempted    bool
	AuthOK           bool
	Backend          string
	DisplayName      string
}

// Authorized reports whether either credential path permits storage.
func (c Credentials) Authorized() bool {
	return c.SessionValid || c.AuthOK
}

// Result describes a completed upload.
type Result struct {
	Name     string
	Location string
	StoredAt time.Time
}

// DeriveName builds the stored filename: the upload's base name plus a
// one-second-resolution timestamp, prefixed with the proposal
// identifier when the base name does not already contain it
// case-insensitively. Two uploads of the same base name within one
// second derive the same name; the second write wins.
func DeriveName(filename, proposal string, at time.Time) string {
	ext := path.Ext(filename)
	base := strings.TrimSuffix(path.Base(filename), ext)

	name := base + "_" + at.Format("20060102150405")
	if !strings.Contains(strings.ToLower(name), strings.ToLower(proposal)) {
		name = proposal + "_" + name
	}
	return name + ext
}

package binder

import "net/http"

// Binder binds HTTP request data to a Go value. The gateway's pages
// are plain HTML forms, so only form binding is provided; a handler
// declares a struct with form/file tags and lets the binder fill it.
type Binder func(r *http.Request, v any) error

// Package binder decodes HTML form submissions into Go structs.
//
// Handlers describe the expected fields with `form` struct tags and let
// the binder take care of parsing, type conversion and input sanitization:
//
//	type submitForm struct {
//		Proposal string                `form:"proposal"`
//		Action   string                `form:"action"`
//		Upload   *multipart.FileHeader `form:"upload_file"`
//	}
//
//	func handleSubmit(w http.ResponseWriter, r *http.Request) {
//		var form submitForm
//		if err := binder.Form()(r, &form); err != nil {
//			// respond with 400 Bad Request
//		}
//		// ...
//	}
//
// Both application/x-www-form-urlencoded and multipart/form-data are
// supported; file fields bind to *multipart.FileHeader. String values are
// stripped of control characters and uploaded filenames are reduced to
// their base name before binding.
package binder

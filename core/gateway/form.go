package gateway

import "mime/multipart"

// submitForm is the complete field set of the single UI form. Action
// buttons post value="1" so they bind as booleans; at most one of the
// three dispatch actions may be set per request.
type submitForm struct {
	Proposal  string `form:"proposal"`
	Username  string `form:"username"`
	Password  string `form:"password"`
	SheetName string `form:"sheet_name"`

	Login     bool `form:"login"`
	Logout    bool `form:"logout"`
	Check     bool `form:"check"`
	Upload    bool `form:"upload"`
	ListFiles bool `form:"list_files"`

	File *multipart.FileHeader `file:"upload_file"`
}

// actionCount counts the dispatch actions requested. Login and logout are
// session operations, not actions: they combine freely with one action.
func (f *submitForm) actionCount() int {
	n := 0
	for _, set := range []bool{f.Check, f.Upload, f.ListFiles} {
		if set {
			n++
		}
	}
	return n
}

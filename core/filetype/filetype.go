package filetype

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// allowedExtensions is the fixed allow-list of spreadsheet extensions, in
// the order they appear in rejection messages.
var allowedExtensions = []string{"xlsx", "xls"}

// signatures maps each allowed extension to the content types accepted
// for it. An extension may map to several legitimate signatures: the
// container format alone is acceptable for files produced by tools that
// skip the office-specific zip entries, and legacy workbooks detect as
// either the Excel type or the bare OLE container.
var signatures = map[string][]string{
	"xlsx": {
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/zip",
	},
	"xls": {
		"application/vnd.ms-excel",
		"application/x-ole-storage",
	},
}

// AllowedExtensions returns the accepted extensions in display order.
func AllowedExtensions() []string {
	out := make([]string, len(allowedExtensions))
	copy(out, allowedExtensions)
	return out
}

// Result carries both independent checks for one submitted file.
type Result struct {
	// Extension is the lowercased substring after the final '.' in the
	// filename, empty when the filename has none.
	Extension string
	// Detected is the sniffed content type of the actual bytes.
	Detected string
	// ExtensionOK reports whether Extension is allow-listed.
	ExtensionOK bool
	// ContentOK reports whether the sniffed type matches a signature
	// accepted for Extension.
	ContentOK bool
}

// OK requires both checks to pass.
func (r Result) OK() bool {
	return r.ExtensionOK && r.ContentOK
}

// ExtensionError renders the literal rejection message for a failed
// extension check, enumerating the allow-list. Empty when the check
// passed.
func (r Result) ExtensionError() string {
	if r.ExtensionOK {
		return ""
	}
	return fmt.Sprintf("file extension %q is not accepted; allowed extensions: %s",
		r.Extension, strings.Join(allowedExtensions, ", "))
}

// ContentError renders the literal rejection message for a failed content
// check, naming the detected type so a spoofed extension is
// distinguishable from a wrong-format file. Empty when the check passed.
func (r Result) ContentError() string {
	if r.ContentOK {
		return ""
	}
	return fmt.Sprintf("detected content type %q does not match the expected signature for %q files",
		r.Detected, r.Extension)
}

// Validate checks the declared extension and the actual byte signature
// independently. Both checks always run: acceptance requires both, and a
// failure of each produces its own distinct message.
func Validate(filename string, data []byte) Result {
	r := Result{Extension: extensionOf(filename)}

	detected := mimetype.Detect(data)
	r.Detected = detected.String()

	allowed, known := signatures[r.Extension]
	r.ExtensionOK = known
	r.ContentOK = known && matchesAny(detected, allowed)
	return r
}

// extensionOf returns the lowercased substring after the final '.'.
func extensionOf(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// matchesAny walks the detected type and its container parents against
// the allow-list, so an xlsx that only sniffs as its zip container still
// matches.
func matchesAny(m *mimetype.MIME, allowed []string) bool {
	for cur := m; cur != nil; cur = cur.Parent() {
		for _, want := range allowed {
			if cur.Is(want) {
				return true
			}
		}
	}
	return false
}

// Package filetype verifies that a submitted file is what its name
// claims: the declared extension must be allow-listed, and independently
// the actual byte content must carry a signature acceptable for that
// extension.
//
// The two checks never shortcut each other. A .txt upload fails the
// extension check with a message enumerating the allowed extensions; a
// .xlsx upload containing plain text passes the extension check but fails
// the content check with a message naming the detected type. The caller
// shows every failing message, so a spoofed extension and a misnamed but
// genuine spreadsheet are distinguishable at a glance.
//
// Content sniffing uses magic-number detection and walks container
// parents: a well-formed xlsx is a zip archive, a legacy xls is an OLE
// compound file, and both container-only detections are accepted for
// their extension.
package filetype

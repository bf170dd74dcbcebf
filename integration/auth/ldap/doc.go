// Package ldap implements the primary credential backend against a staff
// directory.
//
// Authentication is a bind as the user's own DN, derived from a
// configurable template with the username DN-escaped into it. After a
// successful bind the backend reads one attribute (cn by default) off the
// bound entry for the display name; a missing attribute falls back to the
// username rather than failing a login the directory already accepted.
//
// Dial and operation timeouts come from LDAP_TIMEOUT, so a hung directory
// degrades into an "unreachable" classification instead of blocking the
// request forever.
package ldap

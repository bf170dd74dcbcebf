// Package email defines the notification mail contract and a
// development sender that writes messages to disk.
//
// Upload notifications are best-effort: the gateway logs delivery
// failures but never fails an upload over them, so Sender
// implementations should return classified errors rather than panic.
// Production transports live under integration/email.
package email

// Package smtp delivers upload notifications through a plain SMTP
// server, the usual transport on observatory-internal networks where
// no external mail API is reachable.
package smtp

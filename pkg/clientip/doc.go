// Package clientip extracts the originating client IP address from an
// HTTP request, looking through the proxy and CDN headers that sit in
// front of a deployed service before falling back to the socket's
// remote address.
//
// Headers are consulted in priority order:
//
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean App Platform)
//  3. X-Forwarded-For (leftmost entry of the chain)
//  4. X-Real-IP (nginx and similar reverse proxies)
//  5. RemoteAddr (direct connection)
//
// Candidates are validated with net.ParseIP and returned in canonical
// form; malformed values and unspecified addresses (0.0.0.0, ::) are
// skipped so a misbehaving proxy cannot blank out the address used in
// access logs. GetIP never panics and never returns an empty string.
//
// Usage:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		ip := clientip.GetIP(r)
//		slog.Info("request received", slog.String("client_ip", ip))
//	}
//
// Note that these headers are client-supplied unless a trusted proxy
// overwrites them. Use the result for logging and diagnostics, not as
// an authentication signal.
package clientip

package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders lists the headers consulted before falling back to the
// connection's remote address, in priority order. CDN headers carry a
// single verified address; X-Forwarded-For may carry a chain appended
// by each hop, of which the leftmost entry is the originating client.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client IP address for the request. Proxy headers
// take priority over the transport-level remote address so that the
// real client survives load balancers and CDN hops. Every candidate is
// parsed and normalized; malformed or unspecified (0.0.0.0, ::)
// addresses are skipped. When nothing usable is found the raw
// RemoteAddr is returned so the caller always gets a non-empty value
// for logging.
func GetIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		if header == "X-Forwarded-For" {
			// Take the first entry of the chain: client, proxy1, proxy2...
			if idx := strings.IndexByte(value, ','); idx >= 0 {
				value = value[:idx]
			}
		}
		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// normalize parses a candidate address and returns its canonical text
// form, or "" when the candidate is not a usable client address.
func normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	// Browsers and some proxies bracket IPv6 literals.
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")

	ip := net.ParseIP(value)
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}

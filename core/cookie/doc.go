// Package cookie provides tamper-evident HTTP cookies signed with
// HMAC-SHA256. Values stay client-readable; the signature only proves the
// server wrote them. Anything secret belongs server-side, referenced by an
// opaque identifier carried in the cookie.
//
// # Basic Usage
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Write
//	err = m.Set(w, "qgate_session", payload, cookie.WithMaxAge(3*3600))
//
//	// Read back, verified
//	payload, err := m.Get(r, "qgate_session")
//	if errors.Is(err, cookie.ErrSignatureInvalid) {
//		// tampered or signed with a retired key
//	}
//
//	// Remove
//	m.Delete(w, "qgate_session")
//
// # Key Rotation
//
// New accepts multiple secrets. The first signs all new cookies; the rest
// are tried during verification, so previously issued cookies survive a
// key rollover until they expire naturally:
//
//	m, err := cookie.New([]string{newSecret, oldSecret})
//
// The signature binds the cookie name as well as the value, so a signed
// value copied onto a different cookie name fails verification.
package cookie

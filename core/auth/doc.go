// Package auth composes two credential backends into a single
// authentication decision with unconditional fallback.
//
// The primary backend (a staff directory) is asked first. If it fails for
// any reason, unreachable or a definitive credential rejection alike, the
// secondary backend (a program-management database) is asked with the same
// pair. Users provisioned in only one of the two stores can therefore
// always log in. Both backends failing yields a combined, ordered reason
// string for display.
//
//	authenticator, err := auth.New(ldapBackend, dbBackend)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome := authenticator.Authenticate(ctx, username, secret)
//	if !outcome.OK {
//		render(outcome.FailureReason()) // "ldap: backend unreachable; progdb: credentials rejected"
//	}
//
// Backends classify their own errors by wrapping ErrBackendUnreachable or
// ErrCredentialsRejected; anything unclassified is treated as unreachable
// because it says nothing about the credentials.
package auth

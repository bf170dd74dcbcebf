// Package session issues and validates time-bounded authentication
// sessions over a pluggable Store.
//
// A session is created on successful authentication, read on every later
// request bearing a matching id, and dies either by natural expiry or by
// explicit invalidation. Invalidation rewrites the record's expiry into
// the past instead of deleting it, so logout leaves history behind while
// making the id useless.
//
// # Identifiers
//
// Session ids are derived from a one-way hash of a high-resolution
// timestamp: opaque, unguessable, and probabilistically unique, which is
// sufficient at interactive traffic scale. Ids arrive from client cookies,
// so ValidID gates every id before it reaches a store.
//
// # Usage
//
//	store := sessionfile.New("/var/lib/qgate/sessions")
//	manager, err := session.New(store, session.WithTTL(3*time.Hour))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// after authentication succeeds
//	s := manager.Create(ctx, outcome.Backend, outcome.DisplayName)
//
//	// on a later request
//	if s, ok := manager.Validate(ctx, presentedID); ok {
//		_ = s.DisplayName
//	}
//
//	// logout
//	_ = manager.Invalidate(ctx, presentedID)
//
// Create never fails: a store write failure is logged and the session is
// returned anyway, behaving as ephemeral. This keeps the login path
// available when the session medium is briefly unwritable.
//
// # Expiry Invariant
//
// For every session, ExpiresAt is exactly CreatedAt plus the configured
// TTL until invalidation rewrites it. Validate(id) at time t is true iff
// t < ExpiresAt and the presented id equals the persisted one. Multiple
// live sessions per user are permitted; there is no cross-session
// uniqueness constraint.
package session

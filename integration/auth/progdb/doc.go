// Package progdb implements the secondary credential backend over the
// program-management database.
//
// Accounts live in the auth_users table keyed by email, with bcrypt
// password hashes. An unknown email and a wrong password both classify as
// a credential rejection; only the database being unreachable classifies
// as unreachable, so the fallback chain can tell the two apart.
//
// The schema ships as an embedded goose migration applied via Migrate at
// boot. Migration failure is survivable: the pool connects lazily and the
// backend simply reports unreachable until the database returns.
package progdb

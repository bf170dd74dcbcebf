// Package redis implements a TTL-aware session store over go-redis.
//
// Each session is a JSON value under qgate:session:<id> with a server-side
// expiry equal to its remaining lifetime, so dead sessions disappear
// without a sweep and writes are atomic. Invalidated sessions (expiry
// rewritten into the past) are deleted on save, which preserves the
// external contract: a later lookup reports the session gone.
package redis

package core

// TokenStore is the durable holder of the session bearer token. The store is
// the source of truth: an in-memory copy is only ever a cache, and Get must
// hit the backing storage on every call so that external mutation (another
// process, another store handle on the same path) is always observed.
type TokenStore interface {
	// Set persists the token, superseding any previous value.
	Set(token string) error
	// Get returns the persisted token, or "" if there is none.
	Get() (string, error)
	// Clear removes the token and any cached user-identity artifact left
	// over from earlier client versions. Idempotent.
	Clear() error
}

package ratelimitstore

import "github.com/triswaplabs/triswap-backend/internal/model"

// IStore holds per-user rate-limit records with atomic per-key
// read-modify-write.
type IStore interface {
	Get(userAddress string) (model.RateLimitRecord, bool)

	// Mutate applies fn to the user's current record atomically and returns
	// the post-apply record.
	Mutate(userAddress string, fn func(*model.RateLimitRecord)) model.RateLimitRecord
}

package model

import "time"

// RateLimitRecord tracks one user's order count inside a rolling window.
type RateLimitRecord struct {
	Count         int       `json:"count"`
	WindowResetAt time.Time `json:"window_reset_at"`
}

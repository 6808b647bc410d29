package store

import (
	"gorm.io/gorm"

	"github.com/triswaplabs/triswap-backend/internal/store/orderstore"
	"github.com/triswaplabs/triswap-backend/internal/store/ratelimitstore"
)

type Store struct {
	Order     orderstore.IStore
	RateLimit ratelimitstore.IStore
}

// New builds the in-process store set. The rate-limit table is always
// in-memory; a nil db keeps the order store in-memory as well.
func New(db *gorm.DB) *Store {
	orders := orderstore.NewMemoryStore()
	if db != nil {
		orders = orderstore.NewPostgresStore(db)
	}
	return &Store{
		Order:     orders,
		RateLimit: ratelimitstore.NewMemoryStore(),
	}
}

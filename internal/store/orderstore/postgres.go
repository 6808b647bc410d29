package orderstore

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
)

// PostgresStore backs the order store with a durable keyed table. Per-key
// atomicity comes from row locking inside a transaction.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) IStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(order *model.SwapOrder) error {
	return s.db.Create(order).Error
}

func (s *PostgresStore) Get(id string) (*model.SwapOrder, error) {
	var order model.SwapOrder
	err := s.db.Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &swaperr.OrderNotFoundError{OrderID: id}
		}
		return nil, err
	}
	return &order, nil
}

func (s *PostgresStore) ListByUser(userAddress string) ([]model.SwapOrder, error) {
	var orders []model.SwapOrder
	err := s.db.Where("user_address = ?", userAddress).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *PostgresStore) ListByStatus(status model.SwapOrderStatus) ([]model.SwapOrder, error) {
	var orders []model.SwapOrder
	err := s.db.Where("status = ?", status).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *PostgresStore) All() ([]model.SwapOrder, error) {
	var orders []model.SwapOrder
	err := s.db.Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *PostgresStore) Transition(id string, fn func(*model.SwapOrder) error) (*model.SwapOrder, error) {
	var out *model.SwapOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order model.SwapOrder
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &swaperr.OrderNotFoundError{OrderID: id}
			}
			return err
		}

		if err := fn(&order); err != nil {
			return err
		}

		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		out = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Delete(id string, shouldDelete func(*model.SwapOrder) bool) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order model.SwapOrder
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if !shouldDelete(&order) {
			return nil
		}
		if err := tx.Delete(&order).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

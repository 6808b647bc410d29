package model

import (
	"time"

	"gorm.io/gorm"
)

type SwapOrderStatus string

const (
	SwapOrderStatusPending           SwapOrderStatus = "pending"
	SwapOrderStatusConsensusPending  SwapOrderStatus = "consensus_pending"
	SwapOrderStatusConsensusAchieved SwapOrderStatus = "consensus_achieved"
	SwapOrderStatusExecuted          SwapOrderStatus = "executed"
	SwapOrderStatusRefunded          SwapOrderStatus = "refunded"
	SwapOrderStatusFailed            SwapOrderStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s SwapOrderStatus) Terminal() bool {
	switch s {
	case SwapOrderStatusExecuted, SwapOrderStatusRefunded, SwapOrderStatusFailed:
		return true
	}
	return false
}

// SwapOrder is a cross-chain HTLC swap order. Amounts are base-unit integer
// strings; the secret itself is never stored, only its commitment.
type SwapOrder struct {
	ID             string          `json:"id" gorm:"column:id;type:varchar(64);primaryKey"`
	UserAddress    string          `json:"user_address" gorm:"column:user_address;type:varchar(255);not null;index"`
	FromToken      string          `json:"from_token" gorm:"column:from_token;type:varchar(32);not null"`
	ToToken        string          `json:"to_token" gorm:"column:to_token;type:varchar(32);not null"`
	FromAmount     string          `json:"from_amount" gorm:"column:from_amount;type:varchar(255);not null"`
	ExpectedAmount string          `json:"expected_amount" gorm:"column:expected_amount;type:varchar(255)"`
	MinAmount      string          `json:"min_amount" gorm:"column:min_amount;type:varchar(255)"`
	FromNetwork    Network         `json:"from_network" gorm:"column:from_network;type:varchar(32);not null"`
	ToNetwork      Network         `json:"to_network" gorm:"column:to_network;type:varchar(32);not null"`
	Status         SwapOrderStatus `json:"status" gorm:"column:status;type:varchar(32);default:'pending'"`
	SecretHash     string          `json:"secret_hash" gorm:"column:secret_hash;type:varchar(64);not null"`
	Timelock       int64           `json:"timelock" gorm:"column:timelock;not null"`
	OperationID    string          `json:"operation_id,omitempty" gorm:"column:operation_id;type:varchar(128)"`
	ConsensusCount int             `json:"consensus_count" gorm:"column:consensus_count;default:0"`
	LockTxHash     string          `json:"lock_tx_hash,omitempty" gorm:"column:lock_tx_hash;type:varchar(128)"`
	ExecuteTxHash  string          `json:"execute_tx_hash,omitempty" gorm:"column:execute_tx_hash;type:varchar(128)"`
	RefundTxHash   string          `json:"refund_tx_hash,omitempty" gorm:"column:refund_tx_hash;type:varchar(128)"`
	CreatedAt      time.Time       `json:"created_at" gorm:"column:created_at"`
	ExpiresAt      time.Time       `json:"expires_at" gorm:"column:expires_at"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"column:deleted_at;index"`
}

func (SwapOrder) TableName() string {
	return "swap_orders"
}

// TimelockExpired reports whether the claim window has closed at now.
func (o *SwapOrder) TimelockExpired(now time.Time) bool {
	return now.Unix() >= o.Timelock
}

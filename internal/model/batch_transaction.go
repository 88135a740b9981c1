package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of ledger entry kinds.
type TransactionType string

const (
	TxFeed      TransactionType = "FEED"
	TxYield     TransactionType = "YIELD"
	TxLoss      TransactionType = "LOSS"
	TxByproduct TransactionType = "BYPRODUCT"
)

// Valid reports whether t is one of the four known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TxFeed, TxYield, TxLoss, TxByproduct:
		return true
	}
	return false
}

// BatchTransaction is one entry in the append-only material ledger.
// FEED rows are written exactly once per ingredient line at release time;
// YIELD/LOSS/BYPRODUCT rows are appended during production reporting and
// never mutated afterwards.
//
// LotNumber tags the material this entry produced or consumed;
// ParentLotID points at the upstream lot the material came from. Both are
// optional — genealogy queries skip rows without them.
type BatchTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        TransactionType `gorm:"type:varchar(10);not null;column:transaction_type"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	LotNumber   *string         `gorm:"index"`
	ParentLotID *string         `gorm:"index;column:parent_lot_id"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

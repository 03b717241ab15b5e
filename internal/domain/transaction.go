package domain

import "time"

// Transaction types
const (
	TxTypePurchase = "purchase"
	TxTypeDisposal = "disposal"
	TxTypeReward   = "reward"
)

// Transaction statuses. Only completed is ever written by the settlement
// flow; pending and failed exist in the enumeration without any transition
// logic attached to them.
const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
)

// TransactionMetadata is a snapshot captured at settlement time so the
// ledger stays readable even after later catalog or bin edits.
type TransactionMetadata struct {
	ProductName    string `json:"productName,omitempty"`
	BinLocation    string `json:"binLocation,omitempty"`
	RecyclableType string `json:"recyclableType,omitempty"`
}

// Transaction Model. Ledger entries are immutable: no UpdatedAt, never
// mutated or deleted after creation.
type Transaction struct {
	ID          uint                `gorm:"primaryKey" json:"id"`                                            // Primary key
	UserID      uint                `gorm:"index:idx_tx_user_created,priority:1" json:"userId"`              // Credited user
	ProductID   uint                `json:"productId"`                                                       // Referenced product, informational
	BinID       uint                `json:"binId"`                                                           // Referenced bin (internal id), informational
	Type        string              `gorm:"not null" json:"type"`                                            // Transaction type: purchase, disposal, reward
	Amount      float64             `gorm:"not null" json:"amount"`                                          // Signed amount, positive for rewards
	Description string              `json:"description"`                                                     // Human-readable summary
	Status      string              `gorm:"not null" json:"status"`                                          // Status: pending, completed, failed
	Metadata    TransactionMetadata `gorm:"serializer:json" json:"metadata"`                                 // Snapshot of product/bin details
	CreatedAt   time.Time           `gorm:"index:idx_tx_user_created,priority:2,sort:desc" json:"createdAt"` // Timestamp of creation
}

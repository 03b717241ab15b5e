package store

import (
	"context"
	"errors"

	"ecorewards/internal/domain"
)

// Sentinel errors returned by every Store implementation.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// ProductFilter narrows product listings by equality on indexed fields.
// Zero-value fields are ignored.
type ProductFilter struct {
	Category string
	Active   *bool
}

// ProductUpdate carries a partial product edit. Nil fields are left
// untouched. RewardPercentage is deliberately absent: the stored snapshot is
// never rewritten after creation.
type ProductUpdate struct {
	Name           *string                `json:"name"`
	Description    *string                `json:"description"`
	Price          *float64               `json:"price"`
	RewardAmount   *float64               `json:"rewardAmount"`
	Category       *string                `json:"category"`
	RecyclableType *domain.RecyclableType `json:"recyclableType"`
	ImageURL       *string                `json:"imageUrl"`
	Active         *bool                  `json:"active"`
}

// BinUpdate carries a partial bin edit. Nil fields are left untouched.
// The external BinID and QR payload are fixed at registration.
type BinUpdate struct {
	Location      *domain.Location        `json:"location"`
	AcceptedTypes []domain.RecyclableType `json:"acceptedTypes"`
	Active        *bool                   `json:"active"`
}

// Users is the user collection.
type Users interface {
	Create(ctx context.Context, user *domain.User) error
	ByID(ctx context.Context, id uint) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	// CreditWallet adds amount to the user's wallet balance with a single
	// atomic increment. It is a silent no-op when the user is absent.
	CreditWallet(ctx context.Context, id uint, amount float64) error
}

// Products is the product collection.
type Products interface {
	Create(ctx context.Context, product *domain.Product) error
	ByID(ctx context.Context, id uint) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	// Update merges the non-nil fields and returns the updated record, or
	// nil without error when the id is absent.
	Update(ctx context.Context, id uint, update ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// Bins is the bin collection.
type Bins interface {
	Create(ctx context.Context, bin *domain.Bin) error
	ByID(ctx context.Context, id uint) (*domain.Bin, error)
	// ByBinID resolves a bin by its external identifier; inactive bins are
	// treated as absent. This is the scan read path.
	ByBinID(ctx context.Context, binID string) (*domain.Bin, error)
	List(ctx context.Context) ([]domain.Bin, error)
	Update(ctx context.Context, id uint, update BinUpdate) (*domain.Bin, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// Transactions is the append-only ledger collection.
type Transactions interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	// ListByUser returns the user's transactions most-recent-first,
	// truncated to limit.
	ListByUser(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error)
}

// Store aggregates the four collections. Atomically runs fn against a Store
// whose writes commit or roll back as one unit; the settlement flow uses it
// to keep the ledger append and the wallet credit consistent.
type Store interface {
	Users() Users
	Products() Products
	Bins() Bins
	Transactions() Transactions
	Atomically(ctx context.Context, fn func(Store) error) error
}

package domain

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User Model. WalletBalance is a cached aggregate of completed reward
// transactions and is only ever mutated through the ledger credit path.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                    // Primary key
	Email         string    `gorm:"unique;not null" json:"email"`            // Unique email address
	Password      string    `gorm:"not null" json:"-"`                       // Hashed password, never serialized
	Name          string    `gorm:"not null" json:"name"`                    // Display name
	Phone         string    `json:"phone,omitempty"`                         // Optional phone number
	WalletBalance float64   `gorm:"not null;default:0" json:"walletBalance"` // Running reward balance
	Role          string    `gorm:"default:user" json:"role"`                // Role: user or admin
	CreatedAt     time.Time `json:"createdAt"`                               // Timestamp of creation
	UpdatedAt     time.Time `json:"updatedAt"`                               // Timestamp of last update
}

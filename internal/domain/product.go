package domain

import "time"

// Product categories
const (
	CategoryBeverage  = "beverage"
	CategoryFood      = "food"
	CategoryPackaging = "packaging"
	CategoryOther     = "other"
)

// ValidCategory reports whether category is one of the known product categories.
func ValidCategory(category string) bool {
	switch category {
	case CategoryBeverage, CategoryFood, CategoryPackaging, CategoryOther:
		return true
	}
	return false
}

// Product Model. RewardPercentage is computed once at creation time from
// RewardAmount/Price and is NOT recomputed when the price is edited later.
type Product struct {
	ID               uint           `gorm:"primaryKey" json:"id"`          // Primary key
	Name             string         `gorm:"not null" json:"name"`          // Product name
	Description      string         `json:"description"`                   // Product description
	Price            float64        `gorm:"not null" json:"price"`         // Purchase price
	RewardAmount     float64        `gorm:"not null" json:"rewardAmount"`  // Fixed reward per disposal
	RewardPercentage float64        `json:"rewardPercentage"`              // Snapshot of reward/price at creation
	Category         string         `gorm:"index:idx_products_active_category,priority:2" json:"category"` // Category: beverage, food, packaging, other
	RecyclableType   RecyclableType `gorm:"not null" json:"recyclableType"` // Material type of the packaging
	ImageURL         string         `json:"imageUrl,omitempty"`            // Optional image URL
	Active           bool           `gorm:"index:idx_products_active_category,priority:1;default:true" json:"active"` // Whether the product is purchasable
	CreatedAt        time.Time      `json:"createdAt"`                     // Timestamp of creation
	UpdatedAt        time.Time      `json:"updatedAt"`                     // Timestamp of last update
}

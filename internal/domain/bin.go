package domain

import "time"

// Coordinates is an optional geographic position for a bin location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location describes where a bin is installed.
type Location struct {
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Bin Model. BinID is the external identifier encoded in the QR code and is
// distinct from the internal primary key.
type Bin struct {
	ID            uint             `gorm:"primaryKey" json:"id"`                 // Primary key
	BinID         string           `gorm:"uniqueIndex;not null" json:"binId"`    // External identifier, globally unique
	Location      Location         `gorm:"serializer:json" json:"location"`      // Installation site
	AcceptedTypes []RecyclableType `gorm:"serializer:json" json:"acceptedTypes"` // Material types this bin takes
	QRCode        string           `json:"qrCode"`                               // Encoded QR payload (data URI)
	Active        bool             `gorm:"default:true" json:"active"`           // Whether the bin is in service
	CreatedAt     time.Time        `json:"createdAt"`                            // Timestamp of creation
	UpdatedAt     time.Time        `json:"updatedAt"`                            // Timestamp of last update
}

// Accepts reports whether the bin takes the given material type.
func (b *Bin) Accepts(t RecyclableType) bool {
	for _, accepted := range b.AcceptedTypes {
		if accepted == t {
			return true
		}
	}
	return false
}

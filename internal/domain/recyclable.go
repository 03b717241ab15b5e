package domain

// RecyclableType is the material category used to match products to bins.
type RecyclableType string

// Recyclable material types
const (
	RecyclablePlastic RecyclableType = "plastic"
	RecyclableGlass   RecyclableType = "glass"
	RecyclableMetal   RecyclableType = "metal"
	RecyclablePaper   RecyclableType = "paper"
	RecyclableOrganic RecyclableType = "organic"
)

// RecyclableTypes lists every valid material type.
var RecyclableTypes = []RecyclableType{
	RecyclablePlastic,
	RecyclableGlass,
	RecyclableMetal,
	RecyclablePaper,
	RecyclableOrganic,
}

// Valid reports whether t is one of the known material types.
func (t RecyclableType) Valid() bool {
	for _, known := range RecyclableTypes {
		if t == known {
			return true
		}
	}
	return false
}

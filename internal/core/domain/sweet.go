package domain

// Sweet categories form a closed enumeration; the store also enforces it
// through request validation before anything is written.
const (
	CategoryLaddu  = "Laddu"
	CategoryBarfi  = "Barfi"
	CategoryJalebi = "Jalebi"
	CategoryOther  = "Other"
)

// Categories lists every valid sweet category.
var Categories = []string{CategoryLaddu, CategoryBarfi, CategoryJalebi, CategoryOther}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Sweet is a catalog entry with price and stock quantity.
// Invariants: price > 0, quantity >= 0.
type Sweet struct {
	ID       string  `json:"id" bson:"_id,omitempty"`
	Name     string  `json:"name" bson:"name"`
	Category string  `json:"category" bson:"category"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// IsValidID reports whether s matches the store's identifier format
// (a 24-character hexadecimal string). Anything else is treated as
// not-found before reaching the store.
func IsValidID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

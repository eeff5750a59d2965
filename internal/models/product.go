package models

// Product is one pantry item. Every product belongs to exactly one user
// and is only visible to that user.
type Product struct {
	ID       int64  `json:"id" db:"id"`
	UserID   int64  `json:"user_id" db:"userid"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
	Qty      int    `json:"qty" db:"qty"`
}

// RanOut reports whether the product needs restocking.
func (p Product) RanOut() bool {
	return p.Qty == 0
}

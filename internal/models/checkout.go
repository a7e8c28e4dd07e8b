package models

// BuyerInfo is the buyer record a checkout request carries. The caller is
// trusted to have authenticated the user; only the delivery address is
// mandatory here.
type BuyerInfo struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address" validate:"required"`
	Notes    string `json:"notes"`
}

// LineItemRequest is the wire shape of one requested line: either a finished
// product reference or a custom assembly of up to three part references.
// Which of the optional fields are present decides the pricing path.
type LineItemRequest struct {
	ProductID *uint `json:"product_id"`
	StarterID *uint `json:"starter_id"`
	RingID    *uint `json:"ring_id"`
	TopID     *uint `json:"top_id"`
	Quantity  int   `json:"quantity"`
}

// OrderLine is the normalized form of a LineItemRequest: exactly one of
// ProductLine or AssemblyLine, with the quantity already clamped to >= 1.
type OrderLine interface {
	lineQuantity() int
}

// ProductLine prices by the referenced product's catalog price.
type ProductLine struct {
	ProductID uint
	Quantity  int
}

// AssemblyLine prices as the sum of its part prices. Any absent part
// contributes zero, including the degenerate all-absent case.
type AssemblyLine struct {
	StarterID *uint
	RingID    *uint
	TopID     *uint
	Quantity  int
}

func (l ProductLine) lineQuantity() int  { return l.Quantity }
func (l AssemblyLine) lineQuantity() int { return l.Quantity }

// Normalize converts the wire shape into its tagged variant. A present
// product_id selects the product path regardless of any part references;
// quantities below 1 clamp to 1.
func (r LineItemRequest) Normalize() OrderLine {
	qty := r.Quantity
	if qty < 1 {
		qty = 1
	}
	if r.ProductID != nil {
		return ProductLine{ProductID: *r.ProductID, Quantity: qty}
	}
	return AssemblyLine{
		StarterID: r.StarterID,
		RingID:    r.RingID,
		TopID:     r.TopID,
		Quantity:  qty,
	}
}

// CheckoutResult is what a successful checkout returns to the caller.
type CheckoutResult struct {
	OrderID    uint    `json:"order_id"`
	TotalPrice float64 `json:"total_price"`
}

package model

import "fmt"

// Validation for data crossing a trust boundary: durable cart snapshots and
// submitted order payloads are untrusted input and are schema-checked before
// any business logic trusts them. All checks fail closed: a single violation
// rejects the whole object.

// ValidateCartItem checks a single cart item against the schema: well-formed
// id, non-empty name, positive price, quantity >= 1, known station or none.
func ValidateCartItem(item *CartItem) error {
	if item == nil {
		return NewDomainError(ErrCodeMissingField, "cart item is nil")
	}
	if item.ID == "" {
		return NewDomainError(ErrCodeMissingField, "cart item id is required")
	}
	if item.Name == "" {
		return NewDomainError(ErrCodeMissingField, fmt.Sprintf("cart item %s: name is required", item.ID))
	}
	if !item.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if !ValidStation(item.Station) {
		return ErrInvalidStation
	}
	return nil
}

// ValidateCartSnapshot checks a restored cart snapshot. A failure means the
// snapshot is unusable as a whole; callers treat it as "no saved cart"
// instead of surfacing the error to the user.
func ValidateCartSnapshot(snap *CartSnapshot) error {
	if snap == nil {
		return NewDomainError(ErrCodeMissingField, "cart snapshot is nil")
	}
	if snap.RestaurantSlug == "" {
		return NewDomainError(ErrCodeMissingField, "cart snapshot: restaurant slug is required")
	}
	seen := make(map[string]struct{}, len(snap.Items))
	for i := range snap.Items {
		item := &snap.Items[i]
		if err := ValidateCartItem(item); err != nil {
			return fmt.Errorf("cart snapshot item %d: %w", i, err)
		}
		if _, dup := seen[item.ID]; dup {
			return NewDomainError(ErrCodeMissingField, fmt.Sprintf("cart snapshot: duplicate item id %s", item.ID))
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// ValidateOrderSubmission checks an order submission payload before any
// persistence is attempted.
func ValidateOrderSubmission(req *OrderRequest) error {
	if req == nil {
		return NewDomainError(ErrCodeMissingField, "order request is nil")
	}
	if req.RestaurantID == "" {
		return NewDomainError(ErrCodeMissingField, "restaurant_id is required")
	}
	if req.TableNumber == "" {
		return NewDomainError(ErrCodeMissingField, "table_number is required")
	}
	if len(req.Items) == 0 {
		return ErrEmptyOrder
	}
	for i := range req.Items {
		if err := ValidateCartItem(&req.Items[i]); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	if !req.TotalPrice.IsPositive() {
		return ErrInvalidTotal
	}
	return nil
}

// ValidateMenuItem is an integrity self-check on server-side menu rows.
// A failure here is a data integrity error, not a user input error.
func ValidateMenuItem(item *MenuItem) error {
	if item == nil {
		return ErrMenuIntegrity
	}
	if item.ID == "" || item.Name == "" || item.Category == "" {
		return ErrMenuIntegrity
	}
	if !item.Price.IsPositive() {
		return ErrMenuIntegrity
	}
	if !ValidStation(item.Station) {
		return ErrMenuIntegrity
	}
	return nil
}

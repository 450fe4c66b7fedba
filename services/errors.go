package services

import "fmt"

// ProductNotFoundError indicates an order line referenced a product that does
// not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError indicates a product had less stock than requested.
type InsufficientStockError struct {
	ProductID string
	NameEN    string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.NameEN)
}

package repositories

import (
	"context"

	"price-advisor/internal/models"
)

// ProductRepository defines read-only access to the marketplace product
// store. Implementations must bound FetchAll to a configured row limit.
type ProductRepository interface {
	// FetchAll returns up to the configured maximum number of products
	FetchAll(ctx context.Context) ([]models.Product, error)

	// Search performs a case-insensitive substring match against the
	// product title; when no rows match, the same pattern is retried
	// against the description. At most limit rows are returned.
	Search(ctx context.Context, query string, limit int) ([]models.Product, error)

	// Ping checks if the store is reachable
	Ping(ctx context.Context) error

	// Close releases the underlying connections
	Close()
}

// ProductRepositoryError represents a store failure. Callers treat these as
// recoverable: the pipeline degrades to an empty result set and logs once.
type ProductRepositoryError struct {
	Operation string
	Err       error
	Message   string
}

func (e *ProductRepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Operation + ": " + e.Err.Error()
	}
	return e.Operation + ": unknown error"
}

func (e *ProductRepositoryError) Unwrap() error {
	return e.Err
}

// NewProductRepositoryError creates a new product repository error
func NewProductRepositoryError(operation string, err error, message string) *ProductRepositoryError {
	return &ProductRepositoryError{
		Operation: operation,
		Err:       err,
		Message:   message,
	}
}

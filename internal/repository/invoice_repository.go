package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ozonegraphics/invoice-service/internal/domain"
)

// ErrInvoiceNotFound is returned when an invoice identifier does not exist.
// It is a distinct result, not a storage failure.
var ErrInvoiceNotFound = errors.New("invoice not found")

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// InvoiceRepository defines the interface for invoice data storage operations.
// It is the only component permitted to talk to the document store.
type InvoiceRepository interface {
	// Create persists a new invoice and returns its store-assigned identifier
	Create(ctx context.Context, invoice *domain.Invoice) (string, error)

	// GetAll retrieves all invoices ordered by creation time, most recent first
	GetAll(ctx context.Context) ([]domain.Invoice, error)

	// GetByID retrieves a single invoice by its identifier.
	// Returns ErrInvoiceNotFound when the identifier does not exist.
	GetByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// UpdatePayment merges a new payment status and paid amount into the
	// stored invoice in a single write. All other fields are untouched.
	UpdatePayment(ctx context.Context, invoiceID string, status domain.Status, paidAmount float64) error
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ozonegraphics/invoice-service/internal/docstore"
	"github.com/ozonegraphics/invoice-service/internal/domain"
	"github.com/ozonegraphics/invoice-service/internal/normalize"
)

// orderField is the document field used to sort invoice listings
const orderField = "createdAt"

// DocstoreInvoiceRepository implements InvoiceRepository on a schemaless
// document collection. Raw documents read from the store are passed through
// the normalizer before being returned, so partially-shaped legacy records
// still come back as well-formed invoices.
type DocstoreInvoiceRepository struct {
	collection docstore.Collection
}

// NewDocstoreInvoiceRepository creates a new document-store-backed invoice repository
func NewDocstoreInvoiceRepository(collection docstore.Collection) *DocstoreInvoiceRepository {
	return &DocstoreInvoiceRepository{
		collection: collection,
	}
}

// Create persists a new invoice document and returns its store-assigned identifier
func (r *DocstoreInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) (string, error) {
	doc, err := invoiceToDocument(invoice)
	if err != nil {
		return "", &RepositoryError{
			Op:  "create_invoice",
			Err: err,
		}
	}

	id, err := r.collection.Add(ctx, doc)
	if err != nil {
		return "", &RepositoryError{
			Op:  "create_invoice",
			Err: err,
		}
	}

	return id, nil
}

// GetAll retrieves all invoices ordered by creation time descending.
// An empty store yields an empty slice, not an error.
func (r *DocstoreInvoiceRepository) GetAll(ctx context.Context) ([]domain.Invoice, error) {
	documents, err := r.collection.Query(ctx, orderField, true)
	if err != nil {
		return nil, &RepositoryError{
			Op:  "list_invoices",
			Err: err,
		}
	}

	invoices := make([]domain.Invoice, 0, len(documents))
	for _, doc := range documents {
		invoices = append(invoices, normalize.Invoice(doc.ID, doc.Data))
	}

	return invoices, nil
}

// GetByID retrieves a single invoice by its identifier
func (r *DocstoreInvoiceRepository) GetByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	doc, err := r.collection.Get(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, docstore.ErrDocNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, &RepositoryError{
			Op:  "get_invoice",
			Err: err,
		}
	}

	invoice := normalize.Invoice(invoiceID, doc)
	return &invoice, nil
}

// UpdatePayment merges the payment status and paid amount into the stored
// invoice in a single write, so status can never drift from paidAmount.
func (r *DocstoreInvoiceRepository) UpdatePayment(ctx context.Context, invoiceID string, status domain.Status, paidAmount float64) error {
	err := r.collection.Update(ctx, invoiceID, map[string]interface{}{
		"status":     string(status),
		"paidAmount": paidAmount,
	})
	if err != nil {
		if errors.Is(err, docstore.ErrDocNotFound) {
			return ErrInvoiceNotFound
		}
		return &RepositoryError{
			Op:  "update_payment",
			Err: err,
		}
	}

	return nil
}

// invoiceToDocument converts an invoice into a schemaless document.
// The identifier is stripped: it is assigned by the store, not stored
// inside the document.
func invoiceToDocument(invoice *domain.Invoice) (map[string]interface{}, error) {
	payload, err := json.Marshal(invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice: %w", err)
	}

	doc := map[string]interface{}{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to build invoice document: %w", err)
	}

	delete(doc, "id")
	return doc, nil
}

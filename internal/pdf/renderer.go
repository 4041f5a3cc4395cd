// Package pdf renders invoices and payment receipts as PDF documents.
// Rendering is read-only over an already-materialized invoice.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ozonegraphics/invoice-service/internal/domain"
)

// Renderer defines the interface for exporting invoice artifacts
type Renderer interface {
	// RenderInvoice produces the full invoice document
	RenderInvoice(ctx context.Context, invoice *domain.Invoice) ([]byte, error)

	// RenderReceipt produces the payment receipt card with a thank-you message
	RenderReceipt(ctx context.Context, invoice *domain.Invoice, thankYouMessage string) ([]byte, error)
}

// MarotoRenderer implements Renderer using the maroto PDF engine
type MarotoRenderer struct{}

// NewMarotoRenderer creates a new maroto-backed renderer
func NewMarotoRenderer() *MarotoRenderer {
	return &MarotoRenderer{}
}

// money formats a currency amount for display
func money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// shortID returns the display form of an invoice identifier
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

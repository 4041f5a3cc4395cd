package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ozonegraphics/invoice-service/internal/domain"
	"github.com/ozonegraphics/invoice-service/internal/gemini"
	"github.com/ozonegraphics/invoice-service/internal/pdf"
	"github.com/ozonegraphics/invoice-service/internal/repository"
)

// InvoiceServiceError represents an error in the invoice service
type InvoiceServiceError struct {
	Op  string
	Err error
}

func (e *InvoiceServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *InvoiceServiceError) Unwrap() error {
	return e.Err
}

// ValidationError represents rejected caller input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ShopIdentity holds the per-deployment shop constants copied onto every
// invoice at creation time. Denormalizing them keeps historical invoices
// accurate even if the configuration changes later.
type ShopIdentity struct {
	ShopName   string
	GPayNumber string
}

// CreateInvoiceInput carries the caller-supplied fields for a new invoice
type CreateInvoiceInput struct {
	ClientName string
	IssueDate  string // Format: YYYY-MM-DD
	DueDate    string // Format: YYYY-MM-DD
	Items      []domain.ServiceItem
	Discount   float64
}

// InvoiceService defines the interface for invoice business logic
type InvoiceService interface {
	// CreateInvoice validates the input, derives totals, and persists a new
	// unpaid invoice stamped with the shop identity
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)

	// ListInvoices returns all invoices, most recent first
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)

	// GetInvoice returns a single invoice by identifier
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// RecordPayment updates the paid amount and derives the new payment status
	RecordPayment(ctx context.Context, invoiceID string, paidAmount float64) (*domain.Invoice, error)

	// ThankYouMessage produces a thank-you message for the invoice's client,
	// falling back to a fixed string when generation is unavailable
	ThankYouMessage(ctx context.Context, invoiceID string) (string, error)

	// InvoicePDF exports the invoice as a PDF document
	InvoicePDF(ctx context.Context, invoiceID string) ([]byte, error)

	// ReceiptPDF exports the payment receipt as a PDF document
	ReceiptPDF(ctx context.Context, invoiceID string) ([]byte, error)
}

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	repository   repository.InvoiceRepository
	geminiClient *gemini.Client
	renderer     pdf.Renderer
	shop         ShopIdentity
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo repository.InvoiceRepository, geminiClient *gemini.Client, renderer pdf.Renderer, shop ShopIdentity) InvoiceService {
	return &InvoiceServiceImpl{
		repository:   repo,
		geminiClient: geminiClient,
		renderer:     renderer,
		shop:         shop,
	}
}

// CreateInvoice validates the input, derives the financial fields, and
// persists the invoice. Totals are always recomputed server-side; the
// caller-supplied discount is the only financial input trusted as-is.
func (s *InvoiceServiceImpl) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	items := make([]domain.ServiceItem, len(input.Items))
	copy(items, input.Items)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}

	subtotal := domain.ComputeSubtotal(items)
	total := domain.ComputeTotal(subtotal, input.Discount)

	invoice := domain.NewInvoice()
	invoice.ClientName = input.ClientName
	invoice.IssueDate = input.IssueDate
	invoice.DueDate = input.DueDate
	invoice.Items = items
	invoice.Subtotal = subtotal
	invoice.Discount = input.Discount
	invoice.Total = total
	invoice.Status = domain.StatusUnpaid
	invoice.PaidAmount = 0
	invoice.ShopName = s.shop.ShopName
	invoice.GPayNumber = s.shop.GPayNumber
	invoice.CreatedAt = time.Now().UnixMilli()

	id, err := s.repository.Create(ctx, invoice)
	if err != nil {
		return nil, &InvoiceServiceError{
			Op:  "create_invoice",
			Err: err,
		}
	}

	invoice.ID = id
	return invoice, nil
}

// ListInvoices returns all invoices, most recent first
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, &InvoiceServiceError{
			Op:  "list_invoices",
			Err: err,
		}
	}
	return invoices, nil
}

// GetInvoice returns a single invoice by identifier
func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.repository.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// RecordPayment sets the paid amount on an invoice and derives the new
// payment status from it against the stored total. Both fields are written
// in a single merge so status cannot drift from paidAmount.
func (s *InvoiceServiceImpl) RecordPayment(ctx context.Context, invoiceID string, paidAmount float64) (*domain.Invoice, error) {
	if paidAmount < 0 {
		return nil, &ValidationError{
			Field:   "paidAmount",
			Message: "must not be negative",
		}
	}

	invoice, err := s.repository.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	status := domain.ResolveStatus(invoice.Total, paidAmount)

	if err := s.repository.UpdatePayment(ctx, invoiceID, status, paidAmount); err != nil {
		return nil, err
	}

	invoice.Status = status
	invoice.PaidAmount = paidAmount
	return invoice, nil
}

// ThankYouMessage generates a thank-you message for the invoice's client.
// Generation failures and a missing API key both degrade to the fixed
// fallback string; they are never surfaced as errors.
func (s *InvoiceServiceImpl) ThankYouMessage(ctx context.Context, invoiceID string) (string, error) {
	invoice, err := s.repository.GetByID(ctx, invoiceID)
	if err != nil {
		return "", err
	}

	return s.thankYouFor(ctx, invoice), nil
}

// InvoicePDF exports the invoice as a PDF document
func (s *InvoiceServiceImpl) InvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, err := s.repository.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	document, err := s.renderer.RenderInvoice(ctx, invoice)
	if err != nil {
		return nil, &InvoiceServiceError{
			Op:  "render_invoice_pdf",
			Err: err,
		}
	}

	return document, nil
}

// ReceiptPDF exports the payment receipt as a PDF document
func (s *InvoiceServiceImpl) ReceiptPDF(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, err := s.repository.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	message := s.thankYouFor(ctx, invoice)

	document, err := s.renderer.RenderReceipt(ctx, invoice, message)
	if err != nil {
		return nil, &InvoiceServiceError{
			Op:  "render_receipt_pdf",
			Err: err,
		}
	}

	return document, nil
}

// thankYouFor asks the generative client for a message and substitutes the
// deterministic fallback on any failure.
func (s *InvoiceServiceImpl) thankYouFor(ctx context.Context, invoice *domain.Invoice) string {
	if s.geminiClient == nil {
		return gemini.FallbackThankYouMessage(invoice.ClientName, invoice.ShopName)
	}

	message, err := s.geminiClient.GenerateThankYouMessage(ctx, invoice.ClientName, invoice.ShopName)
	if err != nil {
		log.Printf("Thank-you message generation failed, using fallback: %v", err)
		return gemini.FallbackThankYouMessage(invoice.ClientName, invoice.ShopName)
	}

	return message
}

// validateCreateInput enforces the creation-form constraints. These checks
// live here on purpose: the normalizer and domain computations stay total
// and never reject data.
func validateCreateInput(input CreateInvoiceInput) error {
	if input.ClientName == "" {
		return &ValidationError{Field: "clientName", Message: "is required"}
	}
	if input.IssueDate == "" {
		return &ValidationError{Field: "issueDate", Message: "is required"}
	}
	if input.DueDate == "" {
		return &ValidationError{Field: "dueDate", Message: "is required"}
	}
	if len(input.Items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	if input.Discount < 0 {
		return &ValidationError{Field: "discount", Message: "must not be negative"}
	}

	for i, item := range input.Items {
		if item.Description == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("items[%d].description", i),
				Message: "is required",
			}
		}
		if item.Quantity < 1 {
			return &ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "must be at least 1",
			}
		}
		if item.Price < 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("items[%d].price", i),
				Message: "must not be negative",
			}
		}
	}

	return nil
}

package model

import (
	"github.com/ozonegraphics/invoice-service/internal/domain"
)

// ServiceItemDTO represents a single billable line for data transfer
type ServiceItemDTO struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceDTO represents a fully-populated invoice for data transfer
type InvoiceDTO struct {
	ID         string           `json:"id"`
	ClientName string           `json:"clientName"`
	IssueDate  string           `json:"issueDate"` // Format: YYYY-MM-DD
	DueDate    string           `json:"dueDate"`   // Format: YYYY-MM-DD
	Items      []ServiceItemDTO `json:"items"`
	Subtotal   float64          `json:"subtotal"`
	Discount   float64          `json:"discount"`
	Total      float64          `json:"total"`
	Status     string           `json:"status"`
	PaidAmount float64          `json:"paidAmount"`
	AmountDue  float64          `json:"amountDue"`
	ShopName   string           `json:"shopName"`
	GPayNumber string           `json:"gPayNumber"`
	CreatedAt  int64            `json:"createdAt"` // Unix milliseconds
}

// CreateInvoiceRequest represents an incoming invoice creation request
type CreateInvoiceRequest struct {
	ClientName string           `json:"clientName"`
	IssueDate  string           `json:"issueDate"` // Format: YYYY-MM-DD
	DueDate    string           `json:"dueDate"`   // Format: YYYY-MM-DD
	Items      []ServiceItemDTO `json:"items"`
	Discount   float64          `json:"discount"`
}

// UpdatePaymentRequest represents a payment-status update request
type UpdatePaymentRequest struct {
	PaidAmount float64 `json:"paidAmount"`
}

// InvoiceListResponse represents the response for an invoice listing
type InvoiceListResponse struct {
	Data []InvoiceDTO `json:"data"`
}

// ThankYouResponse represents a generated thank-you message
type ThankYouResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FromDomain converts a domain Invoice to an InvoiceDTO
func (dto *InvoiceDTO) FromDomain(invoice *domain.Invoice) {
	dto.ID = invoice.ID
	dto.ClientName = invoice.ClientName
	dto.IssueDate = invoice.IssueDate
	dto.DueDate = invoice.DueDate
	dto.Subtotal = invoice.Subtotal
	dto.Discount = invoice.Discount
	dto.Total = invoice.Total
	dto.Status = string(invoice.Status)
	dto.PaidAmount = invoice.PaidAmount
	dto.AmountDue = invoice.AmountDue()
	dto.ShopName = invoice.ShopName
	dto.GPayNumber = invoice.GPayNumber
	dto.CreatedAt = invoice.CreatedAt

	// Convert service items
	dto.Items = make([]ServiceItemDTO, len(invoice.Items))
	for i, item := range invoice.Items {
		dto.Items[i] = ServiceItemDTO{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
}

// ToDomainItems converts the request items into domain service items
func (req *CreateInvoiceRequest) ToDomainItems() []domain.ServiceItem {
	items := make([]domain.ServiceItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.ServiceItem{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	return items
}

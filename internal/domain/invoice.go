package domain

// Status represents the payment status of an invoice
type Status string

// Payment status values as stored in invoice documents
const (
	StatusPaid          Status = "Paid"
	StatusUnpaid        Status = "Unpaid"
	StatusPartiallyPaid Status = "Partially Paid"
)

// ServiceItem represents a single billable line on an invoice
type ServiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Invoice represents the core domain entity for a client invoice
type Invoice struct {
	ID         string        `json:"id"`
	ClientName string        `json:"clientName"`
	IssueDate  string        `json:"issueDate"` // Format: YYYY-MM-DD
	DueDate    string        `json:"dueDate"`   // Format: YYYY-MM-DD
	Items      []ServiceItem `json:"items"`
	Subtotal   float64       `json:"subtotal"`
	Discount   float64       `json:"discount"`
	Total      float64       `json:"total"`
	Status     Status        `json:"status"`
	PaidAmount float64       `json:"paidAmount"`
	ShopName   string        `json:"shopName"`
	GPayNumber string        `json:"gPayNumber"`
	CreatedAt  int64         `json:"createdAt"` // Unix milliseconds
}

// NewInvoice creates a new invoice with default values
func NewInvoice() *Invoice {
	return &Invoice{
		Items:  make([]ServiceItem, 0),
		Status: StatusUnpaid,
	}
}

// AddItem appends a service item to the invoice
func (i *Invoice) AddItem(item ServiceItem) {
	i.Items = append(i.Items, item)
}

// AmountDue returns the outstanding balance on the invoice
func (i *Invoice) AmountDue() float64 {
	return i.Total - i.PaidAmount
}

// ComputeSubtotal returns the sum of quantity*price over the items.
// An empty item list yields 0. The input is not mutated.
func ComputeSubtotal(items []ServiceItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Quantity * item.Price
	}
	return subtotal
}

// ComputeTotal returns the invoice total after applying a flat discount.
// The result is clamped at 0 so an over-large discount never produces a
// negative total.
func ComputeTotal(subtotal, discount float64) float64 {
	total := subtotal - discount
	if total < 0 {
		return 0
	}
	return total
}

// ResolveStatus derives the payment status from the invoice total and the
// amount paid so far. The Paid threshold is inclusive: an invoice with
// total 0 and nothing paid resolves to Paid, since nothing is owed.
func ResolveStatus(total, paidAmount float64) Status {
	switch {
	case paidAmount >= total:
		return StatusPaid
	case paidAmount > 0:
		return StatusPartiallyPaid
	default:
		return StatusUnpaid
	}
}

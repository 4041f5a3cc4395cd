package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ozonegraphics/invoice-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceEmptyDocument(t *testing.T) {
	invoice := Invoice("inv-1", map[string]interface{}{})

	assert.Equal(t, "inv-1", invoice.ID)
	assert.Equal(t, "", invoice.ClientName)
	assert.Empty(t, invoice.Items)
	assert.NotNil(t, invoice.Items)
	assert.Equal(t, float64(0), invoice.Subtotal)
	assert.Equal(t, float64(0), invoice.Discount)
	assert.Equal(t, float64(0), invoice.Total)
	assert.Equal(t, domain.StatusUnpaid, invoice.Status)
	assert.Equal(t, float64(0), invoice.PaidAmount)

	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, today, invoice.IssueDate)
	assert.Equal(t, today, invoice.DueDate)
	assert.Greater(t, invoice.CreatedAt, int64(0))
}

func TestInvoiceNilDocument(t *testing.T) {
	invoice := Invoice("inv-1", nil)

	assert.Equal(t, "inv-1", invoice.ID)
	assert.Equal(t, domain.StatusUnpaid, invoice.Status)
}

func TestInvoiceFullDocument(t *testing.T) {
	doc := map[string]interface{}{
		"clientName": "Acme Corp",
		"issueDate":  "2025-01-15",
		"dueDate":    "2025-02-15",
		"items": []interface{}{
			map[string]interface{}{
				"id":          "item-1",
				"description": "Design",
				"quantity":    float64(2),
				"price":       float64(50),
			},
		},
		"subtotal":   float64(100),
		"discount":   float64(10),
		"total":      float64(90),
		"status":     "Partially Paid",
		"paidAmount": float64(40),
		"shopName":   "Ozone Graphics",
		"gPayNumber": "9744460317",
		"createdAt":  float64(1736899200000),
	}

	invoice := Invoice("inv-2", doc)

	assert.Equal(t, "Acme Corp", invoice.ClientName)
	assert.Equal(t, "2025-01-15", invoice.IssueDate)
	assert.Equal(t, "2025-02-15", invoice.DueDate)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "item-1", invoice.Items[0].ID)
	assert.Equal(t, float64(100), invoice.Subtotal)
	assert.Equal(t, float64(90), invoice.Total)
	assert.Equal(t, domain.StatusPartiallyPaid, invoice.Status)
	assert.Equal(t, float64(40), invoice.PaidAmount)
	assert.Equal(t, "Ozone Graphics", invoice.ShopName)
	assert.Equal(t, "9744460317", invoice.GPayNumber)
	assert.Equal(t, int64(1736899200000), invoice.CreatedAt)
}

func TestInvoiceRecomputesMissingDerivedValues(t *testing.T) {
	doc := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"description": "Design", "quantity": float64(2), "price": float64(50)},
			map[string]interface{}{"description": "Print", "quantity": float64(1), "price": float64(30)},
		},
		"discount": float64(10),
	}

	invoice := Invoice("inv-3", doc)

	assert.Equal(t, float64(130), invoice.Subtotal)
	assert.Equal(t, float64(120), invoice.Total)
}

func TestInvoiceTrustsStoredDerivedValues(t *testing.T) {
	// A stored total wins even when it disagrees with subtotal-discount,
	// so historical invoices do not drift.
	doc := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"description": "Design", "quantity": float64(2), "price": float64(50)},
		},
		"subtotal": float64(999),
		"discount": float64(10),
		"total":    float64(555),
	}

	invoice := Invoice("inv-4", doc)

	assert.Equal(t, float64(999), invoice.Subtotal)
	assert.Equal(t, float64(555), invoice.Total)
}

func TestInvoiceItemDefaults(t *testing.T) {
	doc := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{
				"description": "Design",
			},
		},
	}

	invoice := Invoice("inv-5", doc)

	require.Len(t, invoice.Items, 1)
	item := invoice.Items[0]
	assert.NotEmpty(t, item.ID, "a fresh identifier must be synthesized")
	assert.Equal(t, "Design", item.Description)
	assert.Equal(t, float64(1), item.Quantity)
	assert.Equal(t, float64(0), item.Price)
}

func TestInvoiceSkipsMalformedItems(t *testing.T) {
	doc := map[string]interface{}{
		"items": []interface{}{
			"not an item",
			map[string]interface{}{"description": "Print", "quantity": float64(1), "price": float64(30)},
		},
	}

	invoice := Invoice("inv-6", doc)

	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "Print", invoice.Items[0].Description)
}

func TestInvoiceNumericCoercion(t *testing.T) {
	doc := map[string]interface{}{
		"subtotal":   json.Number("130"),
		"discount":   int64(10),
		"total":      int(120),
		"paidAmount": float32(60),
	}

	invoice := Invoice("inv-7", doc)

	assert.Equal(t, float64(130), invoice.Subtotal)
	assert.Equal(t, float64(10), invoice.Discount)
	assert.Equal(t, float64(120), invoice.Total)
	assert.Equal(t, float64(60), invoice.PaidAmount)
}

func TestInvoiceIgnoresWrongTypes(t *testing.T) {
	doc := map[string]interface{}{
		"clientName": 42,
		"subtotal":   "not a number",
		"status":     7,
		"items":      "not a list",
	}

	invoice := Invoice("inv-8", doc)

	assert.Equal(t, "", invoice.ClientName)
	assert.Equal(t, float64(0), invoice.Subtotal)
	assert.Equal(t, domain.StatusUnpaid, invoice.Status)
	assert.Empty(t, invoice.Items)
}

// Package normalize reconstructs well-formed invoices from loosely-shaped
// stored documents. Documents may predate newer fields or carry partial
// data; every absent field gets a documented default so reads never fail
// due to schema drift.
package normalize

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ozonegraphics/invoice-service/internal/domain"
)

// Invoice builds a fully-populated invoice from an arbitrary stored
// document. It is a total function: whatever shape the document has,
// it degrades to defaults rather than returning an error.
//
// Stored subtotal and total values are trusted over recomputation, so
// historical invoices do not drift if computation rules change; they are
// only derived when the document lacks them.
func Invoice(id string, doc map[string]interface{}) domain.Invoice {
	if doc == nil {
		doc = map[string]interface{}{}
	}

	items := normalizeItems(doc["items"])
	discount := numberOr(doc["discount"], 0)

	subtotal, ok := number(doc["subtotal"])
	if !ok {
		subtotal = domain.ComputeSubtotal(items)
	}

	total, ok := number(doc["total"])
	if !ok {
		total = domain.ComputeTotal(subtotal, discount)
	}

	today := time.Now().UTC().Format("2006-01-02")

	return domain.Invoice{
		ID:         id,
		ClientName: stringOr(doc["clientName"], ""),
		IssueDate:  stringOr(doc["issueDate"], today),
		DueDate:    stringOr(doc["dueDate"], today),
		Items:      items,
		Subtotal:   subtotal,
		Discount:   discount,
		Total:      total,
		Status:     statusOr(doc["status"], domain.StatusUnpaid),
		PaidAmount: numberOr(doc["paidAmount"], 0),
		ShopName:   stringOr(doc["shopName"], ""),
		GPayNumber: stringOr(doc["gPayNumber"], ""),
		CreatedAt:  int64(numberOr(doc["createdAt"], float64(time.Now().UnixMilli()))),
	}
}

// normalizeItems coerces the stored items value into service items,
// defaulting each field and synthesizing identifiers for items that
// lack one, to keep list keys stable downstream.
func normalizeItems(value interface{}) []domain.ServiceItem {
	items := []domain.ServiceItem{}

	raw, ok := value.([]interface{})
	if !ok {
		return items
	}

	for _, entry := range raw {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		item := domain.ServiceItem{
			ID:          stringOr(fields["id"], ""),
			Description: stringOr(fields["description"], ""),
			Quantity:    numberOr(fields["quantity"], 1),
			Price:       numberOr(fields["price"], 0),
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}

		items = append(items, item)
	}

	return items
}

// number extracts a numeric value from a decoded JSON field. Depending on
// the decoder configuration numbers may arrive as float64, integer types,
// or json.Number.
func number(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func numberOr(value interface{}, fallback float64) float64 {
	if n, ok := number(value); ok {
		return n
	}
	return fallback
}

func stringOr(value interface{}, fallback string) string {
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return fallback
}

func statusOr(value interface{}, fallback domain.Status) domain.Status {
	if s, ok := value.(string); ok && s != "" {
		return domain.Status(s)
	}
	return fallback
}

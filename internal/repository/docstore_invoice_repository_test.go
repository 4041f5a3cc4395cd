package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/ozonegraphics/invoice-service/internal/docstore"
	"github.com/ozonegraphics/invoice-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCollection is an in-memory stand-in for a document collection
type fakeCollection struct {
	docs    map[string]map[string]interface{}
	nextID  int
	failAll bool
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{docs: map[string]map[string]interface{}{}}
}

func (c *fakeCollection) Add(ctx context.Context, data map[string]interface{}) (string, error) {
	if c.failAll {
		return "", errors.New("store unreachable")
	}
	c.nextID++
	id := fmt.Sprintf("doc-%d", c.nextID)
	c.docs[id] = data
	return id, nil
}

func (c *fakeCollection) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	if c.failAll {
		return nil, errors.New("store unreachable")
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, docstore.ErrDocNotFound
	}
	return doc, nil
}

func (c *fakeCollection) Query(ctx context.Context, orderBy string, descending bool) ([]docstore.Document, error) {
	if c.failAll {
		return nil, errors.New("store unreachable")
	}
	documents := make([]docstore.Document, 0, len(c.docs))
	for id, data := range c.docs {
		documents = append(documents, docstore.Document{ID: id, Data: data})
	}
	sort.Slice(documents, func(i, j int) bool {
		a, _ := documents[i].Data[orderBy].(float64)
		b, _ := documents[j].Data[orderBy].(float64)
		if descending {
			return a > b
		}
		return a < b
	})
	return documents, nil
}

func (c *fakeCollection) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if c.failAll {
		return errors.New("store unreachable")
	}
	doc, ok := c.docs[id]
	if !ok {
		return docstore.ErrDocNotFound
	}
	for key, value := range fields {
		doc[key] = value
	}
	return nil
}

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		ClientName: "Acme Corp",
		IssueDate:  "2025-01-15",
		DueDate:    "2025-02-15",
		Items: []domain.ServiceItem{
			{ID: "item-1", Description: "Design", Quantity: 2, Price: 50},
			{ID: "item-2", Description: "Print", Quantity: 1, Price: 30},
		},
		Subtotal:   130,
		Discount:   10,
		Total:      120,
		Status:     domain.StatusUnpaid,
		PaidAmount: 0,
		ShopName:   "Ozone Graphics",
		GPayNumber: "9744460317",
		CreatedAt:  1736899200000,
	}
}

func TestCreateAndGetByIDRoundTrip(t *testing.T) {
	repo := NewDocstoreInvoiceRepository(newFakeCollection())
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleInvoice())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Acme Corp", got.ClientName)
	assert.Equal(t, "2025-01-15", got.IssueDate)
	assert.Equal(t, "2025-02-15", got.DueDate)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Design", got.Items[0].Description)
	assert.Equal(t, float64(130), got.Subtotal)
	assert.Equal(t, float64(10), got.Discount)
	assert.Equal(t, float64(120), got.Total)
	assert.Equal(t, domain.StatusUnpaid, got.Status)
	assert.Equal(t, float64(0), got.PaidAmount)
	assert.Equal(t, "Ozone Graphics", got.ShopName)
	assert.Equal(t, "9744460317", got.GPayNumber)
	assert.Equal(t, int64(1736899200000), got.CreatedAt)
}

func TestCreateStripsIdentifierFromDocument(t *testing.T) {
	collection := newFakeCollection()
	repo := NewDocstoreInvoiceRepository(collection)

	invoice := sampleInvoice()
	invoice.ID = "stale-id"

	id, err := repo.Create(context.Background(), invoice)
	require.NoError(t, err)

	_, hasID := collection.docs[id]["id"]
	assert.False(t, hasID, "the store assigns identifiers; none may be stored in the document")
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewDocstoreInvoiceRepository(newFakeCollection())

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestGetByIDNormalizesPartialDocument(t *testing.T) {
	collection := newFakeCollection()
	collection.docs["doc-legacy"] = map[string]interface{}{
		"clientName": "Old Client",
		"items": []interface{}{
			map[string]interface{}{"description": "Flyers"},
		},
	}

	repo := NewDocstoreInvoiceRepository(collection)

	got, err := repo.GetByID(context.Background(), "doc-legacy")
	require.NoError(t, err)

	assert.Equal(t, "Old Client", got.ClientName)
	require.Len(t, got.Items, 1)
	assert.NotEmpty(t, got.Items[0].ID)
	assert.Equal(t, float64(1), got.Items[0].Quantity)
	assert.Equal(t, domain.StatusUnpaid, got.Status)
	assert.Equal(t, float64(0), got.Subtotal)
	assert.Equal(t, float64(0), got.Total)
}

func TestGetAllEmptyStore(t *testing.T) {
	repo := NewDocstoreInvoiceRepository(newFakeCollection())

	invoices, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, invoices)
	assert.Empty(t, invoices)
}

func TestGetAllOrdersByCreatedAtDescending(t *testing.T) {
	collection := newFakeCollection()
	repo := NewDocstoreInvoiceRepository(collection)
	ctx := context.Background()

	older := sampleInvoice()
	older.ClientName = "Older"
	older.CreatedAt = 1000
	_, err := repo.Create(ctx, older)
	require.NoError(t, err)

	newer := sampleInvoice()
	newer.ClientName = "Newer"
	newer.CreatedAt = 2000
	_, err = repo.Create(ctx, newer)
	require.NoError(t, err)

	invoices, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "Newer", invoices[0].ClientName)
	assert.Equal(t, "Older", invoices[1].ClientName)
}

func TestUpdatePayment(t *testing.T) {
	collection := newFakeCollection()
	repo := NewDocstoreInvoiceRepository(collection)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleInvoice())
	require.NoError(t, err)

	err = repo.UpdatePayment(ctx, id, domain.StatusPaid, 120)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, got.Status)
	assert.Equal(t, float64(120), got.PaidAmount)

	// Only the payment fields may change
	assert.Equal(t, "Acme Corp", got.ClientName)
	assert.Equal(t, float64(120), got.Total)
	require.Len(t, got.Items, 2)
}

func TestUpdatePaymentNotFound(t *testing.T) {
	repo := NewDocstoreInvoiceRepository(newFakeCollection())

	err := repo.UpdatePayment(context.Background(), "missing", domain.StatusPaid, 120)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestStorageFailuresPropagate(t *testing.T) {
	collection := newFakeCollection()
	collection.failAll = true
	repo := NewDocstoreInvoiceRepository(collection)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleInvoice())
	assert.Error(t, err)

	_, err = repo.GetAll(ctx)
	assert.Error(t, err)

	_, err = repo.GetByID(ctx, "doc-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvoiceNotFound)

	err = repo.UpdatePayment(ctx, "doc-1", domain.StatusPaid, 120)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvoiceNotFound)
}

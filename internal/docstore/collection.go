package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDocNotFound is returned when a document identifier does not exist
// in the collection.
var ErrDocNotFound = errors.New("document not found")

// Document is a schemaless record read back from a collection
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Collection defines the interface for a keyed schemaless document collection
type Collection interface {
	// Add persists a new document and returns its store-assigned identifier
	Add(ctx context.Context, data map[string]interface{}) (string, error)

	// Get retrieves a single document by identifier.
	// Returns ErrDocNotFound when the identifier does not exist.
	Get(ctx context.Context, id string) (map[string]interface{}, error)

	// Query retrieves all documents ordered by a top-level field
	Query(ctx context.Context, orderBy string, descending bool) ([]Document, error)

	// Update merges the given fields into an existing document.
	// Only the named fields change; all others are untouched.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

// Field names used in ORDER BY clauses cannot be bound as parameters,
// so they are restricted to plain identifiers.
var orderByFieldPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresCollection implements Collection on a PostgreSQL JSONB table
type PostgresCollection struct {
	pool *pgxpool.Pool
	name string
}

// Add persists a new document and returns its store-assigned identifier
func (c *PostgresCollection) Add(ctx context.Context, data map[string]interface{}) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	var id string
	err = c.pool.QueryRow(ctx, `
		INSERT INTO documents (collection, data)
		VALUES ($1, $2)
		RETURNING id
	`, c.name, payload).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

// Get retrieves a single document by identifier
func (c *PostgresCollection) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	var payload []byte
	err := c.pool.QueryRow(ctx, `
		SELECT data
		FROM documents
		WHERE collection = $1 AND id = $2
	`, c.name, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return decodeDocument(payload)
}

// Query retrieves all documents in the collection ordered by a top-level
// field. Numeric ordering is used so millisecond timestamps sort correctly.
func (c *PostgresCollection) Query(ctx context.Context, orderBy string, descending bool) ([]Document, error) {
	if !orderByFieldPattern.MatchString(orderBy) {
		return nil, fmt.Errorf("invalid order-by field: %s", orderBy)
	}

	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, data
		FROM documents
		WHERE collection = $1
		ORDER BY (data->>'%s')::numeric %s NULLS LAST
	`, orderBy, direction)

	rows, err := c.pool.Query(ctx, query, c.name)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	documents := []Document{}
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		data, err := decodeDocument(payload)
		if err != nil {
			return nil, err
		}

		documents = append(documents, Document{ID: id, Data: data})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return documents, nil
}

// Update merges the given fields into an existing document using a JSONB
// concatenation, so the merge is atomic per document.
func (c *PostgresCollection) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal update fields: %w", err)
	}

	commandTag, err := c.pool.Exec(ctx, `
		UPDATE documents
		SET data = data || $3
		WHERE collection = $1 AND id = $2
	`, c.name, id, payload)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrDocNotFound
	}

	return nil
}

// decodeDocument unmarshals a JSONB payload into a key-value mapping
func decodeDocument(payload []byte) (map[string]interface{}, error) {
	data := map[string]interface{}{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return data, nil
}

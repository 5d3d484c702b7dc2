package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/xid"

	"github.com/forgemycode/forgemycode/internal/model"
	"github.com/forgemycode/forgemycode/internal/repository"
)

// compile-time check that *DB implements repository.ResourceRepository
var _ repository.ResourceRepository = (*DB)(nil)

// CreateResource inserts a learning resource.
func (db *DB) CreateResource(ctx context.Context, resource *model.Resource) error {
	resource.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO resources (id, title, description, image_url, link, category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		resource.ID,
		resource.Title,
		resource.Description,
		resource.ImageURL,
		resource.Link,
		resource.Category,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting resource %q: %w", resource.Title, err)
	}
	return nil
}

// ListResources returns resources, optionally filtered by category.
// An empty category means all resources.
func (db *DB) ListResources(ctx context.Context, category string) ([]model.Resource, error) {
	query := `SELECT id, title, description, image_url, link, category FROM resources`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY title`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing resources: %w", err)
	}
	defer rows.Close()

	out := []model.Resource{}
	for rows.Next() {
		var r model.Resource
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.ImageURL, &r.Link, &r.Category); err != nil {
			return nil, fmt.Errorf("sqlite: scanning resource: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating resources: %w", err)
	}
	return out, nil
}

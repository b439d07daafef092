package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/store"
)

// categoryColumns is the ordered list of columns selected in category queries.
// Must match the scan order in scanCategory.
const categoryColumns = `id, created_at, updated_at, name, slug, description, icon, color, sort_order`

// scanCategory scans a sql.Row (or sql.Rows via its Scan method) into a domain.Category.
func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var c domain.Category

	var (
		createdAt   string
		updatedAt   string
		description sql.NullString
		icon        sql.NullString
		color       sql.NullString
	)

	err := scanner.Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
		&c.Name,
		&c.Slug,
		&description,
		&icon,
		&color,
		&c.SortOrder,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	// Optional strings.
	if description.Valid {
		c.Description = description.String
	}
	if icon.Valid {
		c.Icon = icon.String
	}
	if color.Valid {
		c.Color = color.String
	}

	return &c, nil
}

// CreateCategory inserts a new category into the database.
// Returns store.ErrAlreadyExists if the category ID or slug already exists.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (
			id, created_at, updated_at, name, slug, description, icon, color, sort_order
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
		c.Name,
		c.Slug,
		nullString(c.Description),
		nullString(c.Icon),
		nullString(c.Color),
		c.SortOrder,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetCategory retrieves a category by ID.
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategoryBySlug retrieves a category by slug.
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns all categories ordered by sort_order, then name.
// Each category carries the count of its published tools.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.fillToolCounts(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// fillToolCounts populates ToolCount with published tool counts per category.
func (s *Store) fillToolCounts(ctx context.Context, categories []*domain.Category) error {
	if len(categories) == 0 {
		return nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, count(*)
		FROM tools
		WHERE status = ?
		GROUP BY category_id`,
		domain.ToolStatusPublished)
	if err != nil {
		return err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var categoryID string
		var count int
		if err := rows.Scan(&categoryID, &count); err != nil {
			return err
		}
		counts[categoryID] = count
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, c := range categories {
		c.ToolCount = counts[c.ID]
	}
	return nil
}

// UpdateCategory performs a full row update on an existing category.
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			created_at = ?,
			updated_at = ?,
			name = ?,
			slug = ?,
			description = ?,
			icon = ?,
			color = ?,
			sort_order = ?
		WHERE id = ?`,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
		c.Name,
		c.Slug,
		nullString(c.Description),
		nullString(c.Icon),
		nullString(c.Color),
		c.SortOrder,
		c.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteCategory performs a hard delete of a category by ID.
// Fails if any tool still references the category (foreign key restraint).
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrInvalidInput.WithMessage("category still has tools")
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

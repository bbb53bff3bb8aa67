package repositories

import (
	"context"
	"errors"
	"fmt"

	"bistro/internal/common"
	"bistro/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	List(ctx context.Context, filter *models.MenuItemFilter) ([]*models.MenuItem, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	SetImageObject(ctx context.Context, id uuid.UUID, object string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type menuItemRepo struct {
	db Querier
}

func NewMenuItemRepo(db Querier) MenuItemRepository {
	return &menuItemRepo{db: db}
}

func (r *menuItemRepo) Create(ctx context.Context, item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, title, price, featured, category_id, image_object, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.Title, item.Price, item.Featured,
		item.CategoryID, item.ImageObject)
	return err
}

func (r *menuItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `
		SELECT id, title, price, featured, category_id, image_object, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Title, &item.Price, &item.Featured,
		&item.CategoryID, &item.ImageObject, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: menu item", common.ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (r *menuItemRepo) List(ctx context.Context, filter *models.MenuItemFilter) ([]*models.MenuItem, error) {
	order := "m.title ASC"
	switch filter.OrderByPrice {
	case "asc":
		order = "m.price ASC"
	case "desc":
		order = "m.price DESC"
	}

	query := `
		SELECT m.id, m.title, m.price, m.featured, m.category_id, m.image_object, m.created_at, m.updated_at
		FROM menu_items m
		JOIN categories c ON c.id = m.category_id
		WHERE ($1 = '' OR c.slug = $1)
		ORDER BY ` + order + `
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, filter.CategorySlug, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Price, &item.Featured,
			&item.CategoryID, &item.ImageObject, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuItemRepo) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	query := `UPDATE menu_items SET featured = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, featured, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: menu item", common.ErrNotFound)
	}
	return nil
}

func (r *menuItemRepo) SetImageObject(ctx context.Context, id uuid.UUID, object string) error {
	query := `UPDATE menu_items SET image_object = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, object, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: menu item", common.ErrNotFound)
	}
	return nil
}

func (r *menuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM menu_items WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: menu item", common.ErrNotFound)
	}
	return nil
}

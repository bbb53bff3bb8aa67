package repositories

import (
	"context"
	"time"

	"bistro/internal/models"

	"github.com/google/uuid"
)

type CartRepository interface {
	Upsert(ctx context.Context, line *models.CartLine) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CartLine, error)
	ClearByUser(ctx context.Context, userID uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type cartRepo struct {
	db Querier
}

func NewCartRepo(db Querier) CartRepository {
	return &cartRepo{db: db}
}

// Upsert keeps one row per (user, menu item): adding an item already in the
// cart replaces its quantity and prices rather than inserting a second line.
func (r *cartRepo) Upsert(ctx context.Context, line *models.CartLine) error {
	query := `
		INSERT INTO cart_lines (id, user_id, menuitem_id, quantity, unit_price, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, menuitem_id)
		DO UPDATE SET quantity = $4, unit_price = $5, price = $6
	`
	_, err := r.db.Exec(ctx, query, line.ID, line.UserID, line.MenuItemID,
		line.Quantity, line.UnitPrice, line.Price)
	return err
}

func (r *cartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CartLine, error) {
	query := `
		SELECT id, user_id, menuitem_id, quantity, unit_price, price, created_at
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.CartLine
	for rows.Next() {
		line := &models.CartLine{}
		if err := rows.Scan(&line.ID, &line.UserID, &line.MenuItemID, &line.Quantity,
			&line.UnitPrice, &line.Price, &line.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *cartRepo) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM cart_lines WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *cartRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM cart_lines WHERE created_at < $1`
	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

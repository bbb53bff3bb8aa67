package repositories

import (
	"context"

	"bistro/internal/models"

	"github.com/google/uuid"
)

type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderLineItem, error)
	ListByOrderOwner(ctx context.Context, userID uuid.UUID) ([]*models.OrderLineItem, error)
}

type orderItemRepo struct {
	db Querier
}

func NewOrderItemRepo(db Querier) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderLineItem, error) {
	query := `
		SELECT id, order_id, menuitem_id, quantity, unit_price, price, created_at
		FROM order_line_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderLineItem
	for rows.Next() {
		item := &models.OrderLineItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity,
			&item.UnitPrice, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListByOrderOwner returns every line item across all orders placed by the
// given user, newest order first.
func (r *orderItemRepo) ListByOrderOwner(ctx context.Context, userID uuid.UUID) ([]*models.OrderLineItem, error) {
	query := `
		SELECT i.id, i.order_id, i.menuitem_id, i.quantity, i.unit_price, i.price, i.created_at
		FROM order_line_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, i.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderLineItem
	for rows.Next() {
		item := &models.OrderLineItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity,
			&item.UnitPrice, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

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

type OrderRepository interface {
	// PlaceOrder runs the whole checkout inside one transaction: the order
	// row, every line-item snapshot and the cart wipe commit together or
	// not at all.
	PlaceOrder(ctx context.Context, order *models.Order, items []*models.OrderLineItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByDeliveryCrew(ctx context.Context, crewID uuid.UUID) ([]*models.Order, error)
	SetStatus(ctx context.Context, id uuid.UUID, status int) error
	SetDeliveryCrew(ctx context.Context, id, crewID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepo struct {
	db Querier
}

func NewOrderRepo(db Querier) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) PlaceOrder(ctx context.Context, order *models.Order, items []*models.OrderLineItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrCheckoutFailed, err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, user_id, delivery_crew_id, status, total, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	if _, err := tx.Exec(ctx, orderQuery, order.ID, order.UserID, order.DeliveryCrewID,
		order.Status, order.Total, order.Date); err != nil {
		return fmt.Errorf("%w: %v", common.ErrCheckoutFailed, err)
	}

	itemQuery := `
		INSERT INTO order_line_items (id, order_id, menuitem_id, quantity, unit_price, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery, item.ID, item.OrderID, item.MenuItemID,
			item.Quantity, item.UnitPrice, item.Price); err != nil {
			return fmt.Errorf("%w: %v", common.ErrCheckoutFailed, err)
		}
	}

	clearQuery := `DELETE FROM cart_lines WHERE user_id = $1`
	if _, err := tx.Exec(ctx, clearQuery, order.UserID); err != nil {
		return fmt.Errorf("%w: %v", common.ErrCheckoutFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", common.ErrCheckoutFailed, err)
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, user_id, delivery_crew_id, status, total, date, created_at
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.UserID, &order.DeliveryCrewID,
		&order.Status, &order.Total, &order.Date, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order", common.ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) ListByDeliveryCrew(ctx context.Context, crewID uuid.UUID) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, delivery_crew_id, status, total, date, created_at
		FROM orders
		WHERE delivery_crew_id = $1
		ORDER BY date DESC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, crewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.DeliveryCrewID, &order.Status,
			&order.Total, &order.Date, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) SetStatus(ctx context.Context, id uuid.UUID, status int) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order", common.ErrNotFound)
	}
	return nil
}

func (r *orderRepo) SetDeliveryCrew(ctx context.Context, id, crewID uuid.UUID) error {
	query := `UPDATE orders SET delivery_crew_id = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, crewID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order", common.ErrNotFound)
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order", common.ErrNotFound)
	}
	return nil
}

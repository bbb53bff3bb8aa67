package services

import (
	"context"
	"fmt"

	"bistro/internal/common"
	"bistro/internal/models"
	"bistro/internal/repositories"

	"github.com/google/uuid"
)

// CartService owns the per-user pending cart. Every operation is scoped to
// the calling user; there is no cross-user visibility.
type CartService interface {
	ListCart(ctx context.Context, userID uuid.UUID) ([]*models.CartLine, error)
	AddToCart(ctx context.Context, userID, menuItemID uuid.UUID, quantity int, unitPrice float64) (*models.CartLine, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo     repositories.CartRepository
	menuItemRepo repositories.MenuItemRepository
}

func NewCartService(cartRepo repositories.CartRepository, menuItemRepo repositories.MenuItemRepository) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		menuItemRepo: menuItemRepo,
	}
}

func (s *cartService) ListCart(ctx context.Context, userID uuid.UUID) ([]*models.CartLine, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

// AddToCart computes price = quantity * unit_price server-side; the client
// never supplies the line total.
func (s *cartService) AddToCart(ctx context.Context, userID, menuItemID uuid.UUID, quantity int, unitPrice float64) (*models.CartLine, error) {
	if err := common.ValidatePositiveInteger(quantity, "quantity", 1000); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := common.ValidatePositiveFloat(unitPrice, "unit_price", 100000.0); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if _, err := s.menuItemRepo.GetByID(ctx, menuItemID); err != nil {
		return nil, err
	}

	line := &models.CartLine{
		ID:         uuid.New(),
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Price:      float64(quantity) * unitPrice,
	}
	if err := s.cartRepo.Upsert(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.ClearByUser(ctx, userID)
}

package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"bistro/internal/caching"
	"bistro/internal/common"
	"bistro/internal/models"
	"bistro/internal/repositories"

	"github.com/google/uuid"
)

const menuCacheTTL = 2 * time.Minute

// CatalogService covers categories and menu items: public reads, admin
// writes, plus menu-item image storage.
type CatalogService interface {
	ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error)
	CreateCategory(ctx context.Context, slug, title string) (*models.Category, error)

	ListMenuItems(ctx context.Context, filter *models.MenuItemFilter) ([]*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, title string, price float64, featured bool, categoryID uuid.UUID) (*models.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error

	UploadMenuItemImage(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string) error
	MenuItemImageURL(ctx context.Context, id uuid.UUID) (string, error)
}

type catalogService struct {
	categoryRepo repositories.CategoryRepository
	menuItemRepo repositories.MenuItemRepository
	storageSvc   StorageService
	cacheSvc     caching.CacheService
}

func NewCatalogService(categoryRepo repositories.CategoryRepository, menuItemRepo repositories.MenuItemRepository,
	storageSvc StorageService, cacheSvc caching.CacheService) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
		storageSvc:   storageSvc,
		cacheSvc:     cacheSvc,
	}
}

func (s *catalogService) ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, limit, offset)
}

func (s *catalogService) CreateCategory(ctx context.Context, slug, title string) (*models.Category, error) {
	if err := common.ValidateRequiredString(slug, "slug"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := common.ValidateRequiredString(title, "title"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	category := &models.Category{
		ID:    uuid.New(),
		Slug:  slug,
		Title: title,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListMenuItems(ctx context.Context, filter *models.MenuItemFilter) ([]*models.MenuItem, error) {
	cacheKey := fmt.Sprintf("list:%s:%s:%d:%d", filter.CategorySlug, filter.OrderByPrice, filter.Limit, filter.Offset)
	if cached, err := s.cacheSvc.GetMenuItems(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	items, err := s.menuItemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetMenuItems(ctx, cacheKey, items, menuCacheTTL); err != nil {
		log.Printf("Failed to cache menu items: %v", err)
	}
	return items, nil
}

func (s *catalogService) CreateMenuItem(ctx context.Context, title string, price float64, featured bool, categoryID uuid.UUID) (*models.MenuItem, error) {
	if err := common.ValidateRequiredString(title, "title"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := common.ValidatePositiveFloat(price, "price", 100000.0); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		ID:         uuid.New(),
		Title:      title,
		Price:      price,
		Featured:   featured,
		CategoryID: categoryID,
	}
	if err := s.menuItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateMenu(ctx)
	return item, nil
}

func (s *catalogService) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.menuItemRepo.GetByID(ctx, id)
}

func (s *catalogService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	if err := s.menuItemRepo.SetFeatured(ctx, id, featured); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *catalogService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if err := s.menuItemRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *catalogService) UploadMenuItemImage(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string) error {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	object := fmt.Sprintf("menu-items/%s", item.ID)
	if err := s.storageSvc.UploadObject(ctx, object, reader, size, contentType); err != nil {
		return err
	}
	return s.menuItemRepo.SetImageObject(ctx, id, object)
}

func (s *catalogService) MenuItemImageURL(ctx context.Context, id uuid.UUID) (string, error) {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if item.ImageObject == nil || *item.ImageObject == "" {
		return "", fmt.Errorf("%w: menu item image", common.ErrNotFound)
	}
	return s.storageSvc.PresignedURL(ctx, *item.ImageObject, 15*time.Minute)
}

func (s *catalogService) invalidateMenu(ctx context.Context) {
	if err := s.cacheSvc.InvalidateMenu(ctx); err != nil {
		log.Printf("Failed to invalidate menu cache: %v", err)
	}
}

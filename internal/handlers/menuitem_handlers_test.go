package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bistro/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, slug, title string) (*models.Category, error) {
	args := m.Called(ctx, slug, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCatalogService) ListMenuItems(ctx context.Context, filter *models.MenuItemFilter) ([]*models.MenuItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}

func (m *MockCatalogService) CreateMenuItem(ctx context.Context, title string, price float64, featured bool, categoryID uuid.UUID) (*models.MenuItem, error) {
	args := m.Called(ctx, title, price, featured, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockCatalogService) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockCatalogService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	args := m.Called(ctx, id, featured)
	return args.Error(0)
}

func (m *MockCatalogService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) UploadMenuItemImage(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, id, reader, size, contentType)
	return args.Error(0)
}

func (m *MockCatalogService) MenuItemImageURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func patchFeatured(t *testing.T, svc *MockCatalogService, itemID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/menu-items/"+itemID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/menu-items/:id")
	c.SetParamNames("id")
	c.SetParamValues(itemID)

	h := NewMenuItemHandlers(svc)
	assert.NoError(t, h.UpdateFeatured(c))
	return rec
}

func TestUpdateFeatured_TruthyFeaturedAccepted(t *testing.T) {
	itemID := uuid.New()
	svc := new(MockCatalogService)
	svc.On("SetFeatured", mock.Anything, itemID, true).Return(nil)

	rec := patchFeatured(t, svc, itemID.String(), `{"featured": true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

// An "unfeature" PATCH is rejected with a 400, matching the behavior the
// clients of the previous system depend on. See DESIGN.md.
func TestUpdateFeatured_FalseFeaturedRejected(t *testing.T) {
	itemID := uuid.New()
	svc := new(MockCatalogService)

	rec := patchFeatured(t, svc, itemID.String(), `{"featured": false}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect input")
	svc.AssertNotCalled(t, "SetFeatured", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateFeatured_MissingFeaturedRejected(t *testing.T) {
	itemID := uuid.New()
	svc := new(MockCatalogService)

	rec := patchFeatured(t, svc, itemID.String(), `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "SetFeatured", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateFeatured_BadID(t *testing.T) {
	svc := new(MockCatalogService)

	rec := patchFeatured(t, svc, "not-a-uuid", `{"featured": true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

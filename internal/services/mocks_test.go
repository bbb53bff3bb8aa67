package services

import (
	"context"
	"time"

	"bistro/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and collaborators shared by the service test suites.

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) PlaceOrder(ctx context.Context, order *models.Order, items []*models.OrderLineItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByDeliveryCrew(ctx context.Context, crewID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, crewID)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) SetStatus(ctx context.Context, id uuid.UUID, status int) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) SetDeliveryCrew(ctx context.Context, id, crewID uuid.UUID) error {
	args := m.Called(ctx, id, crewID)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderLineItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.OrderLineItem), args.Error(1)
}

func (m *MockOrderItemRepository) ListByOrderOwner(ctx context.Context, userID uuid.UUID) ([]*models.OrderLineItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.OrderLineItem), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Upsert(ctx context.Context, line *models.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CartLine, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.CartLine), args.Error(1)
}

func (m *MockCartRepository) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetStaff(ctx context.Context, id uuid.UUID, isStaff bool) error {
	args := m.Called(ctx, id, isStaff)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) IsMember(ctx context.Context, userID uuid.UUID, groupName string) (bool, error) {
	args := m.Called(ctx, userID, groupName)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) AddMember(ctx context.Context, userID, groupID uuid.UUID) error {
	args := m.Called(ctx, userID, groupID)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveMember(ctx context.Context, userID, groupID uuid.UUID) error {
	args := m.Called(ctx, userID, groupID)
	return args.Error(0)
}

func (m *MockGroupRepository) ListMembers(ctx context.Context, groupName string) ([]*models.User, error) {
	args := m.Called(ctx, groupName)
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) List(ctx context.Context, filter *models.MenuItemFilter) ([]*models.MenuItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	args := m.Called(ctx, id, featured)
	return args.Error(0)
}

func (m *MockMenuItemRepository) SetImageObject(ctx context.Context, id uuid.UUID, object string) error {
	args := m.Called(ctx, id, object)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRolesService struct {
	mock.Mock
}

func (m *MockRolesService) HasRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error) {
	args := m.Called(ctx, userID, roleName)
	return args.Bool(0), args.Error(1)
}

func (m *MockRolesService) ListManagers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockRolesService) GrantGroup(ctx context.Context, callerID uuid.UUID, username string) (string, error) {
	args := m.Called(ctx, callerID, username)
	return args.String(0), args.Error(1)
}

func (m *MockRolesService) RevokeGroup(ctx context.Context, callerID uuid.UUID, username string) (string, error) {
	args := m.Called(ctx, callerID, username)
	return args.String(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) OrderPlaced(ctx context.Context, order *models.Order, lineCount int) error {
	args := m.Called(ctx, order, lineCount)
	return args.Error(0)
}

func (m *MockPublisher) OrderStatusChanged(ctx context.Context, orderID uuid.UUID, status int) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockPublisher) OrderAssigned(ctx context.Context, orderID, crewID uuid.UUID) error {
	args := m.Called(ctx, orderID, crewID)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

package services

import (
	"context"
	"testing"

	"bistro/internal/common"
	"bistro/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo     *MockOrderRepository
	orderItemRepo *MockOrderItemRepository
	cartRepo      *MockCartRepository
	userRepo      *MockUserRepository
	rolesSvc      *MockRolesService
	publisher     *MockPublisher
	service       OrderService
	userID        uuid.UUID
	orderID       uuid.UUID
	context       context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.orderItemRepo = new(MockOrderItemRepository)
	suite.cartRepo = new(MockCartRepository)
	suite.userRepo = new(MockUserRepository)
	suite.rolesSvc = new(MockRolesService)
	suite.publisher = new(MockPublisher)
	suite.service = NewOrderService(suite.orderRepo, suite.orderItemRepo, suite.cartRepo,
		suite.userRepo, suite.rolesSvc, suite.publisher, true)
	suite.userID = uuid.New()
	suite.orderID = uuid.New()
	suite.context = context.Background()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_TotalsCartLines() {
	lines := []*models.CartLine{
		{ID: uuid.New(), UserID: suite.userID, MenuItemID: uuid.New(), Quantity: 2, UnitPrice: 4.50, Price: 9.00},
		{ID: uuid.New(), UserID: suite.userID, MenuItemID: uuid.New(), Quantity: 1, UnitPrice: 4.50, Price: 4.50},
	}
	suite.cartRepo.On("ListByUser", suite.context, suite.userID).Return(lines, nil)
	suite.orderRepo.On("PlaceOrder", suite.context, mock.AnythingOfType("*models.Order"),
		mock.AnythingOfType("[]*models.OrderLineItem")).Return(nil)
	suite.publisher.On("OrderPlaced", suite.context, mock.AnythingOfType("*models.Order"), 2).Return(nil)

	order, err := suite.service.PlaceOrder(suite.context, suite.userID, "2025-06-01")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 13.50, order.Total)
	assert.Equal(suite.T(), models.OrderStatusPending, order.Status)
	assert.Nil(suite.T(), order.DeliveryCrewID)
	assert.Equal(suite.T(), suite.userID, order.UserID)
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_SnapshotsLines() {
	menuItemID := uuid.New()
	lines := []*models.CartLine{
		{ID: uuid.New(), UserID: suite.userID, MenuItemID: menuItemID, Quantity: 3, UnitPrice: 2.00, Price: 6.00},
	}
	suite.cartRepo.On("ListByUser", suite.context, suite.userID).Return(lines, nil)
	suite.orderRepo.On("PlaceOrder", suite.context, mock.AnythingOfType("*models.Order"),
		mock.MatchedBy(func(items []*models.OrderLineItem) bool {
			return len(items) == 1 &&
				items[0].MenuItemID == menuItemID &&
				items[0].Quantity == 3 &&
				items[0].UnitPrice == 2.00 &&
				items[0].Price == 6.00
		})).Return(nil)
	suite.publisher.On("OrderPlaced", suite.context, mock.AnythingOfType("*models.Order"), 1).Return(nil)

	_, err := suite.service.PlaceOrder(suite.context, suite.userID, "2025-06-01")
	assert.NoError(suite.T(), err)
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_MissingDate() {
	_, err := suite.service.PlaceOrder(suite.context, suite.userID, "")
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.Contains(suite.T(), err.Error(), "date is required")
	suite.cartRepo.AssertNotCalled(suite.T(), "ListByUser", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_MalformedDate() {
	_, err := suite.service.PlaceOrder(suite.context, suite.userID, "01/06/2025")
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.Contains(suite.T(), err.Error(), "YYYY-MM-DD")
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_EmptyCartAllowed() {
	suite.cartRepo.On("ListByUser", suite.context, suite.userID).Return([]*models.CartLine{}, nil)
	suite.orderRepo.On("PlaceOrder", suite.context, mock.AnythingOfType("*models.Order"),
		mock.AnythingOfType("[]*models.OrderLineItem")).Return(nil)
	suite.publisher.On("OrderPlaced", suite.context, mock.AnythingOfType("*models.Order"), 0).Return(nil)

	order, err := suite.service.PlaceOrder(suite.context, suite.userID, "2025-06-01")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, order.Total)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_EmptyCartRejected() {
	service := NewOrderService(suite.orderRepo, suite.orderItemRepo, suite.cartRepo,
		suite.userRepo, suite.rolesSvc, suite.publisher, false)
	suite.cartRepo.On("ListByUser", suite.context, suite.userID).Return([]*models.CartLine{}, nil)

	_, err := service.PlaceOrder(suite.context, suite.userID, "2025-06-01")
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.orderRepo.AssertNotCalled(suite.T(), "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_PublishFailureDoesNotFailCheckout() {
	lines := []*models.CartLine{
		{ID: uuid.New(), UserID: suite.userID, MenuItemID: uuid.New(), Quantity: 1, UnitPrice: 5.00, Price: 5.00},
	}
	suite.cartRepo.On("ListByUser", suite.context, suite.userID).Return(lines, nil)
	suite.orderRepo.On("PlaceOrder", suite.context, mock.AnythingOfType("*models.Order"),
		mock.AnythingOfType("[]*models.OrderLineItem")).Return(nil)
	suite.publisher.On("OrderPlaced", suite.context, mock.AnythingOfType("*models.Order"), 1).
		Return(assert.AnError)

	order, err := suite.service.PlaceOrder(suite.context, suite.userID, "2025-06-01")
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestListAssignedOrders_NonCrewGetsEmptyList() {
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(false, nil)

	orders, err := suite.service.ListAssignedOrders(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), orders)
	assert.Empty(suite.T(), orders)
	suite.orderRepo.AssertNotCalled(suite.T(), "ListByDeliveryCrew", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestListAssignedOrders_CrewSeesAssignments() {
	assigned := []*models.Order{{ID: suite.orderID, DeliveryCrewID: &suite.userID}}
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(true, nil)
	suite.orderRepo.On("ListByDeliveryCrew", suite.context, suite.userID).Return(assigned, nil)

	orders, err := suite.service.ListAssignedOrders(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 1)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_CrewSetsStatus() {
	status := models.OrderStatusDelivered
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(true, nil)
	suite.orderRepo.On("SetStatus", suite.context, suite.orderID, status).Return(nil)
	suite.publisher.On("OrderStatusChanged", suite.context, suite.orderID, status).Return(nil)

	message, err := suite.service.UpdateOrder(suite.context, suite.userID, suite.orderID, &status, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Order status set to 1", message)
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_CrewMissingStatus() {
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(true, nil)

	_, err := suite.service.UpdateOrder(suite.context, suite.userID, suite.orderID, nil, nil)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.orderRepo.AssertNotCalled(suite.T(), "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_CrewZeroStatusTreatedAsMissing() {
	status := models.OrderStatusPending
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(true, nil)

	_, err := suite.service.UpdateOrder(suite.context, suite.userID, suite.orderID, &status, nil)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.orderRepo.AssertNotCalled(suite.T(), "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_CrewOutOfRangeStatus() {
	status := 2
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(true, nil)

	_, err := suite.service.UpdateOrder(suite.context, suite.userID, suite.orderID, &status, nil)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.Contains(suite.T(), err.Error(), "status must be 0 or 1")
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_ManagerAssignsCrew() {
	crewID := uuid.New()
	crew := &models.User{ID: crewID, Username: "courier1"}
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(false, nil)
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupManager).Return(true, nil)
	suite.userRepo.On("GetByID", suite.context, crewID).Return(crew, nil)
	suite.orderRepo.On("SetDeliveryCrew", suite.context, suite.orderID, crewID).Return(nil)
	suite.publisher.On("OrderAssigned", suite.context, suite.orderID, crewID).Return(nil)

	message, err := suite.service.UpdateOrder(suite.context, suite.userID, suite.orderID, nil, &crewID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Order assigned to courier1", message)
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_ManagerMissingCrew() {
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(false, nil)
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupManager).Return(true, nil)

	_, err := suite.service.UpdateOrder(suite.context, suite.userID, suite.orderID, nil, nil)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_ManagerUnknownCrewUser() {
	crewID := uuid.New()
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(false, nil)
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupManager).Return(true, nil)
	suite.userRepo.On("GetByID", suite.context, crewID).Return(nil, common.ErrNotFound)

	_, err := suite.service.UpdateOrder(suite.context, suite.userID, suite.orderID, nil, &crewID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	suite.orderRepo.AssertNotCalled(suite.T(), "SetDeliveryCrew", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_NeitherRoleForbidden() {
	status := models.OrderStatusDelivered
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupDeliveryCrew).Return(false, nil)
	suite.rolesSvc.On("HasRole", suite.context, suite.userID, models.GroupManager).Return(false, nil)

	_, err := suite.service.UpdateOrder(suite.context, suite.userID, suite.orderID, &status, nil)
	assert.ErrorIs(suite.T(), err, common.ErrForbidden)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder() {
	suite.orderRepo.On("Delete", suite.context, suite.orderID).Return(nil)

	err := suite.service.DeleteOrder(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	suite.orderRepo.AssertExpectations(suite.T())
}

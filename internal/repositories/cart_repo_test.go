package repositories

import (
	"context"
	"testing"
	"time"

	"bistro/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CartRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    CartRepository
	userID  uuid.UUID
	context context.Context
}

func (suite *CartRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCartRepo(mock)
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *CartRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestCartRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepoTestSuite))
}

func (suite *CartRepoTestSuite) TestUpsert_NewLine() {
	line := &models.CartLine{
		ID:         uuid.New(),
		UserID:     suite.userID,
		MenuItemID: uuid.New(),
		Quantity:   2,
		UnitPrice:  4.50,
		Price:      9.00,
	}

	suite.mock.ExpectExec(`
		INSERT INTO cart_lines \(id, user_id, menuitem_id, quantity, unit_price, price, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, NOW\(\)\)
		ON CONFLICT \(user_id, menuitem_id\)
		DO UPDATE SET quantity = \$4, unit_price = \$5, price = \$6
	`).WithArgs(line.ID, line.UserID, line.MenuItemID, line.Quantity, line.UnitPrice, line.Price).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Upsert(suite.context, line)
	assert.NoError(suite.T(), err)
}

func (suite *CartRepoTestSuite) TestUpsert_ExistingLineReplaced() {
	line := &models.CartLine{
		ID:         uuid.New(),
		UserID:     suite.userID,
		MenuItemID: uuid.New(),
		Quantity:   5,
		UnitPrice:  3.00,
		Price:      15.00,
	}

	suite.mock.ExpectExec(`
		INSERT INTO cart_lines \(id, user_id, menuitem_id, quantity, unit_price, price, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, NOW\(\)\)
		ON CONFLICT \(user_id, menuitem_id\)
		DO UPDATE SET quantity = \$4, unit_price = \$5, price = \$6
	`).WithArgs(line.ID, line.UserID, line.MenuItemID, line.Quantity, line.UnitPrice, line.Price).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Upsert(suite.context, line)
	assert.NoError(suite.T(), err)
}

func (suite *CartRepoTestSuite) TestListByUser() {
	rows := pgxmock.NewRows([]string{"id", "user_id", "menuitem_id", "quantity", "unit_price", "price", "created_at"}).
		AddRow(uuid.New(), suite.userID, uuid.New(), 2, 4.50, 9.00, time.Now()).
		AddRow(uuid.New(), suite.userID, uuid.New(), 1, 4.50, 4.50, time.Now())
	suite.mock.ExpectQuery(`
		SELECT id, user_id, menuitem_id, quantity, unit_price, price, created_at
		FROM cart_lines
		WHERE user_id = \$1
		ORDER BY created_at ASC
	`).WithArgs(suite.userID).WillReturnRows(rows)

	lines, err := suite.repo.ListByUser(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), lines, 2)
	assert.Equal(suite.T(), 9.00, lines[0].Price)
}

func (suite *CartRepoTestSuite) TestListByUser_Empty() {
	rows := pgxmock.NewRows([]string{"id", "user_id", "menuitem_id", "quantity", "unit_price", "price", "created_at"})
	suite.mock.ExpectQuery(`
		SELECT id, user_id, menuitem_id, quantity, unit_price, price, created_at
		FROM cart_lines
		WHERE user_id = \$1
		ORDER BY created_at ASC
	`).WithArgs(suite.userID).WillReturnRows(rows)

	lines, err := suite.repo.ListByUser(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), lines)
}

func (suite *CartRepoTestSuite) TestClearByUser() {
	suite.mock.ExpectExec(`DELETE FROM cart_lines WHERE user_id = \$1`).
		WithArgs(suite.userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	err := suite.repo.ClearByUser(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
}

func (suite *CartRepoTestSuite) TestDeleteOlderThan() {
	cutoff := time.Now().Add(-72 * time.Hour)

	suite.mock.ExpectExec(`DELETE FROM cart_lines WHERE created_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	deleted, err := suite.repo.DeleteOlderThan(suite.context, cutoff)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), deleted)
}

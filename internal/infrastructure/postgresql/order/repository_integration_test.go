package order

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	orderv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/order/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	helper *postgresql.TestHelper
	repo   *Repository
	ctx    context.Context
}

// SetupSuite runs once before all tests
func (suite *RepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../migrations")
	require.NoError(suite.T(), err)

	config := postgresql.DefaultTestContainerConfig()
	config.Database = "order_test_db"
	config.MigrationsPath = migrationsPath
	config.StartupTimeout = 3 * time.Minute

	suite.helper = postgresql.NewTestHelperWithConfig(suite.T(), config)
	suite.repo = NewRepository(suite.helper.GetClient(), logger.NewNopLogger())
}

// SetupTest runs before each test
func (suite *RepositoryTestSuite) SetupTest() {
	suite.helper.CleanupTables("order_executions", "reserved_cash", "orders")
}

func (suite *RepositoryTestSuite) newOrder(id string, side orderv1.Side, at time.Time) *orderv1.Order {
	o, err := orderv1.NewOrder(id, "u-1", "005930", side, decimal.RequireFromString("101.5"), 10, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Store(suite.ctx, o))
	return o
}

func (suite *RepositoryTestSuite) TestStoreAndGet() {
	stored := suite.newOrder("o-1", orderv1.SideBuy, createdAt)

	got, err := suite.repo.GetByID(suite.ctx, "o-1")
	suite.Require().NoError(err)
	suite.Equal(stored.Owner, got.Owner)
	suite.Equal(orderv1.StatusWaiting, got.Status)
	suite.True(stored.Price.Equal(got.Price))
	suite.True(stored.CreatedAt.Equal(got.CreatedAt))
	suite.Nil(got.ExecutedAt)

	_, err = suite.repo.GetByID(suite.ctx, "missing")
	suite.True(errors.HasCode(err, errors.OrderNotFound))
}

func (suite *RepositoryTestSuite) TestExecutionProgress() {
	o := suite.newOrder("o-1", orderv1.SideBuy, createdAt)
	at := createdAt.Add(time.Second)

	err := postgresql.WithTx(suite.ctx, suite.helper.GetClient(), func(txCtx context.Context) error {
		locked, err := suite.repo.GetForUpdate(txCtx, o.ID)
		if err != nil {
			return err
		}
		if err := suite.repo.AppendExecutions(txCtx, []*orderv1.Execution{
			{ID: "01HZZZZZZZZZZZZZZZZZZZZZZ1", OrderID: o.ID, Price: decimal.NewFromInt(100), Volume: 6, ExecutedAt: at},
			{ID: "01HZZZZZZZZZZZZZZZZZZZZZZ2", OrderID: o.ID, Price: decimal.NewFromInt(101), Volume: 4, ExecutedAt: at},
		}); err != nil {
			return err
		}
		locked.ApplyExecutionDelta(10, decimal.NewFromInt(1004), at)
		return suite.repo.Update(txCtx, locked)
	})
	suite.Require().NoError(err)

	got, err := suite.repo.GetByID(suite.ctx, o.ID)
	suite.Require().NoError(err)
	suite.Equal(orderv1.StatusExecuted, got.Status)
	suite.Equal(int64(0), got.RemainingAmount)
	suite.True(decimal.RequireFromString("100.4").Equal(got.AveragePrice))
	suite.Require().NotNil(got.ExecutedAt)

	executions, err := suite.repo.ListExecutions(suite.ctx, o.ID)
	suite.Require().NoError(err)
	suite.Len(executions, 2)
	suite.Equal(int64(6), executions[0].Volume)
}

func (suite *RepositoryTestSuite) TestUpdateMissing() {
	o, err := orderv1.NewOrder("ghost", "u-1", "005930", orderv1.SideBuy, decimal.NewFromInt(1), 1, createdAt)
	suite.Require().NoError(err)
	suite.True(errors.HasCode(suite.repo.Update(suite.ctx, o), errors.OrderNotFound))
}

func (suite *RepositoryTestSuite) TestFindResting() {
	suite.newOrder("o-late", orderv1.SideBuy, createdAt.Add(2*time.Second))
	suite.newOrder("o-early", orderv1.SideBuy, createdAt)
	suite.newOrder("o-sell", orderv1.SideSell, createdAt)

	canceled := suite.newOrder("o-canceled", orderv1.SideBuy, createdAt.Add(-time.Second))
	suite.Require().NoError(canceled.Cancel(createdAt))
	suite.Require().NoError(suite.repo.Update(suite.ctx, canceled))

	orders, err := suite.repo.FindResting(suite.ctx, "005930", orderv1.SideBuy, nil, 10)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal("o-early", orders[0].ID)
	suite.Equal("o-late", orders[1].ID)

	first, err := suite.repo.FindResting(suite.ctx, "005930", orderv1.SideBuy, nil, 1)
	suite.Require().NoError(err)
	suite.Require().Len(first, 1)
	suite.Equal("o-early", first[0].ID)

	next, err := suite.repo.FindResting(suite.ctx, "005930", orderv1.SideBuy, first[0].Cursor(), 1)
	suite.Require().NoError(err)
	suite.Require().Len(next, 1)
	suite.Equal("o-late", next[0].ID)

	last, err := suite.repo.FindResting(suite.ctx, "005930", orderv1.SideBuy, next[0].Cursor(), 1)
	suite.Require().NoError(err)
	suite.Empty(last)
}

func (suite *RepositoryTestSuite) TestDeleteCascade() {
	o := suite.newOrder("o-1", orderv1.SideBuy, createdAt)
	suite.helper.ExecuteSQL(`INSERT INTO reserved_cash (order_id, owner, amount) VALUES ($1, $2, $3)`, o.ID, o.Owner, "1015")
	suite.Require().NoError(suite.repo.AppendExecutions(suite.ctx, []*orderv1.Execution{
		{ID: "01HZZZZZZZZZZZZZZZZZZZZZZ1", OrderID: o.ID, Price: decimal.NewFromInt(100), Volume: 1, ExecutedAt: createdAt},
	}))

	suite.Require().NoError(suite.repo.DeleteCascade(suite.ctx, o.ID))

	_, err := suite.repo.GetByID(suite.ctx, o.ID)
	suite.True(errors.HasCode(err, errors.OrderNotFound))
	suite.True(errors.HasCode(suite.repo.DeleteCascade(suite.ctx, o.ID), errors.OrderNotFound))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

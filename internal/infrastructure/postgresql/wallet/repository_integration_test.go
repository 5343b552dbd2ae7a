package wallet

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	walletv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/wallet/v1"
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

func (suite *RepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../migrations")
	require.NoError(suite.T(), err)

	config := postgresql.DefaultTestContainerConfig()
	config.Database = "wallet_test_db"
	config.MigrationsPath = migrationsPath
	config.StartupTimeout = 3 * time.Minute

	suite.helper = postgresql.NewTestHelperWithConfig(suite.T(), config)
	suite.repo = NewRepository(suite.helper.GetClient(), logger.NewNopLogger())
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.helper.CleanupTables("reserved_cash", "positions", "cash_balances", "orders")
}

func (suite *RepositoryTestSuite) storeOrder(id string) {
	suite.helper.ExecuteSQL(
		`INSERT INTO orders (id, owner, instrument, side, price, amount, remaining_amount, status, created_at, updated_at) VALUES ($1, 'u-1', '005930', 'BUY', 101, 10, 10, 'WAITING', NOW(), NOW())`,
		id,
	)
}

func (suite *RepositoryTestSuite) TestCash() {
	suite.Require().NoError(suite.repo.CreditCash(suite.ctx, "u-1", decimal.NewFromInt(100)))
	suite.Require().NoError(suite.repo.CreditCash(suite.ctx, "u-1", decimal.RequireFromString("0.5")))

	balance, err := suite.repo.CashBalance(suite.ctx, "u-1")
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("100.5").Equal(balance))

	empty, err := suite.repo.CashBalance(suite.ctx, "nobody")
	suite.Require().NoError(err)
	suite.True(empty.IsZero())
}

func (suite *RepositoryTestSuite) TestReservedCashRefundOnce() {
	suite.storeOrder("o-1")
	suite.Require().NoError(suite.repo.ReserveCash(suite.ctx, &walletv1.ReservedCash{
		OrderID:   "o-1",
		Owner:     "u-1",
		Amount:    decimal.NewFromInt(1010),
		CreatedAt: time.Now(),
	}))

	reserved, err := suite.repo.ReservedCash(suite.ctx, "o-1")
	suite.Require().NoError(err)
	suite.False(reserved.Refunded)

	suite.Require().NoError(suite.repo.MarkRefunded(suite.ctx, "o-1", time.Now()))
	err = suite.repo.MarkRefunded(suite.ctx, "o-1", time.Now())
	suite.True(errors.HasCode(err, errors.ReservedCashAlreadyRefunded))

	_, err = suite.repo.ReservedCash(suite.ctx, "o-2")
	suite.True(errors.HasCode(err, errors.ReservedCashMissing))
	suite.True(errors.HasCode(suite.repo.MarkRefunded(suite.ctx, "o-2", time.Now()), errors.ReservedCashMissing))
}

func (suite *RepositoryTestSuite) TestPositionLifecycle() {
	suite.Require().NoError(suite.repo.IncreasePosition(suite.ctx, "u-1", "005930", 6, decimal.NewFromInt(100)))
	suite.Require().NoError(suite.repo.IncreasePosition(suite.ctx, "u-1", "005930", 4, decimal.NewFromInt(101)))

	position, err := suite.repo.GetPosition(suite.ctx, "u-1", "005930")
	suite.Require().NoError(err)
	suite.Equal(int64(10), position.Quantity)
	suite.True(decimal.RequireFromString("100.4").Equal(position.AverageCost))

	suite.Require().NoError(suite.repo.LockPosition(suite.ctx, "u-1", "005930", 7))
	suite.True(errors.HasCode(suite.repo.LockPosition(suite.ctx, "u-1", "005930", 4), errors.PositionInsufficient))

	suite.Require().NoError(suite.repo.DecreasePosition(suite.ctx, "u-1", "005930", 7))
	position, err = suite.repo.GetPosition(suite.ctx, "u-1", "005930")
	suite.Require().NoError(err)
	suite.Equal(int64(3), position.Quantity)
	suite.Equal(int64(0), position.LockedQuantity)

	suite.True(errors.HasCode(suite.repo.DecreasePosition(suite.ctx, "u-1", "005930", 4), errors.PositionInsufficient))
}

func (suite *RepositoryTestSuite) TestSettleSale() {
	db := suite.helper.GetClient()
	suite.Require().NoError(suite.repo.IncreasePosition(suite.ctx, "u-1", "005930", 10, decimal.NewFromInt(100)))
	suite.Require().NoError(suite.repo.LockPosition(suite.ctx, "u-1", "005930", 5))

	err := postgresql.WithTx(suite.ctx, db, func(txCtx context.Context) error {
		return suite.repo.SettleSale(txCtx, "u-1", "005930", 5, decimal.NewFromInt(497))
	})
	suite.Require().NoError(err)

	position, err := suite.repo.GetPosition(suite.ctx, "u-1", "005930")
	suite.Require().NoError(err)
	suite.Equal(int64(5), position.Quantity)
	suite.Equal(int64(0), position.LockedQuantity)
	balance, err := suite.repo.CashBalance(suite.ctx, "u-1")
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(497).Equal(balance))

	err = postgresql.WithTx(suite.ctx, db, func(txCtx context.Context) error {
		return suite.repo.SettleSale(txCtx, "u-1", "005930", 6, decimal.NewFromInt(600))
	})
	suite.True(errors.HasCode(err, errors.PositionInsufficient))

	balance, err = suite.repo.CashBalance(suite.ctx, "u-1")
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(497).Equal(balance))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

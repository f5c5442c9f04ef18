package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
)

func setupPurchasesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS purchases (
  id TEXT PRIMARY KEY,
  file_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  transaction_id TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'completed',
  purchased_at DATETIME NOT NULL,
  created_at DATETIME,
  UNIQUE (file_id, user_id, transaction_id)
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM purchases").Error)
	return db
}

func newPurchase(fileID uuid.UUID, userID, txn string, purchasedAt time.Time) *models.Purchase {
	return &models.Purchase{
		ID:            uuid.New(),
		FileID:        fileID,
		UserID:        userID,
		TransactionID: txn,
		Amount:        decimal.NewFromInt(25000),
		Status:        enums.PurchaseStatusCompleted,
		PurchasedAt:   purchasedAt,
		CreatedAt:     purchasedAt,
	}
}

func TestCreateIfAbsentInsertsOnce(t *testing.T) {
	db := setupPurchasesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fileID := uuid.New()
	now := time.Now().UTC()

	first, err := repo.CreateIfAbsent(ctx, newPurchase(fileID, "+9647701112233", "zc-1", now))
	require.NoError(t, err)

	second, err := repo.CreateIfAbsent(ctx, newPurchase(fileID, "+9647701112233", "zc-1", now))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Purchase{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateIfAbsentAllowsDistinctTransactions(t *testing.T) {
	db := setupPurchasesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fileID := uuid.New()
	now := time.Now().UTC()

	_, err := repo.CreateIfAbsent(ctx, newPurchase(fileID, "+9647701112233", "zc-1", now))
	require.NoError(t, err)
	_, err = repo.CreateIfAbsent(ctx, newPurchase(fileID, "+9647709998877", "zc-2", now))
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestHasEntitlement(t *testing.T) {
	db := setupPurchasesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fileID := uuid.New()
	_, err := repo.CreateIfAbsent(ctx, newPurchase(fileID, "+9647701112233", "zc-1", time.Now().UTC()))
	require.NoError(t, err)

	owned, err := repo.HasEntitlement(ctx, fileID, "+9647701112233")
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = repo.HasEntitlement(ctx, fileID, "+9647700000000")
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestListByUser(t *testing.T) {
	db := setupPurchasesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	_, err := repo.CreateIfAbsent(ctx, newPurchase(uuid.New(), "+9647701112233", "zc-1", now))
	require.NoError(t, err)
	_, err = repo.CreateIfAbsent(ctx, newPurchase(uuid.New(), "+9647701112233", "zc-2", now.Add(time.Minute)))
	require.NoError(t, err)
	_, err = repo.CreateIfAbsent(ctx, newPurchase(uuid.New(), "+9647709998877", "zc-3", now))
	require.NoError(t, err)

	rows, err := repo.ListByUser(ctx, "+9647701112233")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestListPaginatesWithCursor(t *testing.T) {
	db := setupPurchasesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		row := newPurchase(uuid.New(), "+9647701112233", uuid.NewString(), base.Add(time.Duration(i)*time.Minute))
		_, err := repo.CreateIfAbsent(ctx, row)
		require.NoError(t, err)
	}

	first, cursor, err := repo.List(ctx, ListPurchasesParams{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotNil(t, cursor)

	second, last, err := repo.List(ctx, ListPurchasesParams{Limit: 3, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Nil(t, last)
}

func TestRevenueBetween(t *testing.T) {
	db := setupPurchasesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	monthStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	inside := newPurchase(uuid.New(), "+9647701112233", "zc-1", monthStart.Add(24*time.Hour))
	inside.Amount = decimal.NewFromInt(40000)
	_, err := repo.CreateIfAbsent(ctx, inside)
	require.NoError(t, err)

	outside := newPurchase(uuid.New(), "+9647701112233", "zc-2", monthStart.AddDate(0, 1, 1))
	outside.Amount = decimal.NewFromInt(99000)
	_, err = repo.CreateIfAbsent(ctx, outside)
	require.NoError(t, err)

	total, err := repo.RevenueBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(40000)), "got %s", total)
}

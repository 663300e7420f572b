package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

func TestTransactionRepository(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	writeRepo := NewTransactionWriteRepository(db, GetTxFromContext)
	readRepo := NewTransactionReadRepository(db)

	first := &models.TransactionDB{
		FromUserID: alice.UserID,
		ToUserID:   bob.UserID,
		Amount:     decimal.RequireFromString("1.5"),
		Type:       models.TransactionTypeTransfer,
		Status:     models.TransactionStatusCompleted,
		Metadata: models.TransactionMetadata{
			Note:        "rent",
			TxHash:      "0xabc",
			BlockNumber: 42,
			GasUsed:     "21000",
		},
	}
	require.NoError(t, writeRepo.Save(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.TransactionID)

	second := &models.TransactionDB{
		FromUserID: bob.UserID,
		ToUserID:   alice.UserID,
		Amount:     decimal.RequireFromString("0.25"),
		Type:       models.TransactionTypeZakat,
		Status:     models.TransactionStatusCompleted,
	}
	require.NoError(t, writeRepo.Save(ctx, second))

	t.Run("ListNewestFirst", func(t *testing.T) {
		txns, err := readRepo.ListByUserID(ctx, alice.UserID)
		require.NoError(t, err)
		require.Len(t, txns, 2)
		assert.Equal(t, second.TransactionID, txns[0].TransactionID)
		assert.Equal(t, first.TransactionID, txns[1].TransactionID)
		assert.Equal(t, "0xabc", txns[1].Metadata.TxHash)
		assert.Equal(t, uint64(42), txns[1].Metadata.BlockNumber)
		assert.True(t, txns[1].Amount.Equal(decimal.RequireFromString("1.5")))
	})

	t.Run("ListUnrelatedUser", func(t *testing.T) {
		txns, err := readRepo.ListByUserID(ctx, carol.UserID)
		require.NoError(t, err)
		assert.Empty(t, txns)
	})

	t.Run("RolledBackWithTxManager", func(t *testing.T) {
		tm := NewTxManager(db)
		boom := errors.New("boom")
		err := tm.Do(ctx, func(ctx context.Context) error {
			require.NoError(t, writeRepo.Save(ctx, &models.TransactionDB{
				FromUserID: carol.UserID,
				ToUserID:   alice.UserID,
				Amount:     decimal.NewFromInt(1),
				Type:       models.TransactionTypeTransfer,
				Status:     models.TransactionStatusCompleted,
			}))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		txns, err := readRepo.ListByUserID(ctx, carol.UserID)
		require.NoError(t, err)
		assert.Empty(t, txns)
	})
}

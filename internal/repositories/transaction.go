package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

// TransactionWriteRepository handles transaction write operations
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a transaction record and fills its generated ID and timestamp.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn *models.TransactionDB) error {
	const query = `
		INSERT INTO transactions (from_user_id, to_user_id, amount, type, status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING transaction_id, created_at
	`
	args := []any{txn.FromUserID, txn.ToUserID, txn.Amount, txn.Type, txn.Status, txn.Metadata}

	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...).
		Scan(&txn.TransactionID, &txn.CreatedAt)

	logQuery(query, args, txn.TransactionID, err)

	return err
}

// TransactionReadRepository handles transaction read operations
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// ListByUserID returns the transactions a user sent or received, newest first.
func (r *TransactionReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, from_user_id, to_user_id, amount, type, status, metadata, created_at
		FROM transactions
		WHERE from_user_id = $1 OR to_user_id = $1
		ORDER BY created_at DESC
	`

	txns := []models.TransactionDB{}
	err := r.db.SelectContext(ctx, &txns, query, userID)

	logQuery(query, []any{userID}, len(txns), err)

	return txns, err
}

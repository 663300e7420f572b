package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

const (
	uniqueViolation    = "23505"
	oneDailyConstraint = "wallets_one_daily_per_user"
)

const walletColumns = `wallet_id, user_id, name, type, address, private_key, balance, created_at, updated_at`

// WalletWriteRepository handles wallet write operations
type WalletWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewWalletWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *WalletWriteRepository {
	return &WalletWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new wallet and fills its generated ID and timestamps.
func (r *WalletWriteRepository) Save(ctx context.Context, wallet *models.WalletDB) error {
	const query = `
		INSERT INTO wallets (user_id, name, type, address, private_key, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING wallet_id, created_at, updated_at
	`

	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query,
		wallet.UserID, wallet.Name, wallet.Type, wallet.Address, wallet.PrivateKey, wallet.Balance,
	).Scan(&wallet.WalletID, &wallet.CreatedAt, &wallet.UpdatedAt)

	// private key stays out of the log
	logQuery(query, []any{wallet.UserID, wallet.Name, wallet.Type, wallet.Address}, wallet.WalletID, err)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == oneDailyConstraint {
		return models.ErrDailyWalletExists
	}
	return err
}

// UpdateBalance sets the cached balance of a wallet.
func (r *WalletWriteRepository) UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) error {
	const query = `
		UPDATE wallets
		SET balance = $2, updated_at = NOW()
		WHERE wallet_id = $1
	`
	args := []any{walletID, balance}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err == nil && rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return err
}

// WalletReadRepository handles wallet read operations
type WalletReadRepository struct {
	db *sqlx.DB
}

func NewWalletReadRepository(db *sqlx.DB) *WalletReadRepository {
	return &WalletReadRepository{db: db}
}

// GetByUserID returns all wallets owned by a user, oldest first.
func (r *WalletReadRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.WalletDB, error) {
	const query = `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY created_at`

	wallets := []models.WalletDB{}
	err := r.db.SelectContext(ctx, &wallets, query, userID)

	logQuery(query, []any{userID}, len(wallets), err)

	return wallets, err
}

// GetByUserIDAndType returns the user's oldest wallet of the given type, or nil if there is none.
func (r *WalletReadRepository) GetByUserIDAndType(ctx context.Context, userID uuid.UUID, walletType string) (*models.WalletDB, error) {
	const query = `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = $1 AND type = $2
		ORDER BY created_at
		LIMIT 1
	`

	var wallet models.WalletDB
	err := r.db.GetContext(ctx, &wallet, query, userID, walletType)

	logQuery(query, []any{userID, walletType}, wallet.WalletID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// List returns every stored wallet.
func (r *WalletReadRepository) List(ctx context.Context) ([]models.WalletDB, error) {
	const query = `SELECT ` + walletColumns + ` FROM wallets ORDER BY created_at`

	wallets := []models.WalletDB{}
	err := r.db.SelectContext(ctx, &wallets, query)

	logQuery(query, nil, len(wallets), err)

	return wallets, err
}

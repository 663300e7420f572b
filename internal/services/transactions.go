package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

//go:generate mockgen -source=transactions.go -destination=transactions_mock.go -package=services

// TransactionReader lists stored transactions.
type TransactionReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error)
}

// TransactionService reads a user's transaction history.
type TransactionService struct {
	reader TransactionReader
}

func NewTransactionService(reader TransactionReader) *TransactionService {
	return &TransactionService{reader: reader}
}

// List returns the transactions the user sent or received, newest first.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error) {
	txns, err := s.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
		return nil, err
	}
	return txns, nil
}

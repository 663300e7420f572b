package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/chain"
	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

var (
	ErrRecipientNotFound       = errors.New("recipient not found")
	ErrRecipientWalletNotFound = errors.New("recipient wallet not found")
	ErrSenderWalletNotFound    = errors.New("sender wallet not found")
	ErrInvalidRecipientAddress = errors.New("invalid recipient address format")
	ErrInvalidAmount           = errors.New("amount must be positive")
)

// SendParams describe an outbound transfer. Recipient is a username unless
// UseAddress is set, in which case it is a hex address.
type SendParams struct {
	Recipient  string
	Amount     decimal.Decimal
	Note       string
	UseAddress bool
}

// SendResult is a confirmed transfer.
type SendResult struct {
	TransactionID uuid.UUID
	TxHash        string
	BlockNumber   uint64
	GasUsed       uint64
}

// TransferService moves funds out of a user's daily wallet.
type TransferService struct {
	users      UserReader
	wallets    WalletReader
	chain      ChainTransactor
	dispatcher *Dispatcher
}

// NewTransferService creates a new TransferService.
func NewTransferService(users UserReader, wallets WalletReader, chainClient ChainTransactor, dispatcher *Dispatcher) *TransferService {
	return &TransferService{
		users:      users,
		wallets:    wallets,
		chain:      chainClient,
		dispatcher: dispatcher,
	}
}

// Send validates, broadcasts and records a transfer from the caller's daily wallet.
// Nothing is broadcast unless the balance covers amount plus estimated gas.
func (s *TransferService) Send(ctx context.Context, userID uuid.UUID, params SendParams) (*SendResult, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	recipient := strings.TrimSpace(params.Recipient)

	var (
		toAddress       string
		toUserID        = userID
		recipientWallet *models.WalletDB
	)

	if !params.UseAddress {
		user, err := s.users.GetByUsername(ctx, recipient)
		if err != nil {
			logger.Log.Errorw("failed to look up recipient", "recipient", recipient, "error", err)
			return nil, err
		}
		if user == nil {
			return nil, ErrRecipientNotFound
		}

		recipientWallet, err = s.wallets.GetByUserIDAndType(ctx, user.UserID, models.WalletTypeDaily)
		if err != nil {
			logger.Log.Errorw("failed to look up recipient wallet", "recipient", recipient, "error", err)
			return nil, err
		}
		if recipientWallet == nil {
			return nil, ErrRecipientWalletNotFound
		}
		toAddress = recipientWallet.Address
		toUserID = user.UserID
	}

	source, err := s.wallets.GetByUserIDAndType(ctx, userID, models.WalletTypeDaily)
	if err != nil {
		logger.Log.Errorw("failed to look up sender wallet", "userID", userID, "error", err)
		return nil, err
	}
	if source == nil {
		return nil, ErrSenderWalletNotFound
	}

	if params.UseAddress {
		if !chain.IsValidAddress(recipient) {
			return nil, ErrInvalidRecipientAddress
		}
		toAddress = recipient
	}

	unlock, err := s.dispatcher.lockWallet(ctx, source.WalletID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	balance, err := s.chain.BalanceOf(ctx, source.Address)
	if err != nil {
		logger.Log.Errorw("failed to read sender balance", "walletID", source.WalletID, "error", err)
		return nil, err
	}

	fee, err := s.chain.EstimateTransfer(ctx, source.Address, toAddress, params.Amount)
	if err != nil {
		logger.Log.Errorw("failed to estimate gas", "walletID", source.WalletID, "error", err)
		return nil, err
	}

	totalRequired := params.Amount.Add(fee.Cost)
	if totalRequired.GreaterThan(balance) {
		logger.Log.Infow("transfer rejected for insufficient funds",
			"walletID", source.WalletID,
			"amount", params.Amount,
			"gas", fee.Cost,
			"balance", balance,
		)
		return nil, &InsufficientFundsError{
			Amount:           params.Amount,
			EstimatedGasFees: fee.Cost,
			TotalRequired:    totalRequired,
			CurrentBalance:   balance,
		}
	}

	receipt, err := s.dispatcher.submit(ctx, models.TransactionTypeTransfer, source, toAddress, params.Amount, fee)
	if err != nil {
		return nil, err
	}

	metadata := models.TransactionMetadata{
		Note:        params.Note,
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber,
		GasUsed:     strconv.FormatUint(receipt.GasUsed, 10),
	}
	if params.UseAddress {
		metadata.RecipientAddress = toAddress
	}

	txn := &models.TransactionDB{
		FromUserID: userID,
		ToUserID:   toUserID,
		Amount:     params.Amount,
		Type:       models.TransactionTypeTransfer,
		Status:     models.TransactionStatusCompleted,
		Metadata:   metadata,
	}

	touched := []*models.WalletDB{source}
	if recipientWallet != nil && recipientWallet.WalletID != source.WalletID {
		touched = append(touched, recipientWallet)
	}
	if err := s.dispatcher.settle(ctx, txn, touched...); err != nil {
		return nil, err
	}

	return &SendResult{
		TransactionID: txn.TransactionID,
		TxHash:        receipt.TxHash,
		BlockNumber:   receipt.BlockNumber,
		GasUsed:       receipt.GasUsed,
	}, nil
}

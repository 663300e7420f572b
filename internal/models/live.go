package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Live message types pushed over the WebSocket channel.
const (
	MessageTypeBalanceUpdate     = "BALANCE_UPDATE"
	MessageTypeTransactionUpdate = "TRANSACTION_UPDATE"
)

// BalanceUpdateMessage tells a client that one of its wallet balances changed.
type BalanceUpdateMessage struct {
	Type     string          `json:"type"`
	WalletID uuid.UUID       `json:"walletId"`
	Balance  decimal.Decimal `json:"balance"`
}

// NewBalanceUpdate builds a BALANCE_UPDATE message.
func NewBalanceUpdate(walletID uuid.UUID, balance decimal.Decimal) BalanceUpdateMessage {
	return BalanceUpdateMessage{Type: MessageTypeBalanceUpdate, WalletID: walletID, Balance: balance}
}

// TransactionUpdateMessage invalidates the client's transaction list.
type TransactionUpdateMessage struct {
	Type          string    `json:"type"`
	TransactionID uuid.UUID `json:"transactionId"`
}

// NewTransactionUpdate builds a TRANSACTION_UPDATE message.
func NewTransactionUpdate(transactionID uuid.UUID) TransactionUpdateMessage {
	return TransactionUpdateMessage{Type: MessageTypeTransactionUpdate, TransactionID: transactionID}
}

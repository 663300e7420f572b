package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeTransfer = "transfer"
	TransactionTypeZakat    = "zakat"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// TransactionMetadata carries chain details of a confirmed transfer.
type TransactionMetadata struct {
	Note             string `json:"note,omitempty"`
	TxHash           string `json:"txHash,omitempty"`
	BlockNumber      uint64 `json:"blockNumber,omitempty"`
	GasUsed          string `json:"gasUsed,omitempty"`
	RecipientAddress string `json:"recipientAddress,omitempty"`
}

// Value implements driver.Valuer so metadata is stored as JSONB.
func (m TransactionMetadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *TransactionMetadata) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = TransactionMetadata{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported metadata type")
	}
}

// TransactionDB represents a transaction row in the database
type TransactionDB struct {
	TransactionID uuid.UUID           `json:"id" db:"transaction_id"`
	FromUserID    uuid.UUID           `json:"fromUserId" db:"from_user_id"`
	ToUserID      uuid.UUID           `json:"toUserId" db:"to_user_id"`
	Amount        decimal.Decimal     `json:"amount" db:"amount"`
	Type          string              `json:"type" db:"type"`
	Status        string              `json:"status" db:"status"`
	Metadata      TransactionMetadata `json:"metadata" db:"metadata"`
	CreatedAt     time.Time           `json:"createdAt" db:"created_at"`
}

// TransactionEvent is the message published to Kafka for every completed transaction.
type TransactionEvent struct {
	TransactionID string `json:"transaction_id"`
	Timestamp     int64  `json:"timestamp"`
	Amount        string `json:"amount"`
	FromUserID    string `json:"from_user_id"`
	ToUserID      string `json:"to_user_id"`
	Type          string `json:"type"`
	TxHash        string `json:"tx_hash"`
}

// Package chain wraps an EVM JSON-RPC node: balances, fee estimation,
// signed transfers and confirmation tracking.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
)

var (
	// ErrNoFeeData is returned when the node does not report an EIP-1559 base fee.
	ErrNoFeeData = errors.New("failed to fetch gas prices")
	// ErrTransactionReverted is returned when a mined transaction has a failed status.
	ErrTransactionReverted = errors.New("transaction failed to be confirmed")
	// ErrInvalidAddress is returned for malformed hex addresses.
	ErrInvalidAddress = errors.New("invalid address")
)

const errTxIndexing = "transaction indexing is in progress"


// Backend is the part of the go-ethereum client API the wallet needs.
// Both *ethclient.Client and the simulated backend client satisfy it.
type Backend interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// FeeEstimate is the gas quote for a single native transfer.
type FeeEstimate struct {
	GasLimit     uint64          // Raw estimate from the node, before the safety buffer
	MaxFeePerGas *big.Int        // 2*baseFee + tip, in wei
	GasTipCap    *big.Int        // Priority fee, in wei
	Cost         decimal.Decimal // GasLimit * MaxFeePerGas in native units
}

// Receipt is a confirmed transaction.
type Receipt struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
}

// Client talks to the chain through a rate-limited Backend.
type Client struct {
	backend      Backend
	limiter      *rate.Limiter
	pollInterval time.Duration

	mu      sync.Mutex
	chainID *big.Int
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outgoing RPC calls per second. Zero or less disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithPollInterval sets how often receipts and block height are polled while waiting.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// NewClient creates a Client over an existing backend.
func NewClient(backend Backend, opts ...Option) *Client {
	c := &Client{
		backend:      backend,
		limiter:      rate.NewLimiter(rate.Inf, 1),
		pollInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects to an HTTP JSON-RPC endpoint.
func Dial(endpoint string, timeout time.Duration, opts ...Option) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}
	rpcClient, err := rpc.DialHTTPWithClient(endpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create RPC client: %w", err)
	}
	return NewClient(ethclient.NewClient(rpcClient), opts...), nil
}

func (c *Client) throttle(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}
	return nil
}

// BalanceOf returns the latest balance of address in native units.
func (c *Client) BalanceOf(ctx context.Context, address string) (decimal.Decimal, error) {
	if !IsValidAddress(address) {
		return decimal.Zero, ErrInvalidAddress
	}
	if err := c.throttle(ctx); err != nil {
		return decimal.Zero, err
	}

	wei, err := c.backend.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance of %s: %w", address, err)
	}
	return FromWei(wei), nil
}

// EstimateTransfer quotes the gas cost of sending amount from one address to another
// at current fee levels.
func (c *Client) EstimateTransfer(ctx context.Context, from, to string, amount decimal.Decimal) (*FeeEstimate, error) {
	if !IsValidAddress(from) || !IsValidAddress(to) {
		return nil, ErrInvalidAddress
	}
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("latest header: %w", err)
	}
	if head.BaseFee == nil {
		return nil, ErrNoFeeData
	}

	tip, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas tip: %w", err)
	}

	toAddr := common.HexToAddress(to)
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  common.HexToAddress(from),
		To:    &toAddr,
		Value: ToWei(amount),
	})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	maxFee := new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip)
	cost := new(big.Int).Mul(new(big.Int).SetUint64(gas), maxFee)

	return &FeeEstimate{
		GasLimit:     gas,
		MaxFeePerGas: maxFee,
		GasTipCap:    tip,
		Cost:         FromWei(cost),
	}, nil
}

// SendTransfer signs and broadcasts a dynamic-fee transfer of exactly amount.
// The gas fee is paid on top of amount, and the gas limit carries a 20% buffer.
func (c *Client) SendTransfer(ctx context.Context, privateKeyHex, to string, amount decimal.Decimal, fee *FeeEstimate) (string, error) {
	if !IsValidAddress(to) {
		return "", ErrInvalidAddress
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)

	chainID, err := c.chainIDFor(ctx)
	if err != nil {
		return "", err
	}

	if err := c.throttle(ctx); err != nil {
		return "", err
	}
	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("pending nonce: %w", err)
	}

	toAddr := common.HexToAddress(to)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: fee.GasTipCap,
		GasFeeCap: fee.MaxFeePerGas,
		Gas:       GasLimitWithBuffer(fee.GasLimit),
		To:        &toAddr,
		Value:     ToWei(amount),
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	if err := c.throttle(ctx); err != nil {
		return "", err
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}

	logger.Log.Infow("transaction broadcast",
		"from", from.Hex(),
		"to", toAddr.Hex(),
		"amount", amount.String(),
		"nonce", nonce,
		"txHash", signed.Hash().Hex(),
	)

	return signed.Hash().Hex(), nil
}

// WaitForConfirmations blocks until txHash is mined and buried under the requested
// number of confirmations, or until ctx is done.
func (c *Client) WaitForConfirmations(ctx context.Context, txHash string, confirmations uint64) (*Receipt, error) {
	hash := common.HexToHash(txHash)
	if confirmations == 0 {
		confirmations = 1
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.receiptIfConfirmed(ctx, hash, confirmations)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) receiptIfConfirmed(ctx context.Context, hash common.Hash, confirmations uint64) (*Receipt, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	receipt, err := c.backend.TransactionReceipt(ctx, hash)
	if receiptPending(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("transaction receipt: %w", err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, ErrTransactionReverted
	}

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	head, err := c.backend.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("block number: %w", err)
	}

	mined := receipt.BlockNumber.Uint64()
	if head < mined || head-mined+1 < confirmations {
		return nil, nil
	}

	return &Receipt{
		TxHash:      hash.Hex(),
		BlockNumber: mined,
		GasUsed:     receipt.GasUsed,
	}, nil
}

// receiptPending reports whether err means the receipt is not available yet.
// Nodes answer with an indexing error while the transaction index is catching up.
func receiptPending(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ethereum.NotFound) {
		return true
	}
	return strings.Contains(err.Error(), errTxIndexing)
}

func (c *Client) chainIDFor(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != nil {
		return c.chainID, nil
	}
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	c.chainID = id
	return id, nil
}

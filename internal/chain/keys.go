package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
)

const weiDecimals = 18

// GenerateKey creates a new secp256k1 keypair and returns its checksummed
// address and 0x-prefixed private key.
func GenerateKey() (address, privateKeyHex string, err error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return "", "", fmt.Errorf("generate key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(crypto.FromECDSA(key)), nil
}

// IsValidAddress reports whether s is a 20-byte hex address.
func IsValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// GasLimitWithBuffer adds a 20% safety margin to a gas estimate.
func GasLimitWithBuffer(estimate uint64) uint64 {
	return estimate * 120 / 100
}

// ToWei converts a native amount to wei, truncating below 18 decimals.
func ToWei(amount decimal.Decimal) *big.Int {
	return amount.Shift(weiDecimals).BigInt()
}

// FromWei converts wei to native units.
func FromWei(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -weiDecimals)
}

// KeyGenerator creates wallet keypairs with GenerateKey.
type KeyGenerator struct{}

// Generate returns a fresh address and private key.
func (KeyGenerator) Generate() (address, privateKeyHex string, err error) {
	return GenerateKey()
}

package test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// TreasuryKeyHex is a throwaway secp256k1 key used as the treasury signer in tests.
const TreasuryKeyHex = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

// TreasuryAddress returns the address derived from TreasuryKeyHex.
func TreasuryAddress(t *testing.T) common.Address {
	t.Helper()

	key, err := crypto.HexToECDSA(TreasuryKeyHex)
	if err != nil {
		t.Fatalf("failed to parse treasury test key: %v", err)
	}

	return crypto.PubkeyToAddress(key.PublicKey)
}

// pkg/network/cosmos/config.go
package cosmos

import (
	"fmt"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

const (
	// Bech32Prefix is the account address prefix of Terra chains.
	Bech32Prefix = "terra"

	// CoinType is the BIP44 coin type used to derive Terra keys.
	CoinType = 330

	// PubKeyAminoType is the amino name of a secp256k1 public key.
	PubKeyAminoType = "tendermint/PubKeySecp256k1"
)

// AccAddress encodes the address of pubKey with the Terra prefix.
// It does not touch the SDK's global bech32 config.
func AccAddress(pubKey cryptotypes.PubKey) (string, error) {
	addr, err := bech32.ConvertAndEncode(Bech32Prefix, pubKey.Address().Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	return addr, nil
}

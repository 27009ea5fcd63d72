// pkg/network/cosmos/signing.go
package cosmos

import (
	"context"
	"fmt"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/go-bip39"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

// LoadPrivateKey loads a secp256k1 private key from bytes.
// Expects 32 bytes for secp256k1.
func LoadPrivateKey(privKeyBytes []byte) (cryptotypes.PrivKey, error) {
	if len(privKeyBytes) != 32 {
		return nil, fmt.Errorf("invalid private key length: expected 32, got %d", len(privKeyBytes))
	}
	privKey := &secp256k1.PrivKey{Key: privKeyBytes}
	return privKey, nil
}

// SignBytes signs arbitrary bytes with the private key.
func SignBytes(privKey cryptotypes.PrivKey, signDoc []byte) ([]byte, error) {
	if privKey == nil {
		return nil, fmt.Errorf("private key is required")
	}
	if signDoc == nil {
		return nil, fmt.Errorf("sign document cannot be nil")
	}
	signature, err := privKey.Sign(signDoc)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return signature, nil
}

// DeriveKey derives the secp256k1 key at m/44'/330'/account'/0/index.
func DeriveKey(mnemonic string, account, index uint32) (cryptotypes.PrivKey, error) {
	if mnemonic == "" {
		return nil, fmt.Errorf("mnemonic not provided")
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}

	path := hd.CreateHDPath(CoinType, account, index).String()
	derived, err := hd.Secp256k1.Derive()(mnemonic, "", path)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key at %s: %w", path, err)
	}

	return LoadPrivateKey(derived)
}

// Wallet is a signing identity backed by an in-memory secp256k1 key.
type Wallet struct {
	privKey cryptotypes.PrivKey
	address string
}

// NewWallet wraps an already-derived key.
func NewWallet(privKey cryptotypes.PrivKey) (*Wallet, error) {
	if privKey == nil {
		return nil, fmt.Errorf("private key required for signing")
	}
	addr, err := AccAddress(privKey.PubKey())
	if err != nil {
		return nil, err
	}
	return &Wallet{privKey: privKey, address: addr}, nil
}

// NewWalletFromMnemonic derives the first account key of mnemonic.
func NewWalletFromMnemonic(mnemonic string) (*Wallet, error) {
	privKey, err := DeriveKey(mnemonic, 0, 0)
	if err != nil {
		return nil, err
	}
	return NewWallet(privKey)
}

// Address returns the bech32 account address.
func (w *Wallet) Address() string {
	return w.address
}

// Sign signs the amino-JSON sign document of draft and assembles the StdTx.
func (w *Wallet) Sign(ctx context.Context, draft *network.Draft, fee network.Fee, data network.SignerData) (*network.SignedTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, msg := range draft.Msgs {
		if msg.GetSigner() != w.address {
			return nil, fmt.Errorf("message %d must be signed by %s, not %s", i, msg.GetSigner(), w.address)
		}
	}

	signDoc, err := StdSignBytes(data, fee, draft.Memo, draft.Msgs)
	if err != nil {
		return nil, err
	}

	signature, err := SignBytes(w.privKey, signDoc)
	if err != nil {
		return nil, err
	}

	pubKey := w.privKey.PubKey().Bytes()
	txBytes, err := EncodeStdTx(StdTx{
		Msg:  network.WrapAmino(draft.Msgs),
		Fee:  fee,
		Memo: draft.Memo,
		Signatures: []StdSignature{{
			PubKey:    StdPubKey{Type: PubKeyAminoType, Value: pubKey},
			Signature: signature,
		}},
	})
	if err != nil {
		return nil, err
	}

	return &network.SignedTx{
		Tx:        txBytes,
		Signature: signature,
		PubKey:    pubKey,
		Sequence:  data.Sequence,
	}, nil
}

// Ensure Wallet implements network.Signer.
var _ network.Signer = (*Wallet)(nil)

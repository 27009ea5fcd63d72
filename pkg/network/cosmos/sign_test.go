// pkg/network/cosmos/sign_test.go
package cosmos

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestLoadPrivateKey(t *testing.T) {
	tests := []struct {
		name        string
		keyBytes    []byte
		expectError bool
		errContains string
	}{
		{
			name:        "valid 32-byte key",
			keyBytes:    make([]byte, 32),
			expectError: false,
		},
		{
			name:        "too short key",
			keyBytes:    make([]byte, 16),
			expectError: true,
			errContains: "invalid private key length",
		},
		{
			name:        "too long key",
			keyBytes:    make([]byte, 64),
			expectError: true,
			errContains: "invalid private key length",
		},
		{
			name:        "empty key",
			keyBytes:    []byte{},
			expectError: true,
			errContains: "invalid private key length",
		},
		{
			name:        "nil key",
			keyBytes:    nil,
			expectError: true,
			errContains: "invalid private key length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			privKey, err := LoadPrivateKey(tt.keyBytes)
			if tt.expectError {
				require.Error(t, err)
				require.Nil(t, privKey)
				require.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
				require.NotNil(t, privKey)
			}
		})
	}
}

func TestLoadPrivateKey_ValidKey(t *testing.T) {
	// Generate a real key and test loading it
	origKey := secp256k1.GenPrivKey()
	keyBytes := origKey.Bytes()

	loadedKey, err := LoadPrivateKey(keyBytes)
	require.NoError(t, err)
	require.NotNil(t, loadedKey)

	// Verify the loaded key produces the same public key
	require.Equal(t, origKey.PubKey().Bytes(), loadedKey.PubKey().Bytes())
}

func TestSignBytes(t *testing.T) {
	privKey := secp256k1.GenPrivKey()
	signDoc := []byte("test sign document")

	signature, err := SignBytes(privKey, signDoc)
	require.NoError(t, err)
	require.NotEmpty(t, signature)

	// Verify the signature is valid
	pubKey := privKey.PubKey()
	isValid := pubKey.VerifySignature(signDoc, signature)
	require.True(t, isValid, "signature should be valid")
}

func TestSignBytes_DifferentDocuments(t *testing.T) {
	privKey := secp256k1.GenPrivKey()
	doc1 := []byte("document 1")
	doc2 := []byte("document 2")

	sig1, err := SignBytes(privKey, doc1)
	require.NoError(t, err)

	sig2, err := SignBytes(privKey, doc2)
	require.NoError(t, err)

	// Signatures should be different for different documents
	require.NotEqual(t, sig1, sig2)

	// Each signature should only verify against its own document
	pubKey := privKey.PubKey()
	require.True(t, pubKey.VerifySignature(doc1, sig1))
	require.True(t, pubKey.VerifySignature(doc2, sig2))
	require.False(t, pubKey.VerifySignature(doc1, sig2))
	require.False(t, pubKey.VerifySignature(doc2, sig1))
}

func TestSignBytes_EmptyDocument(t *testing.T) {
	privKey := secp256k1.GenPrivKey()
	emptyDoc := []byte{}

	signature, err := SignBytes(privKey, emptyDoc)
	require.NoError(t, err)
	require.NotEmpty(t, signature)

	// Verify the signature
	pubKey := privKey.PubKey()
	require.True(t, pubKey.VerifySignature(emptyDoc, signature))
}

func TestSignBytes_NilPrivateKey(t *testing.T) {
	signDoc := []byte("test sign document")

	signature, err := SignBytes(nil, signDoc)
	require.Error(t, err)
	require.Nil(t, signature)
	require.Contains(t, err.Error(), "private key is required")
}

func TestSignBytes_NilSignDoc(t *testing.T) {
	privKey := secp256k1.GenPrivKey()

	signature, err := SignBytes(privKey, nil)
	require.Error(t, err)
	require.Nil(t, signature)
	require.Contains(t, err.Error(), "sign document cannot be nil")
}

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name        string
		mnemonic    string
		errContains string
	}{
		{name: "valid mnemonic", mnemonic: testMnemonic},
		{name: "empty mnemonic", mnemonic: "", errContains: "mnemonic not provided"},
		{name: "bad checksum", mnemonic: strings.Repeat("abandon ", 11) + "abandon", errContains: "invalid mnemonic"},
		{name: "not words", mnemonic: "not a real mnemonic", errContains: "invalid mnemonic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			privKey, err := DeriveKey(tt.mnemonic, 0, 0)
			if tt.errContains != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			require.Len(t, privKey.Bytes(), 32)
		})
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	first, err := DeriveKey(testMnemonic, 0, 0)
	require.NoError(t, err)
	second, err := DeriveKey(testMnemonic, 0, 0)
	require.NoError(t, err)
	other, err := DeriveKey(testMnemonic, 0, 1)
	require.NoError(t, err)

	require.Equal(t, first.Bytes(), second.Bytes())
	require.NotEqual(t, first.Bytes(), other.Bytes())
}

func TestNewWalletFromMnemonic(t *testing.T) {
	wallet, err := NewWalletFromMnemonic(testMnemonic)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(wallet.Address(), Bech32Prefix+"1"))
	require.Len(t, wallet.Address(), 44)

	_, err = NewWallet(nil)
	require.Error(t, err)
}

func signerFixture(t *testing.T) (*Wallet, *network.Draft, network.Fee, network.SignerData) {
	t.Helper()
	wallet, err := NewWalletFromMnemonic(testMnemonic)
	require.NoError(t, err)

	msg := network.NewMsgExecuteContract(wallet.Address(), testContract, json.RawMessage(`{"finalize_arb":{}}`))
	draft := network.NewDraft(network.FeeParams{
		GasPrice:      sdk.NewDecCoinFromDec("uusd", sdkmath.LegacyMustNewDecFromStr("0.15")),
		GasAdjustment: sdkmath.LegacyMustNewDecFromStr("1.4"),
	}, msg)
	fee := network.ComputeFee(200000, draft.Fee)
	data := network.SignerData{ChainID: "bombay-12", AccountNumber: 5, Sequence: 10}

	return wallet, draft, fee, data
}

func TestWalletSign(t *testing.T) {
	wallet, draft, fee, data := signerFixture(t)

	signed, err := wallet.Sign(context.Background(), draft, fee, data)
	require.NoError(t, err)
	require.Equal(t, uint64(10), signed.Sequence)
	require.False(t, signed.Broadcasted())

	signDoc, err := StdSignBytes(data, fee, draft.Memo, draft.Msgs)
	require.NoError(t, err)

	pubKey := &secp256k1.PubKey{Key: signed.PubKey}
	require.True(t, pubKey.VerifySignature(signDoc, signed.Signature), "signature should be valid")

	tx := gjson.ParseBytes(signed.Tx)
	require.Equal(t, network.TypeMsgExecuteContract, tx.Get("msg.0.type").String())
	require.Equal(t, wallet.Address(), tx.Get("msg.0.value.sender").String())
	require.Equal(t, PubKeyAminoType, tx.Get("signatures.0.pub_key.type").String())
	require.Equal(t, "280000", tx.Get("fee.gas").String())
	require.Equal(t, "42000", tx.Get("fee.amount.0.amount").String())
}

func TestWalletSign_BindsSequence(t *testing.T) {
	wallet, draft, fee, data := signerFixture(t)

	first, err := wallet.Sign(context.Background(), draft, fee, data)
	require.NoError(t, err)

	data.Sequence++
	second, err := wallet.Sign(context.Background(), draft, fee, data)
	require.NoError(t, err)

	require.NotEqual(t, first.Signature, second.Signature)
}

func TestWalletSign_RejectsForeignSigner(t *testing.T) {
	wallet, _, fee, data := signerFixture(t)

	msg := network.NewMsgExecuteContract(testSender, testContract, json.RawMessage(`{"finalize_arb":{}}`))
	draft := network.NewDraft(network.FeeParams{}, msg)

	signed, err := wallet.Sign(context.Background(), draft, fee, data)
	require.Error(t, err)
	require.Nil(t, signed)
	require.Contains(t, err.Error(), "must be signed by")
}

func TestWalletSign_CanceledContext(t *testing.T) {
	wallet, draft, fee, data := signerFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := wallet.Sign(ctx, draft, fee, data)
	require.ErrorIs(t, err, context.Canceled)
}

// pkg/network/cosmos/txbuilder.go
package cosmos

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

// StdSignDoc is the legacy amino-JSON document a signer commits to.
type StdSignDoc struct {
	AccountNumber uint64             `json:"account_number,string"`
	ChainID       string             `json:"chain_id"`
	Fee           network.Fee        `json:"fee"`
	Memo          string             `json:"memo"`
	Msgs          []network.AminoMsg `json:"msgs"`
	Sequence      uint64             `json:"sequence,string"`
}

// StdPubKey is the amino-JSON form of a public key.
type StdPubKey struct {
	Type  string `json:"type"`
	Value []byte `json:"value"`
}

// StdSignature pairs a signature with the key that produced it.
type StdSignature struct {
	PubKey    StdPubKey `json:"pub_key"`
	Signature []byte    `json:"signature"`
}

// StdTx is the legacy amino-JSON transaction accepted by the LCD.
type StdTx struct {
	Msg        []network.AminoMsg `json:"msg"`
	Fee        network.Fee        `json:"fee"`
	Signatures []StdSignature     `json:"signatures"`
	Memo       string             `json:"memo"`
}

// StdSignBytes returns the bytes to sign. They are built the way the chain
// rebuilds them when it verifies the signature: encoding/json output with
// sorted keys, HTML characters escaped and no insignificant whitespace.
func StdSignBytes(data network.SignerData, fee network.Fee, memo string, msgs []network.Msg) ([]byte, error) {
	if data.ChainID == "" {
		return nil, fmt.Errorf("chain ID is required")
	}

	doc := StdSignDoc{
		AccountNumber: data.AccountNumber,
		ChainID:       data.ChainID,
		Fee:           fee,
		Memo:          memo,
		Msgs:          network.WrapAmino(msgs),
		Sequence:      data.Sequence,
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign doc: %w", err)
	}
	sorted, err := sdk.SortJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to sort sign doc: %w", err)
	}
	return sorted, nil
}

// EncodeStdTx encodes tx for broadcast. Message payloads are copied as they
// are, so integers keep every digit.
func EncodeStdTx(tx StdTx) (json.RawMessage, error) {
	if tx.Signatures == nil {
		tx.Signatures = []StdSignature{}
	}
	raw, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tx: %w", err)
	}
	return raw, nil
}

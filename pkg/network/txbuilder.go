// pkg/network/txbuilder.go
package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Signer is the signing identity used by the transaction pipeline.
// Implementations hold an already-derived credential; they never touch the network.
type Signer interface {
	// Address returns the bech32 account address of the credential.
	Address() string

	// Sign produces a signed transaction for the draft using the given fee and
	// freshly fetched account data.
	Sign(ctx context.Context, draft *Draft, fee Fee, data SignerData) (*SignedTx, error)
}

// Querier runs read-only smart queries against a contract.
type Querier interface {
	QueryContract(ctx context.Context, contract string, req any) (json.RawMessage, error)
}

// LedgerClient is the RPC boundary to the ledger node.
//
// All calls are single-shot round trips. Broadcast in particular must never be
// retried by an implementation.
type LedgerClient interface {
	Querier

	// Account returns the account number and current sequence for addr.
	Account(ctx context.Context, addr string) (*AccountInfo, error)

	// EstimateGas simulates the draft and returns the unadjusted gas estimate.
	EstimateGas(ctx context.Context, draft *Draft, data SignerData) (uint64, error)

	// Broadcast submits a signed transaction exactly once.
	Broadcast(ctx context.Context, tx *SignedTx) (*BroadcastResult, error)
}

// AccountInfo contains the account information needed for transaction signing.
type AccountInfo struct {
	// Address is the bech32-encoded account address.
	Address string

	// AccountNumber is the unique identifier for the account on the chain.
	AccountNumber uint64

	// Sequence is the transaction sequence number (nonce).
	Sequence uint64
}

// FeeParams configures how the transaction fee is derived.
type FeeParams struct {
	// GasPrice is the price per unit of gas, e.g. 0.15uusd.
	GasPrice sdk.DecCoin

	// GasAdjustment is the safety multiplier applied to estimated gas.
	GasAdjustment sdkmath.LegacyDec

	// GasLimit skips estimation when non-zero.
	GasLimit uint64
}

// Validate checks that the fee parameters are usable.
func (p FeeParams) Validate() error {
	if p.GasPrice.Denom == "" {
		return fmt.Errorf("gas price denom is required")
	}
	if p.GasPrice.Amount.IsNil() || p.GasPrice.Amount.IsNegative() {
		return fmt.Errorf("gas price must be non-negative")
	}
	if p.GasAdjustment.IsNil() || !p.GasAdjustment.IsPositive() {
		return fmt.Errorf("gas adjustment must be positive")
	}
	return nil
}

// Fee is the final fee attached to a transaction.
type Fee struct {
	Amount sdk.Coins `json:"amount"`
	Gas    uint64    `json:"gas,string"`
}

// ComputeFee applies the gas adjustment to an estimate and prices the result.
// A fixed GasLimit in params takes precedence over the estimate.
func ComputeFee(estimate uint64, params FeeParams) Fee {
	gas := params.GasLimit
	if gas == 0 {
		gas = uint64(sdkmath.LegacyNewDecFromInt(sdkmath.NewIntFromUint64(estimate)).
			Mul(params.GasAdjustment).Ceil().TruncateInt64())
	}

	amount := params.GasPrice.Amount.MulInt(sdkmath.NewIntFromUint64(gas)).Ceil().TruncateInt()
	return Fee{
		Amount: sdk.NewCoins(sdk.NewCoin(params.GasPrice.Denom, amount)),
		Gas:    gas,
	}
}

// Draft is an unsigned, ordered batch of messages plus fee parameters.
// The ledger executes the messages atomically and in order.
type Draft struct {
	Msgs []Msg
	Memo string
	Fee  FeeParams
}

// NewDraft copies msgs into a new draft.
func NewDraft(fee FeeParams, msgs ...Msg) *Draft {
	return &Draft{
		Msgs: append([]Msg(nil), msgs...),
		Fee:  fee,
	}
}

// ValidateBasic checks every message in order.
func (d *Draft) ValidateBasic() error {
	if len(d.Msgs) == 0 {
		return fmt.Errorf("draft contains no messages")
	}
	for i, msg := range d.Msgs {
		if err := msg.ValidateBasic(); err != nil {
			return fmt.Errorf("message %d (%s): %w", i, msg.Type(), err)
		}
	}
	return nil
}

// SignerData is the per-run account state bound into a signature.
type SignerData struct {
	ChainID       string
	AccountNumber uint64
	Sequence      uint64
}

// ErrAlreadyBroadcast is returned when a signed transaction is broadcast twice.
var ErrAlreadyBroadcast = errors.New("signed transaction was already broadcast")

// SignedTx is an opaque, single-use signed transaction.
type SignedTx struct {
	// Tx is the JSON encoding of the signed transaction, ready for broadcast.
	Tx json.RawMessage

	// Signature is the raw signature over the sign document.
	Signature []byte

	// PubKey is the signer's compressed public key.
	PubKey []byte

	// Sequence is the account sequence the signature commits to.
	Sequence uint64

	broadcast atomic.Bool
}

// MarkBroadcast records that tx is about to be broadcast. It fails on every
// call after the first.
func (tx *SignedTx) MarkBroadcast() error {
	if !tx.broadcast.CompareAndSwap(false, true) {
		return ErrAlreadyBroadcast
	}
	return nil
}

// Broadcasted reports whether MarkBroadcast has been called.
func (tx *SignedTx) Broadcasted() bool {
	return tx.broadcast.Load()
}

// BroadcastResult contains the ledger's verdict on a broadcast transaction.
type BroadcastResult struct {
	// Success is false when the ledger rejected or reverted the transaction.
	Success bool `json:"success"`

	// Code is the transaction result code (0 = success).
	Code uint32 `json:"code"`

	// Codespace is the module that produced a non-zero code.
	Codespace string `json:"codespace,omitempty"`

	// TxHash is the transaction hash.
	TxHash string `json:"txhash"`

	// Height is the block height where the transaction was included.
	Height int64 `json:"height,omitempty"`

	// RawLog is the chain log, kept exactly as returned by the node.
	RawLog string `json:"raw_log,omitempty"`

	// Logs holds the per-message event logs.
	Logs []MsgLog `json:"logs,omitempty"`

	// Events aggregates the events of all messages, grouped by type.
	Events Events `json:"events,omitempty"`
}

// MsgLog is the event log emitted by a single message.
type MsgLog struct {
	MsgIndex int    `json:"msg_index"`
	Events   Events `json:"events"`
}

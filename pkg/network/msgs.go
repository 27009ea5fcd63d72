// pkg/network/msgs.go
package network

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// Amino route names of the wasm messages, as the LCD expects them.
const (
	TypeMsgExecuteContract     = "wasm/MsgExecuteContract"
	TypeMsgStoreCode           = "wasm/MsgStoreCode"
	TypeMsgInstantiateContract = "wasm/MsgInstantiateContract"
)

// Msg is a ledger-native instruction that can be bundled into a Draft.
// Its JSON encoding is the amino "value" of the message.
type Msg interface {
	// Type returns the amino route name of the message.
	Type() string

	// GetSigner returns the address that must sign the message.
	GetSigner() string

	// ValidateBasic performs stateless checks.
	ValidateBasic() error
}

// AminoMsg wraps a Msg as {"type": ..., "value": ...}.
type AminoMsg struct {
	Type  string `json:"type"`
	Value Msg    `json:"value"`
}

// WrapAmino wraps msgs in order.
func WrapAmino(msgs []Msg) []AminoMsg {
	out := make([]AminoMsg, len(msgs))
	for i, msg := range msgs {
		out[i] = AminoMsg{Type: msg.Type(), Value: msg}
	}
	return out
}

// MsgExecuteContract executes a contract method with optional attached funds.
type MsgExecuteContract struct {
	Sender     string          `json:"sender"`
	Contract   string          `json:"contract"`
	ExecuteMsg json.RawMessage `json:"execute_msg"`
	Coins      []sdk.Coin      `json:"coins"`
}

// NewMsgExecuteContract copies funds so the message cannot be mutated through
// the caller's slice. Funds keep their given order.
func NewMsgExecuteContract(sender, contract string, executeMsg json.RawMessage, funds ...sdk.Coin) *MsgExecuteContract {
	return &MsgExecuteContract{
		Sender:     sender,
		Contract:   contract,
		ExecuteMsg: append(json.RawMessage(nil), executeMsg...),
		Coins:      append([]sdk.Coin{}, funds...),
	}
}

func (m *MsgExecuteContract) Type() string      { return TypeMsgExecuteContract }
func (m *MsgExecuteContract) GetSigner() string { return m.Sender }

func (m *MsgExecuteContract) ValidateBasic() error {
	if err := validateAddress("sender", m.Sender); err != nil {
		return err
	}
	if err := validateAddress("contract", m.Contract); err != nil {
		return err
	}
	if !json.Valid(m.ExecuteMsg) {
		return fmt.Errorf("execute_msg is not valid JSON")
	}
	return validateFunds(m.Coins)
}

// MsgStoreCode uploads contract bytecode. The bytecode encodes as base64 text.
type MsgStoreCode struct {
	Sender       string `json:"sender"`
	WASMByteCode []byte `json:"wasm_byte_code"`
}

func NewMsgStoreCode(sender string, code []byte) *MsgStoreCode {
	return &MsgStoreCode{
		Sender:       sender,
		WASMByteCode: append([]byte(nil), code...),
	}
}

func (m *MsgStoreCode) Type() string      { return TypeMsgStoreCode }
func (m *MsgStoreCode) GetSigner() string { return m.Sender }

func (m *MsgStoreCode) ValidateBasic() error {
	if err := validateAddress("sender", m.Sender); err != nil {
		return err
	}
	if len(m.WASMByteCode) == 0 {
		return fmt.Errorf("wasm byte code is empty")
	}
	return nil
}

// MsgInstantiateContract creates a contract instance from stored code.
type MsgInstantiateContract struct {
	Sender    string          `json:"sender"`
	Admin     string          `json:"admin"`
	CodeID    uint64          `json:"code_id,string"`
	InitMsg   json.RawMessage `json:"init_msg"`
	InitCoins []sdk.Coin      `json:"init_coins"`
}

func NewMsgInstantiateContract(sender, admin string, codeID uint64, initMsg json.RawMessage, funds ...sdk.Coin) *MsgInstantiateContract {
	return &MsgInstantiateContract{
		Sender:    sender,
		Admin:     admin,
		CodeID:    codeID,
		InitMsg:   append(json.RawMessage(nil), initMsg...),
		InitCoins: append([]sdk.Coin{}, funds...),
	}
}

func (m *MsgInstantiateContract) Type() string      { return TypeMsgInstantiateContract }
func (m *MsgInstantiateContract) GetSigner() string { return m.Sender }

func (m *MsgInstantiateContract) ValidateBasic() error {
	if err := validateAddress("sender", m.Sender); err != nil {
		return err
	}
	if m.Admin != "" {
		if err := validateAddress("admin", m.Admin); err != nil {
			return err
		}
	}
	if m.CodeID == 0 {
		return fmt.Errorf("code id is required")
	}
	if !json.Valid(m.InitMsg) {
		return fmt.Errorf("init_msg is not valid JSON")
	}
	return validateFunds(m.InitCoins)
}

func validateAddress(field, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s address is required", field)
	}
	if _, _, err := bech32.DecodeAndConvert(addr); err != nil {
		return fmt.Errorf("invalid %s address %q: %w", field, addr, err)
	}
	return nil
}

func validateFunds(funds []sdk.Coin) error {
	for _, coin := range funds {
		if err := coin.Validate(); err != nil {
			return fmt.Errorf("invalid funds: %w", err)
		}
	}
	return nil
}

// Ensure the wasm messages implement Msg.
var (
	_ Msg = (*MsgExecuteContract)(nil)
	_ Msg = (*MsgStoreCode)(nil)
	_ Msg = (*MsgInstantiateContract)(nil)
)

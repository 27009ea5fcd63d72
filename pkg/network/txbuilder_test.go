// pkg/network/txbuilder_test.go
package network

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

const (
	testSender   = "terra1h9tmwpwll5zpx6dvu28t8mvjk9jctu9nftm5ru"
	testContract = "terra1jtdz9fhrrwd8yak6e3z7utmkypvx0qf0n393c6"
)

func testFeeParams() FeeParams {
	return FeeParams{
		GasPrice:      sdk.NewDecCoinFromDec("uusd", sdkmath.LegacyMustNewDecFromStr("0.15")),
		GasAdjustment: sdkmath.LegacyMustNewDecFromStr("1.4"),
	}
}

func TestComputeFee(t *testing.T) {
	tests := []struct {
		name       string
		estimate   uint64
		gasLimit   uint64
		wantGas    uint64
		wantAmount int64
	}{
		{name: "adjusted estimate", estimate: 200000, wantGas: 280000, wantAmount: 42000},
		{name: "gas rounds up", estimate: 100001, wantGas: 140002, wantAmount: 21001},
		{name: "fixed gas limit", estimate: 200000, gasLimit: 500000, wantGas: 500000, wantAmount: 75000},
		{name: "zero estimate", estimate: 0, wantGas: 0, wantAmount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := testFeeParams()
			params.GasLimit = tt.gasLimit

			fee := ComputeFee(tt.estimate, params)
			require.Equal(t, tt.wantGas, fee.Gas)
			require.True(t, sdkmath.NewInt(tt.wantAmount).Equal(fee.Amount.AmountOf("uusd")), "fee %s", fee.Amount)
		})
	}
}

func TestFeeParamsValidate(t *testing.T) {
	require.NoError(t, testFeeParams().Validate())

	noDenom := testFeeParams()
	noDenom.GasPrice = sdk.DecCoin{Amount: sdkmath.LegacyOneDec()}
	require.Error(t, noDenom.Validate())

	zeroAdj := testFeeParams()
	zeroAdj.GasAdjustment = sdkmath.LegacyZeroDec()
	require.Error(t, zeroAdj.Validate())

	require.Error(t, FeeParams{}.Validate())
}

func TestDraftValidateBasic(t *testing.T) {
	valid := NewMsgExecuteContract(testSender, testContract, json.RawMessage(`{"finalize_arb":{}}`))

	tests := []struct {
		name        string
		msgs        []Msg
		errContains string
	}{
		{name: "single message", msgs: []Msg{valid}},
		{name: "empty draft", errContains: "no messages"},
		{
			name:        "bad contract",
			msgs:        []Msg{valid, NewMsgExecuteContract(testSender, "terra1bogus", json.RawMessage(`{}`))},
			errContains: "message 1",
		},
		{
			name:        "invalid execute msg",
			msgs:        []Msg{NewMsgExecuteContract(testSender, testContract, json.RawMessage(`{`))},
			errContains: "not valid JSON",
		},
		{
			name:        "empty code",
			msgs:        []Msg{NewMsgStoreCode(testSender, nil)},
			errContains: "empty",
		},
		{
			name:        "missing code id",
			msgs:        []Msg{NewMsgInstantiateContract(testSender, "", 0, json.RawMessage(`{}`))},
			errContains: "code id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDraft(testFeeParams(), tt.msgs...).ValidateBasic()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestNewDraft_CopiesMessages(t *testing.T) {
	msgs := []Msg{NewMsgExecuteContract(testSender, testContract, json.RawMessage(`{}`))}
	draft := NewDraft(testFeeParams(), msgs...)

	msgs[0] = NewMsgStoreCode(testSender, []byte{1})
	require.Equal(t, TypeMsgExecuteContract, draft.Msgs[0].Type())
}

func TestNewMsgExecuteContract_KeepsFundsOrder(t *testing.T) {
	funds := []sdk.Coin{sdk.NewInt64Coin("uusd", 2), sdk.NewInt64Coin("uluna", 1)}
	msg := NewMsgExecuteContract(testSender, testContract, json.RawMessage(`{}`), funds...)

	funds[0] = sdk.NewInt64Coin("ukrw", 9)
	require.Equal(t, "uusd", msg.Coins[0].Denom)
	require.Equal(t, "uluna", msg.Coins[1].Denom)
}

func TestSignedTxMarkBroadcast(t *testing.T) {
	tx := &SignedTx{Tx: json.RawMessage(`{}`)}
	require.False(t, tx.Broadcasted())

	require.NoError(t, tx.MarkBroadcast())
	require.True(t, tx.Broadcasted())
	require.ErrorIs(t, tx.MarkBroadcast(), ErrAlreadyBroadcast)
}

func TestSignedTxMarkBroadcast_Concurrent(t *testing.T) {
	tx := &SignedTx{}
	var wins atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tx.MarkBroadcast() == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
}

func TestAminoMsgEncoding(t *testing.T) {
	msg := NewMsgStoreCode(testSender, []byte{0x00, 0x61, 0x73, 0x6d})
	bz, err := json.Marshal(WrapAmino([]Msg{msg}))
	require.NoError(t, err)
	require.JSONEq(t, `[{"type":"wasm/MsgStoreCode","value":{"sender":"`+testSender+`","wasm_byte_code":"AGFzbQ=="}}]`, string(bz))

	inst := NewMsgInstantiateContract(testSender, testSender, 42, json.RawMessage(`{"owner":"x"}`))
	bz, err = json.Marshal(inst)
	require.NoError(t, err)
	require.JSONEq(t, `{"sender":"`+testSender+`","admin":"`+testSender+`","code_id":"42","init_msg":{"owner":"x"},"init_coins":[]}`, string(bz))
}

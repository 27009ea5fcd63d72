// pkg/network/wasm/msgs_test.go
package wasm

import (
	"encoding/json"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

const (
	testSender  = "terra1h9tmwpwll5zpx6dvu28t8mvjk9jctu9nftm5ru"
	testPair    = "terra144m28x7d3lzjzp423mdydll6cmfafg407ve3ev"
	testArb     = "terra1jtdz9fhrrwd8yak6e3z7utmkypvx0qf0n393c6"
	testCouncil = "terra1685de0sx5px80d47ec2xjln224phshysqxxeje"
	testToken   = "terra19wauh79y42u5vt62c5adt2g5h4exgh26t3rpds"
)

func TestSwap(t *testing.T) {
	msg, err := Swap(testSender, testPair, sdk.NewInt64Coin("uusd", 1000000), DefaultMaxSpread)
	require.NoError(t, err)
	require.NoError(t, msg.ValidateBasic())

	require.Equal(t, testSender, msg.Sender)
	require.Equal(t, testPair, msg.Contract)
	require.JSONEq(t,
		`{"swap":{"offer_asset":{"info":{"native_token":{"denom":"uusd"}},"amount":"1000000"},"max_spread":"0.5"}}`,
		string(msg.ExecuteMsg))
	require.Equal(t, []sdk.Coin{sdk.NewInt64Coin("uusd", 1000000)}, msg.Coins)
}

func TestSwap_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		offer     sdk.Coin
		maxSpread string
	}{
		{name: "zero offer", offer: sdk.NewInt64Coin("uusd", 0), maxSpread: "0.5"},
		{name: "bad spread", offer: sdk.NewInt64Coin("uusd", 1), maxSpread: "half"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Swap(testSender, testPair, tt.offer, tt.maxSpread)
			require.Error(t, err)
		})
	}
}

func TestCastVote(t *testing.T) {
	msg, err := CastVote(testSender, testCouncil, 3, VoteAgainst)
	require.NoError(t, err)
	require.JSONEq(t, `{"cast_vote":{"proposal_id":3,"vote":"against"}}`, string(msg.ExecuteMsg))
	require.Empty(t, msg.Coins)

	_, err = CastVote(testSender, testCouncil, 0, VoteFor)
	require.Error(t, err)

	_, err = CastVote(testSender, testCouncil, 1, VoteOption("abstain"))
	require.Error(t, err)
}

func TestParseVoteOption(t *testing.T) {
	vote, err := ParseVoteOption("for")
	require.NoError(t, err)
	require.Equal(t, VoteFor, vote)

	_, err = ParseVoteOption("yes")
	require.Error(t, err)
	require.Contains(t, err.Error(), "valid options")
}

func TestEndProposal(t *testing.T) {
	msg, err := EndProposal(testSender, testCouncil, 8)
	require.NoError(t, err)
	require.JSONEq(t, `{"end_proposal":{"proposal_id":8}}`, string(msg.ExecuteMsg))
}

func TestExecuteArb(t *testing.T) {
	tests := []struct {
		name          string
		amount        string
		minimumProfit string
		expected      string
		errContains   string
	}{
		{
			name:          "explicit profit",
			amount:        "1000000",
			minimumProfit: "0.1",
			expected:      `{"execute_arb":{"amount":"1000000","minimum_profit":"0.1"}}`,
		},
		{
			name:     "default profit",
			amount:   "5",
			expected: `{"execute_arb":{"amount":"5","minimum_profit":"0.05"}}`,
		},
		{name: "non integer amount", amount: "1.5", errContains: "invalid amount"},
		{name: "negative profit", amount: "1", minimumProfit: "-0.1", errContains: "negative"},
		{name: "bad profit", amount: "1", minimumProfit: "lots", errContains: "invalid minimum profit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ExecuteArb(testSender, testArb, tt.amount, tt.minimumProfit)
			if tt.errContains != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			require.JSONEq(t, tt.expected, string(msg.ExecuteMsg))
		})
	}
}

func TestFinalizeArb(t *testing.T) {
	msg, err := FinalizeArb(testSender, testArb)
	require.NoError(t, err)
	require.Equal(t, `{"finalize_arb":{}}`, string(msg.ExecuteMsg))
	require.Equal(t, network.TypeMsgExecuteContract, msg.Type())
}

func TestFinalizeArbWithKey(t *testing.T) {
	msg, err := FinalizeArbWithKey(testSender, testArb, FinalizeArbMisspelledKey)
	require.NoError(t, err)
	require.Equal(t, `{"finialize_arb":{}}`, string(msg.ExecuteMsg))

	_, err = FinalizeArbWithKey(testSender, testArb, "finalise_arb")
	require.Error(t, err)

	_, err = ParseFinalizeArbKey("")
	require.Error(t, err)
}

func TestStoreCodeAndInstantiate(t *testing.T) {
	_, err := StoreCode(testSender, nil)
	require.Error(t, err)

	store, err := StoreCode(testSender, []byte("\x00asm"))
	require.NoError(t, err)
	require.NoError(t, store.ValidateBasic())

	cfg := ArbConfig{
		Owner:        testSender,
		BlunaToken:   testToken,
		BlunaPair:    testPair,
		BlunaHub:     testCouncil,
		RedBank:      testArb,
		ProfitShares: []ProfitShare{{Account: testSender, Share: "1"}},
	}
	inst, err := Instantiate(testSender, testSender, 42, cfg)
	require.NoError(t, err)
	require.NoError(t, inst.ValidateBasic())
	require.Equal(t, uint64(42), inst.CodeID)
	require.Contains(t, string(inst.InitMsg), `"profit_shares":[["`+testSender+`","1"]]`)

	_, err = Instantiate(testSender, "", 0, cfg)
	require.Error(t, err)
}

func TestInstantiate_RawInitMsgKeepsIntegers(t *testing.T) {
	raw := json.RawMessage(`{"limit":123456789012345678901234567890,"id":9007199254740993}`)

	inst, err := Instantiate(testSender, "", 42, raw)
	require.NoError(t, err)
	require.Equal(t, `{"id":9007199254740993,"limit":123456789012345678901234567890}`, string(inst.InitMsg))
}

// pkg/network/wasm/msgs.go
package wasm

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

// Defaults used by the operator scripts.
const (
	DefaultMaxSpread     = "0.5"
	DefaultMinimumProfit = "0.05"
	DefaultDepositAmount = "100000000000"
)

// AssetInfo identifies either a native denom or a CW20 token.
type AssetInfo struct {
	NativeToken *NativeToken `json:"native_token,omitempty"`
	Token       *Token       `json:"token,omitempty"`
}

// NativeToken is a bank denom.
type NativeToken struct {
	Denom string `json:"denom"`
}

// Token is a CW20 contract.
type Token struct {
	ContractAddr string `json:"contract_addr"`
}

// Asset is an amount of an asset. Amounts are decimal integer strings.
type Asset struct {
	Info   AssetInfo `json:"info"`
	Amount string    `json:"amount"`
}

// NativeAsset returns the Asset form of a bank coin.
func NativeAsset(coin sdk.Coin) Asset {
	return Asset{
		Info:   AssetInfo{NativeToken: &NativeToken{Denom: coin.Denom}},
		Amount: coin.Amount.String(),
	}
}

type swapMsg struct {
	Swap struct {
		OfferAsset Asset  `json:"offer_asset"`
		MaxSpread  string `json:"max_spread,omitempty"`
	} `json:"swap"`
}

// Swap offers a native coin to a pair contract. The offered coin is attached
// as funds.
func Swap(sender, pair string, offer sdk.Coin, maxSpread string) (*network.MsgExecuteContract, error) {
	if err := offer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid offer: %w", err)
	}
	if !offer.IsPositive() {
		return nil, fmt.Errorf("offer amount must be positive")
	}
	if maxSpread != "" {
		if _, err := sdkmath.LegacyNewDecFromStr(maxSpread); err != nil {
			return nil, fmt.Errorf("invalid max spread %q: %w", maxSpread, err)
		}
	}

	var msg swapMsg
	msg.Swap.OfferAsset = NativeAsset(offer)
	msg.Swap.MaxSpread = maxSpread

	return execute(sender, pair, msg, offer)
}

// VoteOption is a council vote.
type VoteOption string

const (
	VoteFor     VoteOption = "for"
	VoteAgainst VoteOption = "against"
)

// ParseVoteOption validates a vote option string.
func ParseVoteOption(s string) (VoteOption, error) {
	switch VoteOption(s) {
	case VoteFor, VoteAgainst:
		return VoteOption(s), nil
	default:
		return "", fmt.Errorf("invalid vote option: %s (valid options: for, against)", s)
	}
}

type castVoteMsg struct {
	CastVote struct {
		ProposalID uint64     `json:"proposal_id"`
		Vote       VoteOption `json:"vote"`
	} `json:"cast_vote"`
}

// CastVote votes on a council proposal.
func CastVote(sender, council string, proposalID uint64, vote VoteOption) (*network.MsgExecuteContract, error) {
	if proposalID == 0 {
		return nil, fmt.Errorf("proposal id must be positive")
	}
	if _, err := ParseVoteOption(string(vote)); err != nil {
		return nil, err
	}

	var msg castVoteMsg
	msg.CastVote.ProposalID = proposalID
	msg.CastVote.Vote = vote

	return execute(sender, council, msg)
}

type endProposalMsg struct {
	EndProposal struct {
		ProposalID uint64 `json:"proposal_id"`
	} `json:"end_proposal"`
}

// EndProposal closes voting on a proposal.
func EndProposal(sender, council string, proposalID uint64) (*network.MsgExecuteContract, error) {
	if proposalID == 0 {
		return nil, fmt.Errorf("proposal id must be positive")
	}

	var msg endProposalMsg
	msg.EndProposal.ProposalID = proposalID

	return execute(sender, council, msg)
}

type executeArbMsg struct {
	ExecuteArb struct {
		Amount        string `json:"amount"`
		MinimumProfit string `json:"minimum_profit"`
	} `json:"execute_arb"`
}

// ExecuteArb starts an arbitrage of amount uluna with the given minimum
// profit ratio.
func ExecuteArb(sender, arb, amount, minimumProfit string) (*network.MsgExecuteContract, error) {
	if err := validateUint(amount); err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if minimumProfit == "" {
		minimumProfit = DefaultMinimumProfit
	}
	profit, err := sdkmath.LegacyNewDecFromStr(minimumProfit)
	if err != nil {
		return nil, fmt.Errorf("invalid minimum profit %q: %w", minimumProfit, err)
	}
	if profit.IsNegative() {
		return nil, fmt.Errorf("minimum profit must not be negative")
	}

	var msg executeArbMsg
	msg.ExecuteArb.Amount = amount
	msg.ExecuteArb.MinimumProfit = minimumProfit

	return execute(sender, arb, msg)
}

// Message keys for finalize_arb. Contract builds that declare the variant as
// FinializeArb only accept the misspelled key.
const (
	FinalizeArbKey           = "finalize_arb"
	FinalizeArbMisspelledKey = "finialize_arb"
)

// ParseFinalizeArbKey validates a finalize message key.
func ParseFinalizeArbKey(s string) (string, error) {
	switch s {
	case FinalizeArbKey, FinalizeArbMisspelledKey:
		return s, nil
	default:
		return "", fmt.Errorf("invalid finalize message key: %s (valid keys: %s, %s)", s, FinalizeArbKey, FinalizeArbMisspelledKey)
	}
}

// FinalizeArb settles a finished arbitrage.
func FinalizeArb(sender, arb string) (*network.MsgExecuteContract, error) {
	return FinalizeArbWithKey(sender, arb, FinalizeArbKey)
}

// FinalizeArbWithKey is FinalizeArb with an explicit message key.
func FinalizeArbWithKey(sender, arb, key string) (*network.MsgExecuteContract, error) {
	if _, err := ParseFinalizeArbKey(key); err != nil {
		return nil, err
	}
	return execute(sender, arb, map[string]struct{}{key: {}})
}

// StoreCode uploads contract bytecode.
func StoreCode(sender string, code []byte) (*network.MsgStoreCode, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("wasm byte code is empty")
	}
	return network.NewMsgStoreCode(sender, code), nil
}

// Instantiate creates a contract from stored code. initMsg is canonicalized.
func Instantiate(sender, admin string, codeID uint64, initMsg any, funds ...sdk.Coin) (*network.MsgInstantiateContract, error) {
	if codeID == 0 {
		return nil, fmt.Errorf("code id is required")
	}
	canonical, err := CanonicalJSON(initMsg)
	if err != nil {
		return nil, err
	}
	return network.NewMsgInstantiateContract(sender, admin, codeID, canonical, funds...), nil
}

func execute(sender, contract string, msg any, funds ...sdk.Coin) (*network.MsgExecuteContract, error) {
	if contract == "" {
		return nil, fmt.Errorf("contract address is required")
	}
	canonical, err := CanonicalJSON(msg)
	if err != nil {
		return nil, err
	}
	return network.NewMsgExecuteContract(sender, contract, canonical, funds...), nil
}

func validateUint(s string) error {
	amount, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return fmt.Errorf("%q is not an integer", s)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%q must be positive", s)
	}
	return nil
}

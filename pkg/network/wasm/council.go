// pkg/network/wasm/council.go
package wasm

import (
	"context"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tidwall/gjson"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

// Proposal is a council proposal submitted through the governance token.
type Proposal struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Link        string            `json:"link,omitempty"`
	Messages    []ProposalMessage `json:"messages"`
}

// ProposalMessage is a message the council executes if the proposal passes.
type ProposalMessage struct {
	ExecutionOrder uint64    `json:"execution_order"`
	Msg            CosmosMsg `json:"msg"`
}

// CosmosMsg is the subset of CosmWasm's CosmosMsg the council dispatches.
type CosmosMsg struct {
	Wasm *WasmMsg `json:"wasm,omitempty"`
}

// WasmMsg dispatches to another contract.
type WasmMsg struct {
	Execute *WasmExecuteMsg `json:"execute,omitempty"`
}

// WasmExecuteMsg carries its inner message as base64 text.
type WasmExecuteMsg struct {
	ContractAddr string     `json:"contract_addr"`
	Msg          string     `json:"msg"`
	Funds        []sdk.Coin `json:"funds"`
}

// NewWasmExecute encodes msg with EncodeBinary and wraps it for dispatch.
func NewWasmExecute(contract string, msg any, funds ...sdk.Coin) (CosmosMsg, error) {
	encoded, err := EncodeBinary(msg)
	if err != nil {
		return CosmosMsg{}, err
	}
	return CosmosMsg{
		Wasm: &WasmMsg{
			Execute: &WasmExecuteMsg{
				ContractAddr: contract,
				Msg:          encoded,
				Funds:        append([]sdk.Coin{}, funds...),
			},
		},
	}, nil
}

type updateLoanLimitMsg struct {
	UpdateUncollateralizedLoanLimit struct {
		UserAddress string `json:"user_address"`
		Asset       struct {
			Native struct {
				Denom string `json:"denom"`
			} `json:"native"`
		} `json:"asset"`
		NewLimit string `json:"new_limit"`
	} `json:"update_uncollateralized_loan_limit"`
}

// CreditLimitProposal builds the proposal that grants user an uncollateralized
// uluna credit line at the red bank.
func CreditLimitProposal(redBank, user, limit string) (Proposal, error) {
	if err := validateUint(limit); err != nil {
		return Proposal{}, fmt.Errorf("invalid credit limit: %w", err)
	}

	var inner updateLoanLimitMsg
	inner.UpdateUncollateralizedLoanLimit.UserAddress = user
	inner.UpdateUncollateralizedLoanLimit.Asset.Native.Denom = "uluna"
	inner.UpdateUncollateralizedLoanLimit.NewLimit = limit

	dispatch, err := NewWasmExecute(redBank, inner)
	if err != nil {
		return Proposal{}, err
	}

	return Proposal{
		Title:       "Update C2C credit limit",
		Description: "Give Luna uncollateralized credit limit to leveraged arbitrage contract",
		Messages: []ProposalMessage{
			{ExecutionOrder: 0, Msg: dispatch},
		},
	}, nil
}

type submitProposalMsg struct {
	SubmitProposal Proposal `json:"submit_proposal"`
}

type cw20SendMsg struct {
	Send struct {
		Contract string `json:"contract"`
		Amount   string `json:"amount"`
		Msg      string `json:"msg"`
	} `json:"send"`
}

// SubmitProposal sends the deposit in governance tokens to the council with
// an attached submit_proposal message.
func SubmitProposal(sender, token, council, deposit string, p Proposal) (*network.MsgExecuteContract, error) {
	if err := validateUint(deposit); err != nil {
		return nil, fmt.Errorf("invalid deposit: %w", err)
	}
	if p.Title == "" {
		return nil, fmt.Errorf("proposal title is required")
	}

	encoded, err := EncodeBinary(submitProposalMsg{SubmitProposal: p})
	if err != nil {
		return nil, err
	}

	var msg cw20SendMsg
	msg.Send.Contract = council
	msg.Send.Amount = deposit
	msg.Send.Msg = encoded

	return execute(sender, token, msg)
}

type proposalsQuery struct {
	Proposals struct{} `json:"proposals"`
}

// ProposalCount returns the number of proposals the council has recorded.
func ProposalCount(ctx context.Context, q network.Querier, council string) (uint64, error) {
	raw, err := q.QueryContract(ctx, council, proposalsQuery{})
	if err != nil {
		return 0, fmt.Errorf("failed to query proposals: %w", err)
	}

	count := gjson.GetBytes(raw, "proposal_count")
	var digits string
	switch count.Type {
	case gjson.Number:
		digits = count.Raw
	case gjson.String:
		digits = count.Str
	default:
		return 0, fmt.Errorf("proposals response has no proposal_count: %s", string(raw))
	}

	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid proposal_count %s: %w", count.Raw, err)
	}
	return n, nil
}

// SubmitProposalWithVote submits p and votes for it in the same transaction.
//
// The council does not return the id of a new proposal, so the vote targets
// ProposalCount()+1. If another proposal lands between the query and this
// transaction, the vote goes to the wrong proposal or fails. This cannot be
// made atomic from the client; callers should warn the operator.
func SubmitProposalWithVote(ctx context.Context, q network.Querier, sender, token, council, deposit string, p Proposal) ([]network.Msg, error) {
	count, err := ProposalCount(ctx, q, council)
	if err != nil {
		return nil, err
	}

	submit, err := SubmitProposal(sender, token, council, deposit, p)
	if err != nil {
		return nil, err
	}

	vote, err := CastVote(sender, council, count+1, VoteFor)
	if err != nil {
		return nil, err
	}

	return []network.Msg{submit, vote}, nil
}

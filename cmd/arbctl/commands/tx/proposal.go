package tx

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/altuslabsxyz/arbctl/cmd/arbctl/commands/shared"
	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/pkg/network"
	"github.com/altuslabsxyz/arbctl/pkg/network/wasm"
)

// NewCreateProposalCmd creates the create-proposal command.
func NewCreateProposalCmd() *cobra.Command {
	var (
		account       string
		amount        string
		depositAmount string
	)

	cmd := &cobra.Command{
		Use:   "create-proposal",
		Short: "Propose an uncollateralized uluna credit line and vote for it",
		Long: `Submit a council proposal that sets the red bank's uncollateralized uluna
loan limit for --account, and vote for it in the same transaction.

The council does not report the id of a new proposal. The vote targets the
current proposal count plus one, so a proposal submitted by someone else
between the query and this transaction makes the vote miss.

Examples:
  arbctl create-proposal --network testnet --account terra1... --amount 1000000000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := shared.NewRunner(ctx)
			if err != nil {
				return err
			}
			token, err := runner.Contract(config.ContractMarsToken)
			if err != nil {
				return err
			}
			council, err := runner.Contract(config.ContractMarsCouncil)
			if err != nil {
				return err
			}
			redBank, err := runner.Contract(config.ContractMarsRedBank)
			if err != nil {
				return err
			}

			proposal, err := wasm.CreditLimitProposal(redBank, account, amount)
			if err != nil {
				return err
			}
			p, err := runner.Pipeline(ctx)
			if err != nil {
				return err
			}

			msgs, err := wasm.SubmitProposalWithVote(ctx, runner.Client, p.Address(), token, council, depositAmount, proposal)
			if err != nil {
				return err
			}
			runner.Logger.Warn("the vote assumes this becomes proposal %s; a concurrent submission will make it miss", proposalIDOf(msgs))

			_, err = runner.Run(ctx, p, msgs...)
			return err
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Address that receives the credit line")
	cmd.Flags().StringVar(&amount, "amount", "", "New uluna credit limit")
	cmd.Flags().StringVar(&depositAmount, "deposit-amount", wasm.DefaultDepositAmount, "MARS deposit for the proposal")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// NewEndProposalCmd creates the end-proposal command.
func NewEndProposalCmd() *cobra.Command {
	var proposalID uint64

	cmd := &cobra.Command{
		Use:   "end-proposal",
		Short: "Close voting on a council proposal",
		Long: `Close voting on a council proposal once its voting period has ended.

Examples:
  arbctl end-proposal --network testnet --proposal-id 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := shared.NewRunner(ctx)
			if err != nil {
				return err
			}
			council, err := runner.Contract(config.ContractMarsCouncil)
			if err != nil {
				return err
			}
			p, err := runner.Pipeline(ctx)
			if err != nil {
				return err
			}
			msg, err := wasm.EndProposal(p.Address(), council, proposalID)
			if err != nil {
				return err
			}

			_, err = runner.Run(ctx, p, msg)
			return err
		},
	}

	cmd.Flags().Uint64Var(&proposalID, "proposal-id", 0, "Proposal to end")
	_ = cmd.MarkFlagRequired("proposal-id")

	return cmd
}

// NewCastVoteCmd creates the cast-vote command.
func NewCastVoteCmd() *cobra.Command {
	var (
		proposalID uint64
		vote       string
	)

	cmd := &cobra.Command{
		Use:   "cast-vote",
		Short: "Vote on a council proposal",
		Long: `Vote for or against an open council proposal.

Examples:
  arbctl cast-vote --network testnet --proposal-id 8 --vote for`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			option, err := wasm.ParseVoteOption(vote)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := shared.NewRunner(ctx)
			if err != nil {
				return err
			}
			council, err := runner.Contract(config.ContractMarsCouncil)
			if err != nil {
				return err
			}
			p, err := runner.Pipeline(ctx)
			if err != nil {
				return err
			}
			msg, err := wasm.CastVote(p.Address(), council, proposalID, option)
			if err != nil {
				return err
			}

			_, err = runner.Run(ctx, p, msg)
			return err
		},
	}

	cmd.Flags().Uint64Var(&proposalID, "proposal-id", 0, "Proposal to vote on")
	cmd.Flags().StringVar(&vote, "vote", string(wasm.VoteFor), "Vote option (for|against)")
	_ = cmd.MarkFlagRequired("proposal-id")

	return cmd
}

// proposalIDOf reads the target id from the vote message built by
// SubmitProposalWithVote.
func proposalIDOf(msgs []network.Msg) string {
	if len(msgs) < 2 {
		return "?"
	}
	vote, ok := msgs[len(msgs)-1].(*network.MsgExecuteContract)
	if !ok {
		return "?"
	}
	id := gjson.GetBytes(vote.ExecuteMsg, "cast_vote.proposal_id")
	if !id.Exists() {
		return "?"
	}
	return strconv.FormatUint(id.Uint(), 10)
}

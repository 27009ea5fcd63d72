// Package pipeline drives a batch of messages through
// build → sign → confirm → broadcast → interpret.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/log"
	"github.com/google/uuid"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

// State is a step of the transaction lifecycle.
type State int

const (
	StateDrafted State = iota
	StateSigned
	StateAwaitingConfirmation
	StateAborted
	StateBroadcast
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDrafted:
		return "drafted"
	case StateSigned:
		return "signed"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateAborted:
		return "aborted"
	case StateBroadcast:
		return "broadcast"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ConfirmFunc shows the rendered transaction to an operator and reports
// whether it may be broadcast. It blocks until a decision is made.
type ConfirmFunc func(ctx context.Context, rendered string) (bool, error)

// Config holds the collaborators of a Pipeline.
type Config struct {
	Signer  network.Signer
	Client  network.LedgerClient
	Confirm ConfirmFunc
	ChainID string
	Fees    network.FeeParams
	Memo    string

	// Logger receives structured lifecycle logs. Nil means no logging.
	Logger log.Logger

	// Observer, if set, is called on every state transition.
	Observer func(State)
}

// Pipeline runs transactions for a single signing identity.
type Pipeline struct {
	signer  network.Signer
	client  network.LedgerClient
	confirm ConfirmFunc
	chainID string
	fees    network.FeeParams
	memo    string
	logger  log.Logger
	observe func(State)
}

// Result is a transaction the ledger accepted.
type Result struct {
	RunID  string
	TxHash string
	Height int64
	Fee    network.Fee
	Logs   []network.MsgLog
	Events network.Events
}

// New validates cfg and returns a Pipeline. A confirmation gate is mandatory.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Signer == nil {
		return nil, &SigningError{Err: errors.New("no signing identity configured")}
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("ledger client is required")
	}
	if cfg.Confirm == nil {
		return nil, fmt.Errorf("confirmation gate is required")
	}
	if cfg.ChainID == "" {
		return nil, fmt.Errorf("chain ID is required")
	}
	if err := cfg.Fees.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fee parameters: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	observe := cfg.Observer
	if observe == nil {
		observe = func(State) {}
	}

	return &Pipeline{
		signer:  cfg.Signer,
		client:  cfg.Client,
		confirm: cfg.Confirm,
		chainID: cfg.ChainID,
		fees:    cfg.Fees,
		memo:    cfg.Memo,
		logger:  logger.With("module", "pipeline"),
		observe: observe,
	}, nil
}

// Address returns the address of the signing identity.
func (p *Pipeline) Address() string {
	return p.signer.Address()
}

// Run signs msgs as one atomic transaction, asks for confirmation and
// broadcasts it exactly once. The account sequence is fetched on every call.
//
// Declining confirmation returns *UserAbortedError. A ledger-level failure
// returns *TxExecutionError carrying the chain log unchanged. Broadcast is
// never retried.
func (p *Pipeline) Run(ctx context.Context, msgs ...network.Msg) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run", runID)

	draft := network.NewDraft(p.fees, msgs...)
	draft.Memo = p.memo
	if err := draft.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}
	p.observe(StateDrafted)
	logger.Debug("transaction drafted", "state", StateDrafted.String(), "msgs", len(draft.Msgs))

	signed, fee, err := p.sign(ctx, logger, draft)
	if err != nil {
		return nil, err
	}
	p.observe(StateSigned)
	logger.Debug("transaction signed", "state", StateSigned.String(), "sequence", signed.Sequence, "gas", fee.Gas)

	rendered, err := Render(signed)
	if err != nil {
		return nil, err
	}

	p.observe(StateAwaitingConfirmation)
	logger.Debug("awaiting confirmation", "state", StateAwaitingConfirmation.String())
	approved, err := p.confirm(ctx, rendered)
	if err != nil || !approved {
		p.observe(StateAborted)
		logger.Info("transaction aborted", "state", StateAborted.String())
		return nil, &UserAbortedError{Cause: err}
	}

	if err := signed.MarkBroadcast(); err != nil {
		return nil, err
	}
	p.observe(StateBroadcast)
	logger.Info("broadcasting transaction", "state", StateBroadcast.String())

	res, err := p.client.Broadcast(ctx, signed)
	if err == nil && res == nil {
		err = errors.New("ledger client returned no result")
	}
	if err != nil {
		p.observe(StateFailed)
		logger.Error("broadcast failed", "state", StateFailed.String(), "err", err)
		return nil, fmt.Errorf("failed to broadcast transaction: %w", err)
	}

	if !res.Success {
		p.observe(StateFailed)
		logger.Error("transaction failed", "state", StateFailed.String(), "txhash", res.TxHash, "code", res.Code)
		return nil, &TxExecutionError{
			TxHash:    res.TxHash,
			Code:      res.Code,
			Codespace: res.Codespace,
			RawLog:    res.RawLog,
		}
	}

	p.observe(StateSucceeded)
	logger.Info("transaction succeeded", "state", StateSucceeded.String(), "txhash", res.TxHash, "height", res.Height)
	return &Result{
		RunID:  runID,
		TxHash: res.TxHash,
		Height: res.Height,
		Fee:    fee,
		Logs:   res.Logs,
		Events: res.Events,
	}, nil
}

func (p *Pipeline) sign(ctx context.Context, logger log.Logger, draft *network.Draft) (*network.SignedTx, network.Fee, error) {
	address := p.signer.Address()
	if address == "" {
		return nil, network.Fee{}, &SigningError{Err: errors.New("signing identity has no address")}
	}

	account, err := p.client.Account(ctx, address)
	if err != nil {
		return nil, network.Fee{}, fmt.Errorf("failed to fetch account %s: %w", address, err)
	}
	data := network.SignerData{
		ChainID:       p.chainID,
		AccountNumber: account.AccountNumber,
		Sequence:      account.Sequence,
	}

	var estimate uint64
	if p.fees.GasLimit == 0 {
		estimate, err = p.client.EstimateGas(ctx, draft, data)
		if err != nil {
			return nil, network.Fee{}, fmt.Errorf("failed to estimate gas: %w", err)
		}
		logger.Debug("gas estimated", "estimate", estimate)
	}
	fee := network.ComputeFee(estimate, p.fees)

	signed, err := p.signer.Sign(ctx, draft, fee, data)
	if err != nil {
		return nil, network.Fee{}, &SigningError{Err: err}
	}
	return signed, fee, nil
}

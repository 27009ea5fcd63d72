// Package shared holds helpers used by every transaction command.
package shared

import (
	"context"
	"time"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"

	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/internal/output"
	"github.com/altuslabsxyz/arbctl/internal/pipeline"
	"github.com/altuslabsxyz/arbctl/pkg/network"
	"github.com/altuslabsxyz/arbctl/pkg/network/cosmos"
	"github.com/altuslabsxyz/arbctl/types/ctxconfig"
)

// Runner connects a command to the selected network.
type Runner struct {
	Profile config.Profile
	Client  *cosmos.Client
	Logger  *output.Logger

	cfg *ctxconfig.Config
}

// NewRunner resolves the network profile and creates the LCD client. It makes
// no network calls.
func NewRunner(ctx context.Context) (*Runner, error) {
	cfg := ctxconfig.MustFromContext(ctx)
	effective := cfg.Effective()

	profile, err := effective.RequireProfile()
	if err != nil {
		return nil, err
	}

	client, err := cosmos.NewClient(cosmos.ClientConfig{
		LCDURL:       profile.LCDURL,
		ChainID:      profile.ChainID,
		QueryRetries: effective.QueryRetries.Value,
	})
	if err != nil {
		return nil, &config.ConfigurationError{Field: "lcd_url", Reason: "cannot create client", Err: err}
	}

	return &Runner{
		Profile: profile,
		Client:  client,
		Logger:  cfg.Logger(),
		cfg:     cfg,
	}, nil
}

// Contract returns the address of a named contract on the selected network.
func (r *Runner) Contract(name string) (string, error) {
	return r.Profile.Contracts.Get(name)
}

// Pipeline loads the signing identity and returns a ready pipeline. The
// mnemonic and fee settings are checked before the node is contacted.
func (r *Runner) Pipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	mnemonic, err := r.cfg.Env().Mnemonic()
	if err != nil {
		return nil, err
	}
	fees, err := r.cfg.Effective().FeeParams()
	if err != nil {
		return nil, err
	}

	wallet, err := cosmos.NewWalletFromMnemonic(mnemonic)
	if err != nil {
		return nil, &pipeline.SigningError{Err: err}
	}

	if err := r.Client.VerifyChainID(ctx); err != nil {
		return nil, err
	}
	r.Logger.Debug("Connected to %s (%s) as %s", r.Profile.LCDURL, r.Profile.ChainID, wallet.Address())

	confirm := r.cfg.Confirm()
	if confirm == nil {
		confirm = output.NewTxConfirmer(r.Logger).Confirm
	}

	return pipeline.New(pipeline.Config{
		Signer:   wallet,
		Client:   r.Client,
		Confirm:  confirm,
		ChainID:  r.Profile.ChainID,
		Fees:     fees,
		Logger:   r.structuredLogger(),
		Observer: r.progress(),
	})
}

// Execute runs msgs through a new pipeline and prints the transaction hash.
func (r *Runner) Execute(ctx context.Context, msgs ...network.Msg) (*pipeline.Result, error) {
	p, err := r.Pipeline(ctx)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, p, msgs...)
}

// Run sends msgs through p and prints the transaction hash.
func (r *Runner) Run(ctx context.Context, p *pipeline.Pipeline, msgs ...network.Msg) (*pipeline.Result, error) {
	result, err := p.Run(ctx, msgs...)
	if err != nil {
		return nil, err
	}
	r.Logger.Success("Success! Txhash: %s", result.TxHash)
	return result, nil
}

func (r *Runner) structuredLogger() log.Logger {
	if !r.Logger.IsVerbose() {
		return log.NewNopLogger()
	}
	return log.NewLogger(r.Logger.ErrWriter(),
		log.LevelOption(zerolog.DebugLevel),
		log.ColorOption(!r.cfg.Effective().NoColor.Value),
	)
}

// progress shows a spinner while the node processes the broadcast.
func (r *Runner) progress() func(pipeline.State) {
	spinner := output.NewStatusSpinnerWithWriter(r.Logger.ErrWriter())
	return func(s pipeline.State) {
		switch s {
		case pipeline.StateBroadcast:
			spinner.Start("Broadcasting transaction and waiting for block inclusion")
		case pipeline.StateSucceeded, pipeline.StateFailed:
			if elapsed := spinner.Stop(); elapsed > 0 {
				r.Logger.Debug("Node answered after %s", elapsed.Round(time.Millisecond))
			}
		}
	}
}

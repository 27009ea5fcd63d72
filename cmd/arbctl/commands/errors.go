package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/internal/output"
	"github.com/altuslabsxyz/arbctl/internal/pipeline"
	"github.com/altuslabsxyz/arbctl/pkg/network/cosmos"
)

// Process exit codes. Aborted and chain failure are distinct so wrapping
// scripts can tell them apart.
const (
	ExitOK           = 0
	ExitError        = 1
	ExitConfig       = 2
	ExitAborted      = 3
	ExitChainFailure = 4
	ExitMissingEvent = 5
	ExitSigning      = 6
)

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		cfgErr      *config.ConfigurationError
		abortErr    *pipeline.UserAbortedError
		execErr     *pipeline.TxExecutionError
		missingErr  *pipeline.MissingEventError
		signErr     *pipeline.SigningError
		mismatchErr *cosmos.ChainIDMismatchError
	)
	switch {
	case errors.As(err, &abortErr):
		return ExitAborted
	case errors.As(err, &execErr):
		return ExitChainFailure
	case errors.As(err, &missingErr):
		return ExitMissingEvent
	case errors.As(err, &signErr):
		return ExitSigning
	case errors.As(err, &cfgErr), errors.As(err, &mismatchErr):
		return ExitConfig
	default:
		return ExitError
	}
}

// PrintError reports err to the operator.
func PrintError(logger *output.Logger, err error) {
	var (
		abortErr *pipeline.UserAbortedError
		execErr  *pipeline.TxExecutionError
	)
	switch {
	case errors.As(err, &abortErr):
		if errors.Is(err, context.Canceled) || errors.Is(err, output.ErrInterrupted) {
			logger.Warn("Interrupted, transaction was not broadcast")
			return
		}
		logger.Warn("Transaction was not broadcast")
	case errors.As(err, &execErr):
		logger.Error("Transaction %s failed with code %d", execErr.TxHash, execErr.Code)
		output.Block(logger.ErrWriter(), output.RedSeparator, execErr.RawLog)
	default:
		logger.Error("%s", err)
		if config.IsConfigurationError(err) {
			fmt.Fprintln(logger.ErrWriter(), "Hint: run 'arbctl config show' to inspect the resolved settings")
		}
	}
}

package output

import (
	"context"
	"errors"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ConfirmLabel is the question asked before every broadcast.
const ConfirmLabel = "Confirm transaction before broadcasting"

var (
	// ErrInterrupted is returned when the operator presses Ctrl+C or closes
	// stdin at the prompt.
	ErrInterrupted = errors.New("confirmation interrupted")

	// ErrNotInteractive is returned when stdin is not a terminal.
	ErrNotInteractive = errors.New("stdin is not a terminal")
)

// Prompter abstracts the yes/no question for testing.
type Prompter interface {
	// Confirm returns true only for an explicit yes.
	Confirm(label string) (bool, error)
}

// PromptuiPrompter implements Prompter using promptui.
type PromptuiPrompter struct{}

// Confirm implements Prompter.Confirm. Anything but y/yes declines.
func (PromptuiPrompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, ErrInterrupted
	default:
		return false, err
	}
}

// TxConfirmer shows a rendered transaction and asks the operator whether to
// broadcast it.
type TxConfirmer struct {
	logger     *Logger
	prompter   Prompter
	isTerminal func() bool
}

// NewTxConfirmer creates a TxConfirmer reading from the process terminal.
func NewTxConfirmer(logger *Logger) *TxConfirmer {
	return NewTxConfirmerWithPrompter(logger, PromptuiPrompter{}, stdinIsTerminal)
}

// NewTxConfirmerWithPrompter creates a TxConfirmer with a custom prompter.
func NewTxConfirmerWithPrompter(logger *Logger, prompter Prompter, isTerminal func() bool) *TxConfirmer {
	return &TxConfirmer{
		logger:     logger,
		prompter:   prompter,
		isTerminal: isTerminal,
	}
}

// Confirm prints rendered and blocks until the operator answers or ctx is
// done. Without a terminal there is nobody to ask, so the answer is no.
func (c *TxConfirmer) Confirm(ctx context.Context, rendered string) (bool, error) {
	c.logger.Bold("Transaction:")
	Block(c.logger.Writer(), CyanSeparator, rendered)

	if !c.isTerminal() {
		c.logger.Warn("not running in a terminal, transaction will not be broadcast")
		return false, ErrNotInteractive
	}

	type answer struct {
		ok  bool
		err error
	}
	answered := make(chan answer, 1)
	go func() {
		ok, err := c.prompter.Confirm(ConfirmLabel)
		answered <- answer{ok: ok, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-answered:
		return a.ok, a.err
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

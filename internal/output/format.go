package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	SeparatorWidth = 60
	SeparatorChar  = "─"
)

// Separator returns a plain rule of SeparatorWidth characters.
func Separator() string {
	return strings.Repeat(SeparatorChar, SeparatorWidth)
}

// RedSeparator returns a red rule, used around chain error logs.
func RedSeparator() string {
	return color.New(color.FgRed).Sprint(Separator())
}

// CyanSeparator returns a cyan rule, used around rendered transactions.
func CyanSeparator() string {
	return color.New(color.FgCyan).Sprint(Separator())
}

// Block writes body between two rules made by rule. body is written
// verbatim.
func Block(w io.Writer, rule func() string, body string) {
	fmt.Fprintln(w, rule())
	fmt.Fprintln(w, body)
	fmt.Fprintln(w, rule())
}

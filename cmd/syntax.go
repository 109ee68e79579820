// Copyright © 2024 The lispread authors

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const syntaxIntro = `The reader accepts a subset of R5RS Scheme syntax with common
extensions.  Whitespace and comments separate tokens and are otherwise
ignored.`

var syntaxSections = []struct {
	head string
	body string
}{
	{"Comments", `Line comments run from ; to the end of the line.  #! also
comments to the end of the line so executable scripts can carry a
shebang.  #| ... |# comments a block and may nest.  #;FORM comments out
the single form that follows.`},
	{"Lists and pairs", `(a b c) is a proper list.  (a . d) is a dotted
pair and (a b . d) an improper list.  [a b c] is accepted as a list when
bracket lists are enabled.`},
	{"Vectors", `#(a b c) is a vector.  #[a b c] is accepted when bracket
lists are enabled.`},
	{"Quotation", `'x abbreviates (quote x), ` + "`x" + ` abbreviates
(quasiquote x), ,x abbreviates (unquote x) and ,@x abbreviates
(unquote-splicing x).`},
	{"Numbers", `Decimal integers and floating point literals are
recognized, with optional sign, fraction and exponent.  The prefixes #b,
#o, #d and #x read an integer in base 2, 8, 10 and 16.  An exactness
prefix #e or #i is accepted and ignored.`},
	{"Strings", `"..." delimits a string.  \" and \\ denote a quote and a
backslash; other backslash sequences pass through unchanged.`},
	{"Characters", `#\C is the character C.  The names #\space and
#\newline are recognized.`},
	{"Booleans and constants", `#t and #f are true and false.  #u is the
unspecified value.  ## reads as a logical end-of-file object.  The bare
symbol nil reads as the empty list.`},
	{"Symbols", `Any other token is a symbol.  Symbols may contain
letters, digits, non-ASCII characters and the punctuation
~!@$%&*_+-=:<>^.?/|`},
}

// syntaxCmd represents the syntax command
var syntaxCmd = &cobra.Command{
	Use:   "syntax",
	Short: "Describe the supported surface syntax",
	Run: func(cmd *cobra.Command, args []string) {
		printSyntax(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(syntaxCmd)
}

func printSyntax(w io.Writer) {
	fmt.Fprintln(w, wordwrap.String(syntaxIntro, 72))
	for _, sec := range syntaxSections {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sec.head)
		fmt.Fprintln(w, indent.String(wordwrap.String(sec.body, 70), 2))
	}
}

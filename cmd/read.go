// Copyright © 2024 The lispread authors

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/lispread/reader"
	"github.com/luthersystems/lispread/sexpr"
	"github.com/luthersystems/lispread/sexpr/x/tracemodel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	readExpression bool
	readTrace      bool
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read [flags] file ...",
	Short: "Read s-expressions and print them in canonical form",
	Long: `Read parses s-expressions from the given files and prints each form
on its own line.  The file name - denotes standard input.  With the
--expression flag the arguments are parsed directly instead of being
treated as file paths.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runRead(os.Stdout, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().BoolVarP(&readExpression, "expression", "e", false, "Treat arguments as s-expressions instead of file paths")
	readCmd.Flags().BoolVar(&readTrace, "trace", false, "Log host model operations to stderr while reading")
}

func runRead(w io.Writer, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	if readExpression {
		text := bytes.NewBufferString("")
		for i, arg := range args {
			if i > 0 {
				text.WriteString(" ")
			}
			text.WriteString(arg)
		}
		return readSource(w, "command-line", text)
	}
	for _, name := range args {
		err := readFile(w, name)
		if err != nil {
			return err
		}
	}
	return nil
}

func readFile(w io.Writer, name string) error {
	if name == "-" {
		return readSource(w, "stdin", os.Stdin)
	}
	f, err := os.Open(name) //#nosec G304
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // file is read-only
	return readSource(w, name, f)
}

func readSource(w io.Writer, name string, src io.Reader) error {
	model := sexpr.NewModel()
	var rm reader.Model[*sexpr.SVal] = model
	if readTrace {
		rm = tracemodel.NewLogModel(model, os.Stderr)
	}
	opts := []reader.Option[*sexpr.SVal]{
		reader.WithBracketLists[*sexpr.SVal](viper.GetBool("bracket-lists")),
		reader.WithShebang[*sexpr.SVal](viper.GetBool("shebang")),
	}
	r := reader.New[*sexpr.SVal](rm, name, reader.NewStream(src), opts...)
	vs, err := r.ReadAll()
	for _, v := range vs {
		fmt.Fprintln(w, v) //nolint:errcheck // best-effort output
	}
	return err
}

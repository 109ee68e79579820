// Copyright © 2024 The lispread authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/luthersystems/lispread/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-print loop",
	Long: `Repl reads s-expressions from the terminal and echoes each one back
in canonical form.  Incomplete forms continue on the next line.  No
evaluation takes place.`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(filepath.Base(os.Args[0]) + "> ")
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

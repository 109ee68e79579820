// Copyright © 2024 The lispread authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lispread",
	Short: "lispread — a generic s-expression reader",
	Long: `lispread reads s-expressions written in a subset of Scheme syntax and
prints them back in canonical form.  The reader itself is an embeddable
library that delegates all value construction to a host value model; this
command line drives it with the bundled sample model.

Getting started:
  lispread read file.scm        Read forms from a file and print them
  lispread read -e "(1 2 3)"    Read forms from the command line
  lispread read -               Read forms from standard input
  lispread repl                 Start an interactive read-print loop
  lispread syntax               Show the supported surface syntax

More information:
  Source code:     https://github.com/luthersystems/lispread`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lispread.yaml)")
	rootCmd.PersistentFlags().Bool("bracket-lists", true, "Accept [...] list and #[...] vector syntax")
	rootCmd.PersistentFlags().Bool("shebang", true, "Treat #! as a comment through the end of the line")
	for _, name := range []string{"bracket-lists", "shebang"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".lispread" (without
		// extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".lispread")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

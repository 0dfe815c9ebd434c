// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the markov-viz CLI. It converts a
// transition matrix CSV into the JavaScript data file the heatmap page loads,
// and keeps imported matrices in a local SQLite store.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the markov-viz CLI.
var rootCmd = &cobra.Command{
	Use:   "markov-viz",
	Short: "Convert Markov transition matrices into heatmap data files",
	Long: `markov-viz reads a transition matrix from CSV (first column labels the
source state, remaining columns name the destination states) and writes it
as a JavaScript array of records for the heatmap page.

Run "markov-viz convert" with no flags to read transition_matrix_Q.csv and
write transition_data.js.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: markov-viz.yaml in . or ~/.config/markov-viz/)")
	rootCmd.PersistentFlags().String("db", "", "SQLite matrix store (default matrices.db)")
	viper.BindPFlag("store.db", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("markov-viz")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "markov-viz"))
		}
	}

	viper.SetEnvPrefix("MARKOV_VIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

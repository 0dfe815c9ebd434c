// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/A1-3x/Markov-viz/internal/convert"
	"github.com/A1-3x/Markov-viz/internal/store"
	"github.com/A1-3x/Markov-viz/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a transition matrix CSV into a JavaScript data file",
	Long: `Convert reads a transition matrix CSV and writes a const array
declaration with one record per row:

    const transitionData = [
        {From: "A", "A": 0.1, "B": 0.9},
        {From: "B", "A": 0.8, "B": 0.2}
    ];

Cell values are copied verbatim. The output file is overwritten. Use
--matrix to convert a matrix from the SQLite store instead of a CSV file,
and --format yaml for a YAML document of the same records.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig()

	var src convert.Source = convert.CSVSource{Path: cfg.InputPath}
	if cfg.Matrix != "" {
		st, err := store.OpenExisting(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		src = convert.StoredSource{Loader: st, Name: cfg.Matrix}
	}

	_, err := convert.Run(context.Background(), src, cfg, os.Stdout)
	return err
}

// convertConfig assembles the conversion settings from flags, environment,
// and config file, in that order of precedence.
func convertConfig() types.ConvertConfig {
	cfg := types.ConvertConfig{
		RenderConfig: types.RenderConfig{
			VarName: viper.GetString("convert.var_name"),
			Format:  types.OutputFormat(viper.GetString("convert.format")),
		},
		InputPath:  viper.GetString("convert.input"),
		OutputPath: viper.GetString("convert.output"),
		Matrix:     viper.GetString("convert.matrix"),
		Store:      types.StoreConfig{Path: viper.GetString("store.db")},
	}
	return cfg.WithDefaults()
}

func init() {
	convertCmd.Flags().StringP("input", "i", types.DefaultInputPath, "transition matrix CSV to read")
	convertCmd.Flags().StringP("output", "o", "", "output file, overwritten (default transition_data.js, or transition_data.yaml with --format yaml)")
	convertCmd.Flags().String("var", types.DefaultVarName, "name of the declared variable")
	convertCmd.Flags().String("format", string(types.OutputJS), "output format: js or yaml")
	convertCmd.Flags().String("matrix", "", "convert this stored matrix instead of the input CSV")

	viper.BindPFlag("convert.input", convertCmd.Flags().Lookup("input"))
	viper.BindPFlag("convert.output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("convert.var_name", convertCmd.Flags().Lookup("var"))
	viper.BindPFlag("convert.format", convertCmd.Flags().Lookup("format"))
	viper.BindPFlag("convert.matrix", convertCmd.Flags().Lookup("matrix"))

	rootCmd.AddCommand(convertCmd)
}

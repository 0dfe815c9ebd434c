// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/A1-3x/Markov-viz/internal/matrix"
	"github.com/A1-3x/Markov-viz/internal/store"
	"github.com/A1-3x/Markov-viz/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the SQLite matrix store (import, list, delete)",
	Long: `Store keeps transition matrices in a local SQLite database so they can be
converted later with "convert --matrix NAME". Cell values are stored as the
raw text read from the CSV.`,
}

// --- import subcommand ---

var storeImportCmd = &cobra.Command{
	Use:   "import [csv]",
	Short: "Import a transition matrix CSV into the store",
	Long: `Import reads a transition matrix CSV and saves it under --name, replacing
any matrix already stored with that name. The name defaults to the file name
without its extension.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStoreImport,
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	path := types.DefaultInputPath
	if len(args) > 0 {
		path = args[0]
	}
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	m, err := matrix.ReadFile(path)
	if err != nil {
		return err
	}

	st, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(context.Background(), name, path, m); err != nil {
		return fmt.Errorf("saving matrix %q: %w", name, err)
	}
	fmt.Fprintf(os.Stdout, "imported: %s (%d states, %d rows)\n", name, len(m.States), len(m.Records))
	return nil
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matrices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.OpenExisting(storeConfig())
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(os.Stdout, "No matrices stored.")
			return nil
		}
		if err != nil {
			return err
		}
		defer st.Close()

		sums, err := st.List(context.Background())
		if err != nil {
			return err
		}
		if len(sums) == 0 {
			fmt.Fprintln(os.Stdout, "No matrices stored.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSTATES\tROWS\tSOURCE\tIMPORTED")
		for _, s := range sums {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n",
				s.Name, s.States, s.Rows, s.Source, s.ImportedAt.Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	},
}

// --- delete subcommand ---

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored matrix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.OpenExisting(storeConfig())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "deleted: %s\n", args[0])
		return nil
	},
}

func storeConfig() types.StoreConfig {
	path := viper.GetString("store.db")
	if path == "" {
		path = types.DefaultStorePath
	}
	return types.StoreConfig{Path: path}
}

func init() {
	storeImportCmd.Flags().String("name", "", "name to store the matrix under (default: file name)")

	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okabeworks/visatrans/internal/vocab"
)

var glossaryDBPath string

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Manage the proper-noun vocabulary",
	Long: `Add, list, and delete vocabulary entries in the SQLite-backed store.

Vocabulary entries pin the translation of proper nouns (applicant names,
places, organizations) to renderings verified against official documents.`,
}

var glossaryListCategory string

var glossaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vocabulary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := vocab.OpenStore(glossaryDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		entries, err := store.ListTerms(context.Background(), glossaryListCategory)
		if err != nil {
			return fmt.Errorf("failed to list vocabulary: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("Vocabulary is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tSOURCE TERM\tTARGET RENDERING\tCONFIDENCE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Category, e.SourceTerm, e.TargetTerm, e.Confidence)
		}
		return w.Flush()
	},
}

var (
	glossaryAddCategory   string
	glossaryAddConfidence string
)

var glossaryAddCmd = &cobra.Command{
	Use:   "add <source-term> <target-rendering>",
	Short: "Add or update a vocabulary entry",
	Long: `Add a vocabulary entry mapping a source term to its verified rendering.

Example:
  visatrans glossary add "田中太郎" "Taro Tanaka" --category person`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if glossaryAddCategory == "" {
			return fmt.Errorf("--category flag is required")
		}

		store, err := vocab.OpenStore(glossaryDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		if err := store.AddTerm(context.Background(), glossaryAddCategory, args[0], args[1], glossaryAddConfidence); err != nil {
			return fmt.Errorf("failed to add vocabulary entry: %w", err)
		}
		fmt.Printf("Added: [%s] %q → %q\n", glossaryAddCategory, args[0], args[1])
		return nil
	},
}

var glossaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a vocabulary entry by ID",
	Long: `Delete a vocabulary entry by its ID (shown in "visatrans glossary list").

Example:
  visatrans glossary delete vg_1234567890123456789`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := vocab.OpenStore(glossaryDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		if err := store.DeleteTerm(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete vocabulary entry: %w", err)
		}
		fmt.Printf("Deleted vocabulary entry: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(glossaryCmd)

	glossaryCmd.PersistentFlags().StringVar(&glossaryDBPath, "db", "./data/visatrans.db", "Database path")

	glossaryListCmd.Flags().StringVarP(&glossaryListCategory, "category", "c", "", "Filter by category (e.g. person)")

	glossaryAddCmd.Flags().StringVarP(&glossaryAddCategory, "category", "c", "", "Category (person, place, organization, …)")
	glossaryAddCmd.Flags().StringVar(&glossaryAddConfidence, "confidence", "verified", "Confidence label")

	glossaryCmd.AddCommand(glossaryListCmd)
	glossaryCmd.AddCommand(glossaryAddCmd)
	glossaryCmd.AddCommand(glossaryDeleteCmd)
}

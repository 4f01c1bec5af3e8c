package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okabeworks/visatrans/internal/config"
)

var (
	translateInput    string
	translateProvider string
	translateModel    string
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text once from the command line",
	Long: `Run the proper-noun-safe pipeline once and print the result with its
risk report. Text comes from the argument, --input, or stdin.

Examples:
  visatrans translate "田中太郎は2020年に来日した。"
  visatrans translate --input application.txt
  cat application.txt | visatrans translate`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		text, err := readInput(args)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("no input text")
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if translateProvider != "" {
			cfg.Engine.Provider = translateProvider
		}
		if translateModel != "" {
			cfg.Engine.Model = translateModel
		}

		engine, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		cached, closeVocab, err := buildVocabulary(cfg)
		if err != nil {
			return err
		}
		defer closeVocab()

		pipe := buildPipeline(cfg, engine, cached)
		result, err := pipe.Run(cmd.Context(), text)
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}

		fmt.Println(result.OutputText)
		fmt.Fprintf(os.Stderr, "\nRisk: %s\n", result.RiskLevel)
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "  ! %s\n", w)
		}
		if len(result.AppliedGlossary) > 0 {
			fmt.Fprintf(os.Stderr, "Protected terms: %s\n", strings.Join(result.AppliedGlossary, ", "))
		}

		w := tabwriter.NewWriter(os.Stderr, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\n#\tORIGINAL\tTRANSLATED")
		for i, s := range result.Sentences {
			fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, s.Original, s.Translated)
		}
		return w.Flush()
	},
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if translateInput != "" {
		data, err := os.ReadFile(translateInput)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&translateInput, "input", "i", "", "Input file (defaults to stdin)")
	translateCmd.Flags().StringVar(&translateProvider, "engine", "", "Engine provider override (openai, ollama, google)")
	translateCmd.Flags().StringVar(&translateModel, "model", "", "Engine model override")
}

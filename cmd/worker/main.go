// Package main provides the offline questgraph worker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataPath    string
	localeDir   string
	lang        string
	outFormat   string
	outPath     string
	defaultLang = "en"
)

var rootCmd = &cobra.Command{
	Use:           "worker",
	Short:         "Offline exports of the quest graph",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var predecessorsCmd = &cobra.Command{
	Use:   "predecessors <id>",
	Short: "Export the predecessor subgraph of a quest or achievement",
	Long: `Export the subgraph made of <id> and every node that must be reached
before it.

Examples:
  worker predecessors 1630 --data data.json
  worker predecessors 1630 --data data.json --format dot --out 1630.dot
  worker predecessors 1630 --data data.json --format cyto --locale-dir locales --lang fr`,
	Args: cobra.ExactArgs(1),
	RunE: runPredecessors,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print node and edge counts of a dataset",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "data/data.json", "Path to the dataset (.json, .yaml, .yml)")

	predecessorsCmd.Flags().StringVar(&localeDir, "locale-dir", "", "Directory of <lang>.json/.yaml translation tables (default: ids as names)")
	predecessorsCmd.Flags().StringVar(&lang, "lang", defaultLang, "Language of node names")
	predecessorsCmd.Flags().StringVarP(&outFormat, "format", "f", "json", "Output format: json, yaml, dot, cyto")
	predecessorsCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")

	rootCmd.AddCommand(predecessorsCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

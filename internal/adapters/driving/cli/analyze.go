package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
)

var (
	analyzeJSON    bool
	analyzeSummary bool
	analyzeNoSave  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze the emotional spectrum of a text",
	Long: `Scores a short Chinese text against eight emotion categories
(喜悦, 温暖, 思念, 失落, 忧伤, 期待, 无助, 平静) using lexicon matching,
fuzzy containment, semantic rules, and a polarity fallback.

Output includes normalized weights, the dominant emotion, matched
keywords per category, and an entropy-based diversity index.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the full result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSummary, "summary", false, "print only the one-line summary")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "skip recording the result in history")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	ctx := context.Background()
	result, err := analysisService.Analyze(ctx, args[0])
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if historyService != nil && !analyzeNoSave {
		if _, err := historyService.RecordAnalysis(ctx, args[0], result); err != nil {
			// History failures are reported but never fail the analysis.
			cmd.PrintErrf("Warning: could not record history: %v\n", err)
		}
	}

	if analyzeJSON {
		return outputAnalysisJSON(cmd, result)
	}
	if analyzeSummary {
		cmd.Println(analysisService.Summarize(result))
		return nil
	}
	return outputAnalysisTable(cmd, result)
}

func outputAnalysisJSON(cmd *cobra.Command, result *domain.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnalysisTable(cmd *cobra.Command, result *domain.AnalysisResult) error {
	if len(result.EmotionWeights) == 0 {
		cmd.Println("未检测到明显的情感倾向。")
		return nil
	}

	cmd.Println("情感光谱:")
	cmd.Println()
	for _, ew := range result.TopEmotions(len(result.EmotionWeights)) {
		bar := weightBar(ew.Weight)
		marker := " "
		if ew.Emotion == result.DominantEmotion {
			marker = "*"
		}
		cmd.Printf("  %s %s  %s %.2f\n", marker, ew.Emotion, bar, ew.Weight)
		if words := result.EmotionKeywords[ew.Emotion]; len(words) > 0 {
			sorted := append([]string(nil), words...)
			sort.Strings(sorted)
			cmd.Printf("      关键词: %s\n", strings.Join(sorted, "、"))
		}
	}

	cmd.Println()
	cmd.Printf("多样性指数: %.2f  词数: %d\n", result.EmotionDiversity, result.WordCount)
	cmd.Println()
	cmd.Println(analysisService.Summarize(result))
	return nil
}

// weightBar renders a 20-cell bar for a weight in [0, 1].
func weightBar(weight float64) string {
	const cells = 20
	filled := int(weight*cells + 0.5)
	if filled > cells {
		filled = cells
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driving"
)

var (
	historyKind  string
	historyLimit int
	exportFormat string
	historyForce bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past analyses and stories",
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history entries",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a history entry as JSON or Markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete one history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().StringVar(&historyKind, "kind", "", "filter by kind: analysis or story")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "filter by kind: analysis or story")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyExportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format: json or markdown")
	historyClearCmd.Flags().BoolVar(&historyForce, "force", false, "clear without confirmation")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entries, err := historyService.List(context.Background(), domain.EntryKind(historyKind), historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No history entries.")
		return nil
	}

	for _, entry := range entries {
		summary := entry.InputText
		if len([]rune(summary)) > 30 {
			summary = domain.TruncateText(summary, 30)
		}
		cmd.Printf("  %s  %s  [%s]  %s\n",
			entry.ID, entry.CreatedAt.Local().Format("2006-01-02 15:04"), entry.Kind, summary)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entry, err := historyService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("loading entry %s: %w", args[0], err)
	}

	cmd.Printf("ID:      %s\n", entry.ID)
	cmd.Printf("Kind:    %s\n", entry.Kind)
	cmd.Printf("Created: %s\n", entry.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("Input:   %s\n", entry.InputText)
	cmd.Println()

	switch {
	case entry.Analysis != nil:
		return outputAnalysisTable(cmd, entry.Analysis)
	case entry.Story != nil:
		printStory(cmd, entry.Story)
	}
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	format := driving.ExportFormat(exportFormat)
	if format != driving.ExportJSON && format != driving.ExportMarkdown {
		return fmt.Errorf("unknown export format %q", exportFormat)
	}

	rendered, err := historyService.Export(context.Background(), args[0], format)
	if err != nil {
		return fmt.Errorf("exporting entry %s: %w", args[0], err)
	}
	cmd.Println(rendered)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting entry %s: %w", args[0], err)
	}
	cmd.Printf("Deleted %s.\n", args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if !historyForce {
		return errors.New("refusing to clear history without --force")
	}

	if err := historyService.Clear(context.Background()); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}

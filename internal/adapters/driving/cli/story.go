package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
)

var (
	storyStyle        string
	storyTone         string
	storyLength       string
	storyVersions     int
	storyRequirements string
	storyJSON         bool
	storyNoSave       bool
	enhanceKind       string
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Generate stories from memory fragments",
	Long:  `Commands for turning memory fragments into generated stories.`,
}

var storyGenerateCmd = &cobra.Command{
	Use:   "generate [fragment]...",
	Short: "Generate a story from memory fragments",
	Long: `Weaves the given memory fragments into a story using the configured
text generation backend.

Fragments may be passed as separate arguments or as one comma-joined
string.

Examples:
  fifthseason story generate "老照片" "夏天的海边" "外婆的厨房"
  fifthseason story generate "老照片，夏天的海边，外婆的厨房"
  fifthseason story generate --style 诗意散文 --tone 思念 --length 长 "老照片"
  fifthseason story generate --versions 3 "老照片" "夏天的海边"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStoryGenerate,
}

var storyPreviewCmd = &cobra.Command{
	Use:   "preview [fragment]...",
	Short: "Print the generation prompt without calling the backend",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStoryPreview,
}

var storyEnhanceCmd = &cobra.Command{
	Use:   "enhance [story-id]",
	Short: "Enhance a previously generated story",
	Long: `Rewrites a story from history according to an enhancement kind.

Kinds: 细节丰富, 情感深化, 意境提升, 情节完善`,
	Args: cobra.ExactArgs(1),
	RunE: runStoryEnhance,
}

func init() {
	storyGenerateCmd.Flags().StringVar(&storyStyle, "style", "", "story style (default 小说风格)")
	storyGenerateCmd.Flags().StringVar(&storyTone, "tone", "", "emotional tone (default 温暖)")
	storyGenerateCmd.Flags().StringVar(&storyLength, "length", "", "story length: 短, 中等, 长 (default 中等)")
	storyGenerateCmd.Flags().IntVar(&storyVersions, "versions", 1, "number of story versions to generate")
	storyGenerateCmd.Flags().StringVar(&storyRequirements, "requirements", "", "extra creative requirements")
	storyGenerateCmd.Flags().BoolVar(&storyJSON, "json", false, "output stories as JSON")
	storyGenerateCmd.Flags().BoolVar(&storyNoSave, "no-save", false, "skip recording stories in history")

	storyPreviewCmd.Flags().StringVar(&storyStyle, "style", "", "story style (default 小说风格)")
	storyPreviewCmd.Flags().StringVar(&storyTone, "tone", "", "emotional tone (default 温暖)")
	storyPreviewCmd.Flags().StringVar(&storyLength, "length", "", "story length: 短, 中等, 长 (default 中等)")

	storyEnhanceCmd.Flags().StringVar(&enhanceKind, "kind", string(domain.EnhanceEmotion), "enhancement kind")
	storyEnhanceCmd.Flags().BoolVar(&storyJSON, "json", false, "output the story as JSON")

	storyCmd.AddCommand(storyGenerateCmd)
	storyCmd.AddCommand(storyPreviewCmd)
	storyCmd.AddCommand(storyEnhanceCmd)
	rootCmd.AddCommand(storyCmd)
}

// fragmentArgs expands a single separator-joined argument into
// individual fragments, so a quoted comma list works the same as
// separate arguments.
func fragmentArgs(args []string) []string {
	if len(args) == 1 {
		return domain.SplitFragments(args[0])
	}
	return args
}

// storyRequest builds a request from flags, falling back to configured
// defaults for unset style/tone/length flags.
func storyRequest(fragments []string) domain.StoryRequest {
	style := storyStyle
	tone := storyTone
	length := storyLength
	if configStore != nil {
		if style == "" {
			style = configStore.GetString(driven.ConfigDefaultStyle)
		}
		if tone == "" {
			tone = configStore.GetString(driven.ConfigDefaultTone)
		}
		if length == "" {
			length = configStore.GetString(driven.ConfigDefaultLength)
		}
	}
	return domain.StoryRequest{
		Fragments:          fragments,
		Style:              domain.StoryStyle(style),
		Tone:               domain.Emotion(tone),
		Length:             domain.StoryLength(length),
		CustomRequirements: storyRequirements,
	}
}

func runStoryGenerate(cmd *cobra.Command, args []string) error {
	if storyService == nil {
		return errors.New("story service not configured")
	}

	ctx := context.Background()
	req := storyRequest(fragmentArgs(args))

	var stories []*domain.Story
	if storyVersions > 1 {
		versions, err := storyService.GenerateVersions(ctx, req, storyVersions)
		if err != nil {
			return fmt.Errorf("story generation failed: %w", err)
		}
		stories = versions
	} else {
		story, err := storyService.Generate(ctx, req)
		if err != nil {
			return fmt.Errorf("story generation failed: %w", err)
		}
		stories = []*domain.Story{story}
	}

	if historyService != nil && !storyNoSave {
		for _, story := range stories {
			if _, err := historyService.RecordStory(ctx, story); err != nil {
				cmd.PrintErrf("Warning: could not record history: %v\n", err)
				break
			}
		}
	}

	if storyJSON {
		return outputStoriesJSON(cmd, stories)
	}
	for _, story := range stories {
		printStory(cmd, story)
	}
	return nil
}

func runStoryPreview(cmd *cobra.Command, args []string) error {
	if storyService == nil {
		return errors.New("story service not configured")
	}

	prompt, err := storyService.BuildPrompt(storyRequest(fragmentArgs(args)))
	if err != nil {
		return fmt.Errorf("building prompt failed: %w", err)
	}
	cmd.Println(prompt)
	return nil
}

func runStoryEnhance(cmd *cobra.Command, args []string) error {
	if storyService == nil {
		return errors.New("story service not configured")
	}
	if historyService == nil {
		return errors.New("history service not configured")
	}

	ctx := context.Background()
	entry, err := historyService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading story %s: %w", args[0], err)
	}
	if entry.Story == nil {
		return fmt.Errorf("history entry %s is not a story", args[0])
	}

	story, err := storyService.Enhance(ctx, entry.Story.Text, domain.EnhancementKind(enhanceKind))
	if err != nil {
		return fmt.Errorf("story enhancement failed: %w", err)
	}

	if !storyNoSave {
		if _, err := historyService.RecordStory(ctx, story); err != nil {
			cmd.PrintErrf("Warning: could not record history: %v\n", err)
		}
	}

	if storyJSON {
		return outputStoriesJSON(cmd, []*domain.Story{story})
	}
	printStory(cmd, story)
	return nil
}

func outputStoriesJSON(cmd *cobra.Command, stories []*domain.Story) error {
	var data []byte
	var err error
	if len(stories) == 1 {
		data, err = json.MarshalIndent(stories[0], "", "  ")
	} else {
		data, err = json.MarshalIndent(stories, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal stories: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printStory(cmd *cobra.Command, story *domain.Story) {
	if story.Version > 0 {
		cmd.Printf("── 版本 %d ──\n", story.Version)
	}
	cmd.Println(story.Text)
	cmd.Println()
	cmd.Printf("[%s · %s · %s · %d字 · seed %d · id %s]\n",
		story.Style, story.Tone, story.Length, story.RuneCount, story.Seed, story.ID)
	cmd.Println()
}

// Package cli provides the cobra command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/season-labs/fifthseason-cli/internal/adapters/driven/config/file"
	"github.com/season-labs/fifthseason-cli/internal/adapters/driven/generation/openai"
	"github.com/season-labs/fifthseason-cli/internal/adapters/driven/generation/pollinations"
	"github.com/season-labs/fifthseason-cli/internal/adapters/driven/polarity"
	"github.com/season-labs/fifthseason-cli/internal/adapters/driven/storage/memory"
	"github.com/season-labs/fifthseason-cli/internal/adapters/driven/storage/sqlite"
	"github.com/season-labs/fifthseason-cli/internal/adapters/driven/tokenizer"
	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driving"
	"github.com/season-labs/fifthseason-cli/internal/core/services"
	"github.com/season-labs/fifthseason-cli/internal/logger"
)

// version is set by Execute from the build-time version string.
var version = "dev"

var verbose bool

// Services used by the commands. Populated by initServices on first
// run; tests inject mocks directly.
var (
	analysisService driving.AnalysisService
	storyService    driving.StoryService
	historyService  driving.HistoryService
	configStore     driven.ConfigStore
	promptStore     *file.PromptStore
)

var rootCmd = &cobra.Command{
	Use:   "fifthseason",
	Short: "Emotion analysis and story generation for memory fragments",
	Long: `Fifthseason analyses the emotional spectrum of short Chinese texts
and weaves memory fragments into generated stories.

Emotion analysis runs fully offline against a built-in lexicon.
Story generation calls a text generation backend (Pollinations by
default, or any OpenAI-compatible endpoint).`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the real services and runs the root command with the
// given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	if err := initServices(); err != nil {
		return err
	}
	return rootCmd.Execute()
}

// initServices wires the real adapters into the core services.
// Already-set services (injected by tests) are left untouched.
func initServices() error {
	if analysisService != nil {
		return nil
	}

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = cfg

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}
	promptStore = prompts

	lexicon := domain.DefaultLexicon()

	seg, err := tokenizer.New(lexicon)
	if err != nil {
		return fmt.Errorf("loading tokenizer: %w", err)
	}

	analysisService = services.NewAnalysisService(seg, polarity.New(), lexicon)

	generator, err := buildGenerator(cfg)
	if err != nil {
		return err
	}
	storyService = services.NewStoryService(generator, prompts)

	store, err := openHistoryStore(cfg)
	if err != nil {
		return err
	}
	historyService = services.NewHistoryService(store)

	return nil
}

// watchPrompts starts prompt hot-reload in the background, so edits to
// the prompt files take effect while a long-running command is up.
// Returns a stop function. A nil prompt store is a no-op.
func watchPrompts(ctx context.Context) (stop func()) {
	if promptStore == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		if err := promptStore.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Prompt hot-reload stopped: %v", err)
		}
	}()
	return cancel
}

// buildGenerator selects the generation backend from configuration.
func buildGenerator(cfg driven.ConfigStore) (driven.TextGenerator, error) {
	provider := cfg.GetString(driven.ConfigGeneratorProvider)
	switch provider {
	case "", "pollinations":
		logger.Debug("Using Pollinations backend")
		return pollinations.NewClient(pollinations.Config{
			BaseURL: cfg.GetString(driven.ConfigGeneratorBaseURL),
			Model:   cfg.GetString(driven.ConfigGeneratorModel),
		}), nil
	case "openai":
		logger.Debug("Using OpenAI-compatible backend")
		client, err := openai.NewClient(openai.Config{
			APIKey:  cfg.GetString(driven.ConfigGeneratorAPIKey),
			BaseURL: cfg.GetString(driven.ConfigGeneratorBaseURL),
			Model:   cfg.GetString(driven.ConfigGeneratorModel),
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai backend: %w (run 'fifthseason settings set %s <key>')",
				err, driven.ConfigGeneratorAPIKey)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", provider)
	}
}

// openHistoryStore opens the SQLite history store, or an in-memory one
// when history recording is disabled.
func openHistoryStore(cfg driven.ConfigStore) (driven.HistoryStore, error) {
	if cfg.GetBool(driven.ConfigHistoryDisabled) {
		logger.Debug("History recording disabled; using in-memory store")
		return memory.NewHistoryStore(), nil
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}
	return store, nil
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the generation backend, default story options,
and history behaviour. Settings are stored in ~/.fifthseason/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by key.

Known keys:
  generator.provider   - generation backend: pollinations or openai
  generator.base_url   - backend base URL override
  generator.model      - backend model name
  generator.api_key    - API key (omit the value to be prompted without echo)
  story.style          - default story style
  story.tone           - default emotional tone
  story.length         - default story length
  history.disabled     - true to disable history recording`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Generator]")
	provider := configStore.GetString(driven.ConfigGeneratorProvider)
	if provider == "" {
		provider = "pollinations"
	}
	cmd.Printf("  Provider: %s\n", provider)
	if url := configStore.GetString(driven.ConfigGeneratorBaseURL); url != "" {
		cmd.Printf("  Base URL: %s\n", url)
	}
	if model := configStore.GetString(driven.ConfigGeneratorModel); model != "" {
		cmd.Printf("  Model: %s\n", model)
	}
	if key := configStore.GetString(driven.ConfigGeneratorAPIKey); key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else if provider == "openai" {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Story Defaults]")
	printDefault(cmd, "Style", configStore.GetString(driven.ConfigDefaultStyle), "小说风格")
	printDefault(cmd, "Tone", configStore.GetString(driven.ConfigDefaultTone), "温暖")
	printDefault(cmd, "Length", configStore.GetString(driven.ConfigDefaultLength), "中等")
	cmd.Println()

	cmd.Println("[History]")
	if configStore.GetBool(driven.ConfigHistoryDisabled) {
		cmd.Println("  Recording: disabled")
	} else {
		cmd.Println("  Recording: enabled")
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func printDefault(cmd *cobra.Command, label, value, fallback string) {
	if value == "" {
		cmd.Printf("  %s: %s (default)\n", label, fallback)
		return
	}
	cmd.Printf("  %s: %s\n", label, value)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]

	var raw string
	if len(args) == 2 {
		raw = args[1]
	} else if key == driven.ConfigGeneratorAPIKey {
		cmd.Print("Enter API key: ")
		raw = readPassword()
		cmd.Println()
	} else {
		return fmt.Errorf("missing value for key %q", key)
	}

	value := coerceValue(raw)
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}

	if key == driven.ConfigGeneratorAPIKey {
		cmd.Printf("Set %s = %s\n", key, maskAPIKey(raw))
	} else {
		cmd.Printf("Set %s = %v\n", key, value)
	}
	return nil
}

// coerceValue converts booleans and integers so TOML stores them typed.
func coerceValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

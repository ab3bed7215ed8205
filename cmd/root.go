package cmd

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/parley/parley/internal/app"
	"github.com/parley/parley/internal/config"
	"github.com/parley/parley/internal/genai"
	"github.com/parley/parley/internal/logger"
	"github.com/parley/parley/internal/speech"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal chat client with conversation history and voice input",
	Long: `Parley is a terminal chat client. Conversations live in a browsable,
searchable list; replies stream into a message thread; drafts can be typed
or dictated. Without an API key the app runs against a built-in mock model.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("parley %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("parley %s\n", version)
}

// newClient picks the generation backend: the real OpenAI client when an API
// key is in the environment, the canned mock otherwise.
func newClient() (genai.Client, error) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return genai.NewOpenAIClient(key)
	}
	return genai.NewMockClient(), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	client, err := newClient()
	if err != nil {
		return fmt.Errorf("error creating model client: %w", err)
	}
	logger.Log("CLI: Using %s backend", client.Name())

	m := app.New(cfg, client, speech.NewMockRecognizer(), speech.NewMockSynthesizer(), version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

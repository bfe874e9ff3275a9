package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tailortalk/internal/assistant"
	"tailortalk/internal/calendar"
	"tailortalk/internal/core"
	"tailortalk/internal/logger"
	"tailortalk/internal/nlp"
)

var (
	cfgFile string

	// Collaborators wired once per invocation in initAssistant.
	zone     *time.Location
	sched    core.Scheduler
	resolver *nlp.DayResolver
	bot      *assistant.Assistant
)

var rootCmd = &cobra.Command{
	Use:   "tailortalk",
	Short: "A conversational assistant that books appointments on your calendar",
	Long: `TailorTalk turns plain English like "Book 5th July 3PM" or
"Am I free tomorrow" into Google Calendar reads and writes.

Running without a subcommand opens the interactive chat.`,
	PersistentPreRunE: initAssistant,
	RunE:              runChat,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tailortalk/config.yaml)")
	rootCmd.PersistentFlags().String("credentials", "", "service account JSON file")
	rootCmd.PersistentFlags().String("calendar", "", "calendar ID to read and write")
	rootCmd.PersistentFlags().String("timezone", "", "IANA zone all times are interpreted in")
	rootCmd.PersistentFlags().Int("duration", 0, "default appointment length in minutes")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	viper.BindPFlag("credentials_file", rootCmd.PersistentFlags().Lookup("credentials"))
	viper.BindPFlag("calendar_id", rootCmd.PersistentFlags().Lookup("calendar"))
	viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))
	viper.BindPFlag("duration_minutes", rootCmd.PersistentFlags().Lookup("duration"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "tailortalk")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables (TAILORTALK_GEMINI_API_KEY etc.)
	viper.SetEnvPrefix("TAILORTALK")
	viper.AutomaticEnv()

	viper.SetDefault("credentials_file", "credentials.json")
	viper.SetDefault("calendar_id", "primary")
	viper.SetDefault("timezone", "Asia/Kolkata")
	viper.SetDefault("duration_minutes", 30)
	viper.SetDefault("summary", "Meeting via TailorTalk")
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// initAssistant builds the NLP pipeline, the calendar client and the
// optional Gemini paraphraser for every command that talks to them.
func initAssistant(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "help", "completion", "version":
		return nil
	}
	// "config show/init" and the generated "completion bash" family must
	// work before any credentials exist.
	if parent := cmd.Parent(); parent != nil {
		switch parent.Name() {
		case "config", "completion":
			return nil
		}
	}

	logger.Init(viper.GetString("log_level"))

	var err error
	zone, err = time.LoadLocation(viper.GetString("timezone"))
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", viper.GetString("timezone"), err)
	}

	credsFile := expandPath(viper.GetString("credentials_file"))
	if _, err := os.Stat(credsFile); os.IsNotExist(err) {
		return fmt.Errorf("service account file not found: %s\n\nRun 'tailortalk config init' and point credentials_file at your key", credsFile)
	}

	sched, err = calendar.NewGoogleScheduler(cmd.Context(), credsFile, viper.GetString("calendar_id"), zone)
	if err != nil {
		return fmt.Errorf("connect to calendar: %w", err)
	}

	duration := time.Duration(viper.GetInt("duration_minutes")) * time.Minute
	extractor := nlp.NewExtractor(zone, duration)
	resolver = nlp.NewDayResolver(extractor, zone)

	var opts []assistant.Option
	if key := viper.GetString("gemini_api_key"); key != "" {
		gen, err := assistant.NewGeminiGenerator(cmd.Context(), key)
		if err != nil {
			// The templated replies work without it.
			logger.L().Warn("gemini unavailable, replies stay templated", zap.Error(err))
		} else {
			opts = append(opts, assistant.WithGenerator(gen))
		}
	}

	bot = assistant.New(sched, extractor, resolver, viper.GetString("summary"), opts...)
	return nil
}

// expandPath resolves a leading ~ against the home directory.
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

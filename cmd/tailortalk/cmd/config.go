package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	keys := []string{
		"credentials_file", "calendar_id", "timezone",
		"duration_minutes", "summary", "log_level",
	}
	for _, k := range keys {
		fmt.Printf("%-18s %v\n", k+":", viper.Get(k))
	}
	if viper.GetString("gemini_api_key") != "" {
		fmt.Printf("%-18s %s\n", "gemini_api_key:", "(set)")
	}
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Println("\nconfig file:", used)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	starter := map[string]any{
		"credentials_file": "~/.config/tailortalk/service-account.json",
		"calendar_id":      "primary",
		"timezone":         "Asia/Kolkata",
		"duration_minutes": 30,
		"summary":          "Meeting via TailorTalk",
		"log_level":        "info",
	}

	data, err := yaml.Marshal(starter)
	if err != nil {
		return fmt.Errorf("marshal starter config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	fmt.Println("Wrote", path)
	fmt.Println("Set TAILORTALK_GEMINI_API_KEY in the environment to enable conversational replies.")
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "tailortalk", "config.yaml")
}

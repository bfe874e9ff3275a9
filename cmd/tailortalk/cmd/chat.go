package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tailortalk/internal/assistant"
	"tailortalk/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat",
	Long:  `Open the chat transcript UI. One run is one conversation session.`,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	// Canceled once the program exits so a quit mid-turn also stops the
	// calendar call behind it.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := tui.NewModel(ctx, bot, assistant.NewSession())

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running chat: %w", err)
	}
	return nil
}

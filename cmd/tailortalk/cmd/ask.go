package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tailortalk/internal/assistant"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send a single message and print the reply",
	Long: `Send one message through the assistant without entering the chat.

Note that a booking proposal cannot be confirmed this way: the pending
slot lives in the conversation session, which ends with the process.

Example:
  tailortalk ask "am I free tomorrow"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	session := assistant.NewSession()
	reply, err := bot.Handle(cmd.Context(), session, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

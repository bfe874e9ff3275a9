package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tailortalk/internal/calendar"
	"tailortalk/internal/util"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda [phrase]",
	Short: "List events for a day phrase",
	Long: `List calendar events for a natural-language day phrase:
"today", "tomorrow", "friday", "next week", "5th July".

Defaults to today.`,
	RunE: runAgenda,
}

func init() {
	rootCmd.AddCommand(agendaCmd)
}

func runAgenda(cmd *cobra.Command, args []string) error {
	phrase := "today"
	if len(args) > 0 {
		phrase = strings.Join(args, " ")
	}

	now := time.Now().In(zone)
	window, err := resolver.ResolveDayRange(phrase, now)
	if err != nil {
		return fmt.Errorf("could not understand %q: %w", phrase, err)
	}

	events, err := sched.ListEvents(cmd.Context(), window)
	if err != nil {
		return err
	}
	events = calendar.DedupeForDisplay(events)

	header := window.Start.Format("Monday, 02 January 2006")
	if window.Duration() > 24*time.Hour {
		header += " — " + window.End.AddDate(0, 0, -1).Format("Monday, 02 January 2006")
	}
	fmt.Println(header)

	if len(events) == 0 {
		fmt.Println("  no events")
		return nil
	}
	for _, ev := range events {
		when := ev.Start.Format("03:04 PM")
		if ev.IsAllDay {
			when = "all day "
		}
		summary := util.TruncateText(ev.Summary, 60)
		if summary == "" {
			summary = "(no title)"
		}
		if ev.HTMLLink != "" {
			summary = util.MakeHyperlink(ev.HTMLLink, summary)
		}
		marker := "  "
		if ev.InProgress(now) {
			marker = "▶ "
		}
		fmt.Printf("%s%s  %s\n", marker, when, summary)
	}
	return nil
}

package assistant

import (
	"fmt"
	"strings"
	"time"

	"tailortalk/internal/core"
)

// readableFormat renders instants the way the assistant speaks about
// them: "Saturday, 05 July 2025 at 03:00 PM".
const readableFormat = "Monday, 02 January 2006 at 03:04 PM"

func clarificationReply() string {
	return "I couldn't understand the date/time. Please try something like 'Book on 20 July at 4 PM'."
}

func proposalReply(slot core.Interval, replaced core.Interval, hadPending bool) string {
	var b strings.Builder
	if hadPending {
		fmt.Fprintf(&b, "Dropping the unconfirmed slot on %s. ", replaced.Start.Format(readableFormat))
	}
	fmt.Fprintf(&b, "The slot on %s is free. Shall I book it? Reply 'yes' to confirm.",
		slot.Start.Format(readableFormat))
	return b.String()
}

func confirmationReply(slot core.Interval, link string) string {
	reply := fmt.Sprintf("You're booked on %s!", slot.Start.Format(readableFormat))
	if link != "" {
		reply += " " + link
	}
	return reply
}

func conflictReply(slot core.Interval) string {
	return fmt.Sprintf("You already have an appointment booked at %s. Please choose another slot.",
		slot.Start.Format(readableFormat))
}

func freeReply(window core.Interval) string {
	if window.Duration() <= 24*time.Hour {
		return fmt.Sprintf("You're free on %s.", window.Start.Format("Monday, 02 January"))
	}
	return fmt.Sprintf("You're free between %s and %s.",
		window.Start.Format("Monday, 02 January"),
		window.End.Add(-time.Second).Format("Monday, 02 January"))
}

func scheduleReply(window core.Interval, events []core.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's what you have from %s:", window.Start.Format("Monday, 02 January"))
	for _, ev := range events {
		b.WriteString("\n- ")
		b.WriteString(eventLine(ev))
	}
	return b.String()
}

func eventLine(ev core.Event) string {
	summary := ev.Summary
	if summary == "" {
		summary = "(no title)"
	}
	if ev.IsAllDay {
		return fmt.Sprintf("%s (all day, %s)", summary, ev.Start.Format("Monday, 02 January"))
	}
	return fmt.Sprintf("%s at %s", summary, ev.Start.Format(readableFormat))
}

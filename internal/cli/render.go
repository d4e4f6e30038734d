package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pactly/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)
)

// Warn formats a non-fatal notice.
func Warn(msg string) string {
	return warningStyle.Render(msg)
}

// ProgressBar draws rate (0-100) as a fixed-width bar.
func ProgressBar(rate, width int) string {
	rate = max(0, min(rate, 100))
	filled := rate * width / 100
	return okStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

// RenderProgressCard draws a card from its frozen stats.
func RenderProgressCard(card models.ProgressCard) string {
	lines := []string{
		titleStyle.Render(card.Title),
		mutedStyle.Render(card.IdentityStatement),
		"",
		fmt.Sprintf("Streak     %d days", card.Stats.StreakDays),
		fmt.Sprintf("Goals      %d/%d", card.Stats.GoalsCompleted, card.Stats.TotalGoals),
		fmt.Sprintf("Progress   %s %d%%", ProgressBar(card.Stats.CompletionRate, 20), card.Stats.CompletionRate),
		fmt.Sprintf("Verified   %d", card.Stats.VerifiedCount),
	}
	footer := "not shared"
	if card.Shared {
		footer = "shared"
	}
	lines = append(lines, "", mutedStyle.Render(card.ID+"  "+footer))
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// RenderPactSummary is the one-line form used in listings.
func RenderPactSummary(p models.Pact) string {
	return fmt.Sprintf("%s  %s  [%s]  streak %d  %s %d%%",
		mutedStyle.Render(p.ID),
		titleStyle.Render(p.Title),
		p.Status,
		p.Streak,
		ProgressBar(p.CompletionRate, 10),
		p.CompletionRate,
	)
}

// RenderPactDetail prints the pact with its goals, plan and recent activity.
func RenderPactDetail(p models.Pact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(p.Title))
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(p.IdentityStatement))
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n", p.Description)
	}
	fmt.Fprintf(&b, "\nStatus: %s   Streak: %d   Completion: %d%%\n", p.Status, p.Streak, p.CompletionRate)
	fmt.Fprintf(&b, "Dates: %s to %s\n", p.StartDate, orDash(p.EndDate))

	if len(p.MicroGoals) > 0 {
		b.WriteString("\nMicro-goals:\n")
		for _, g := range p.MicroGoals {
			mark := "[ ]"
			if g.Completed {
				mark = okStyle.Render("[x]")
			}
			fmt.Fprintf(&b, "  %s %s (%s)  %s\n", mark, g.GoalText, g.Difficulty, mutedStyle.Render(g.ID))
		}
	}

	if len(p.WeeklyPlan) > 0 {
		b.WriteString("\nWeekly plan:\n")
		for i, d := range p.WeeklyPlan {
			mark := "[ ]"
			if d.Completed {
				mark = okStyle.Render("[x]")
			}
			fmt.Fprintf(&b, "  %d. %s %s: %s\n", i, mark, d.Day, d.MicroGoal)
		}
	}

	if len(p.Supporters) > 0 {
		b.WriteString("\nSupporters:\n")
		for _, s := range p.Supporters {
			fmt.Fprintf(&b, "  %s %s\n", s.Name, mutedStyle.Render(orDash(s.Role)))
		}
	}

	if len(p.CheckIns) > 0 {
		b.WriteString("\nRecent check-ins:\n")
		for _, c := range p.CheckIns[:min(len(p.CheckIns), 5)] {
			fmt.Fprintf(&b, "  %s  %-5s  %s\n", c.Date, c.Mood, c.Note)
		}
	}

	if len(p.Verifications) > 0 {
		b.WriteString("\nVerifications:\n")
		for _, v := range p.Verifications {
			fmt.Fprintf(&b, "  %s  %s  %s %s\n", mutedStyle.Render(v.ID), v.Type, v.Status, v.VerifiedBy)
		}
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

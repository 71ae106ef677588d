// Package render maps view state to console text. Every function is
// pure: no network calls, no mutation of its inputs.
package render

import (
	"fmt"
	"strings"

	"github.com/pitchside/auctionsync/internal/models"
)

// StatusLine renders the one-line auction status banner.
func StatusLine(status *models.AuctionStatus, socketLive bool) string {
	if status == nil {
		return "auction: unknown | live: " + liveMark(socketLive)
	}

	state := "stopped"
	if status.Active {
		state = "ACTIVE"
	}

	line := fmt.Sprintf("auction: %s", state)
	if status.CurrentPlayerName != "" {
		line += " | on the block: " + status.CurrentPlayerName
	}
	if status.TimerRemaining != nil {
		line += fmt.Sprintf(" | %ds", *status.TimerRemaining)
	}
	return line + " | live: " + liveMark(socketLive)
}

func liveMark(live bool) string {
	if live {
		return "connected"
	}
	return "reconnecting"
}

// LivePlayerBanner renders the current-player spotlight.
func LivePlayerBanner(player *models.Player) string {
	if player == nil {
		return "No player on the block."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NOW ON THE BLOCK: %s (%s)\n", player.Name, player.Role)
	fmt.Fprintf(&b, "  base price %.0f", player.BasePrice)
	if player.Category != "" {
		fmt.Fprintf(&b, " | %s", player.Category)
	}
	if player.AuctionRound > 1 {
		fmt.Fprintf(&b, " | round %d", player.AuctionRound)
	}
	b.WriteByte('\n')
	return b.String()
}

// PlayersTable renders the player list as a fixed-width table.
func PlayersTable(players []models.Player) string {
	if len(players) == 0 {
		return "No players.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-28s %-14s %-10s %10s %10s  %s\n",
		"NAME", "ROLE", "STATUS", "BASE", "FINAL", "TEAM")
	for _, p := range players {
		final := "-"
		if p.FinalBid > 0 {
			final = fmt.Sprintf("%.0f", p.FinalBid)
		}
		fmt.Fprintf(&b, "%-28s %-14s %-10s %10.0f %10s  %s\n",
			truncate(p.Name, 28), truncate(p.Role, 14), p.Status, p.BasePrice, final, p.TeamName)
	}
	return b.String()
}

// RosterTable renders a team's purchased roster with budget footer.
func RosterTable(detail *models.TeamDetail) string {
	if detail == nil {
		return "No roster loaded.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (owner: %s)\n", detail.Name, orDash(detail.Owner))
	for _, p := range detail.Players {
		fmt.Fprintf(&b, "  %-28s %-14s %10.0f\n", truncate(p.Name, 28), truncate(p.Role, 14), p.FinalBid)
	}
	fmt.Fprintf(&b, "spent %.0f of %.0f (%.0f remaining, %d players)\n",
		detail.TotalSpent, detail.Budget, detail.RemainingBudget, detail.PlayersCount)
	return b.String()
}

// TeamsTable renders the team budget overview.
func TeamsTable(teams []models.Team) string {
	if len(teams) == 0 {
		return "No teams.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %10s %10s %10s %8s\n", "TEAM", "BUDGET", "SPENT", "LEFT", "PLAYERS")
	for _, t := range teams {
		fmt.Fprintf(&b, "%-24s %10.0f %10.0f %10.0f %8d\n",
			truncate(t.Name, 24), t.Budget, t.TotalSpent, t.RemainingBudget, t.PlayersCount)
	}
	return b.String()
}

// ChatLog renders the most recent chat messages, oldest first.
func ChatLog(messages []models.ChatMessage, limit int) string {
	if len(messages) == 0 {
		return "No messages.\n"
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	var b strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&b, "[%s] %s: %s\n", m.Timestamp.Format("15:04:05"), m.SenderName, m.Message)
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

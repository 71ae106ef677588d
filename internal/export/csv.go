package export

import (
	"fmt"
	"strings"

	"github.com/pitchside/auctionsync/internal/models"
)

// sanitizeField neutralizes characters that would break the column
// layout. Commas are replaced rather than quoted so the column count of
// every row stays constant for naive consumers.
func sanitizeField(field string) string {
	field = strings.ReplaceAll(field, ",", ";")
	field = strings.ReplaceAll(field, "\r", " ")
	field = strings.ReplaceAll(field, "\n", " ")
	return field
}

// WriteCSV renders one header row plus one row per record.
func WriteCSV(header []string, rows [][]string) string {
	var b strings.Builder

	writeRow(&b, header)
	for _, row := range rows {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(sanitizeField(field))
	}
	b.WriteByte('\n')
}

// SoldPlayersCSV exports the sold-players report from an in-memory
// player list. Unsold players are skipped.
func SoldPlayersCSV(players []models.Player) string {
	header := []string{"Player", "Role", "Category", "Base Price", "Final Bid", "Team"}

	var rows [][]string
	for _, p := range players {
		if p.Status != models.PlayerStatusSold {
			continue
		}
		rows = append(rows, []string{
			p.Name,
			p.Role,
			p.Category,
			formatAmount(p.BasePrice),
			formatAmount(p.FinalBid),
			p.TeamName,
		})
	}
	return WriteCSV(header, rows)
}

// TeamSummaryCSV exports the team budget summary.
func TeamSummaryCSV(teams []models.Team) string {
	header := []string{"Team", "Owner", "Budget", "Spent", "Remaining", "Players"}

	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{
			t.Name,
			t.Owner,
			formatAmount(t.Budget),
			formatAmount(t.TotalSpent),
			formatAmount(t.RemainingBudget),
			fmt.Sprintf("%d", t.PlayersCount),
		})
	}
	return WriteCSV(header, rows)
}

func formatAmount(amount float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", amount), "0"), ".")
}

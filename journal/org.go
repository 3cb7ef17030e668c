package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradegym/internal/id"
)

// FormatRunsOrg renders runs as an Org table, newest first as given.
func FormatRunsOrg(runs []Run) string {
	var b strings.Builder
	b.WriteString("| Run | Created | Policy | Symbol | Episodes | Steps | Net P/L | Return % |\n")
	b.WriteString("|-----+---------+--------+--------+----------+-------+---------+----------|\n")
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %d | %.2f | %.2f |\n",
			id.Short(r.RunID),
			r.Created.UTC().Format(time.RFC3339),
			r.Policy,
			r.Symbol,
			r.Episodes,
			r.Steps,
			r.NetPL,
			r.ReturnPct,
		))
	}
	return b.String()
}

// FormatStepsOrg renders step records as an Org table.
func FormatStepsOrg(steps []StepRecord) string {
	var b strings.Builder
	b.WriteString("| Episode | Step | Time | Action | Price | Balance | Shares | Reward |\n")
	b.WriteString("|---------+------+------+--------+-------+---------+--------+--------|\n")
	for _, s := range steps {
		ts := ""
		if !s.Time.IsZero() {
			ts = s.Time.UTC().Format(time.RFC3339)
		}
		b.WriteString(fmt.Sprintf("| %d | %d | %s | %s | %.4f | %.2f | %g | %.2f |\n",
			s.Episode, s.Step, ts, s.Action, s.Price, s.Balance, s.SharesHeld, s.Reward))
	}
	return b.String()
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/collabgraph/pkg/analytics"
	"github.com/matzehuels/collabgraph/pkg/pipeline"
)

var styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// printReport renders an analysis report for the terminal.
func printReport(r *pipeline.Report) {
	s := r.Summary
	fmt.Fprintln(stdout, StyleTitle.Render("Summary"))
	printKeyValue("Users", strconv.Itoa(s.Vertices))
	printKeyValue("Edges", strconv.Itoa(s.Edges))
	printKeyValue("Isolated", strconv.Itoa(s.Isolated))
	printKeyValue("Communities", strconv.Itoa(s.Communities))
	printKeyValue("Connected", fmt.Sprintf("%.2f%%", r.ConnectionLevel))
	if r.Ingestion != nil && r.Ingestion.Dropped() > 0 {
		printKeyValue("Dropped", fmt.Sprintf("%d of %d records", r.Ingestion.Dropped(), r.Ingestion.Records))
	}
	printNewline()

	fmt.Fprintln(stdout, StyleTitle.Render("Most influential"))
	fmt.Fprintln(stdout, rankedTable("Weight", r.Influencers))
	printNewline()

	fmt.Fprintln(stdout, StyleTitle.Render("Communities"))
	for i, c := range r.Communities {
		fmt.Fprintf(stdout, "  %s %s\n", StyleNumber.Render(fmt.Sprintf("%2d.", i+1)), strings.Join(c, ", "))
	}
	if len(r.Communities) == 0 {
		printDetail("none")
	}
	printNewline()

	fmt.Fprintln(stdout, StyleTitle.Render("Most fragmenting"))
	if f := r.Fragmenting; f != nil {
		printKeyValue("User", f.Label)
		printKeyValue("Components", fmt.Sprintf("%d → %d (+%d)", f.Baseline, f.After, f.Increase))
	} else {
		printDetail("no single user splits the graph")
	}

	if f := r.Focus; f != nil {
		printNewline()
		printFocus(f)
	}
}

// printFocus renders the closest and non-direct rankings for one user.
func printFocus(f *pipeline.Focus) {
	fmt.Fprintln(stdout, StyleTitle.Render("Closest to "+f.User))
	fmt.Fprintln(stdout, rankedTable("Weight", f.Closest))
	printNewline()
	fmt.Fprintln(stdout, StyleTitle.Render("Reachable but not direct"))
	fmt.Fprintln(stdout, rankedTable("Hops", f.NonDirect))
}

// rankedTable renders a ranking as a bordered table.
func rankedTable(scoreHeader string, rs []analytics.Ranked) string {
	if len(rs) == 0 {
		return "  " + StyleDim.Render("none")
	}
	rows := make([][]string, len(rs))
	for i, r := range rs {
		rows[i] = []string{strconv.Itoa(i + 1), r.Label, strconv.FormatFloat(r.Score, 'f', -1, 64)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "User", scoreHeader).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHeader
			case col == 2:
				return StyleNumber
			case col == 0:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

package flows

import (
	"fmt"
	"sort"
	"strings"
)

// statusColors keeps the chart readable without a legend lookup.
var statusColors = map[string]string{
	"completed": "#2e7d32",
	"pending":   "#f9a825",
	"failed":    "#c62828",
}

// renderStatusChart draws a small SVG bar chart of wire event status counts.
// Bars are ordered by status name so the output is deterministic.
func renderStatusChart(title string, counts map[string]int) []byte {
	statuses := make([]string, 0, len(counts))
	maxCount := 1
	for s, c := range counts {
		statuses = append(statuses, s)
		if c > maxCount {
			maxCount = c
		}
	}
	sort.Strings(statuses)

	const (
		width     = 420
		height    = 240
		barWidth  = 80
		barGap    = 40
		baseline  = 200
		maxBarPx  = 150
		marginLft = 40
	)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, width, height)
	fmt.Fprintf(&b, `<text x="%d" y="24" font-family="sans-serif" font-size="14">%s</text>`, marginLft, title)

	x := marginLft
	for _, s := range statuses {
		c := counts[s]
		barH := c * maxBarPx / maxCount
		color, ok := statusColors[s]
		if !ok {
			color = "#546e7a"
		}
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
			x, baseline-barH, barWidth, barH, color)
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="sans-serif" font-size="12">%s (%d)</text>`,
			x, baseline+18, s, c)
		x += barWidth + barGap
	}

	b.WriteString(`</svg>`)
	return []byte(b.String())
}

package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 40

var rule = strings.Repeat("-", ruleWidth)

func writeText(w io.Writer, l Labels, rep Report) error {
	bw := bufio.NewWriter(w)
	for _, t := range rep.Transfers {
		for _, f := range l.fields(t) {
			fmt.Fprintf(bw, "%s: %s\n", f.label, f.value)
		}
		fmt.Fprintln(bw, rule)
	}
	fmt.Fprintf(bw, "\n%s: %d\n", l.Count, len(rep.Transfers))
	return bw.Flush()
}

func writePretty(w io.Writer, l Labels, rep Report) error {
	r := lipgloss.NewRenderer(w)
	labelStyle := r.NewStyle().Bold(true)
	ruleStyle := r.NewStyle().Foreground(lipgloss.Color("8"))
	amountStyle := r.NewStyle().Foreground(lipgloss.Color("10"))
	invalidStyle := r.NewStyle().Foreground(lipgloss.Color("9"))
	totalStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	bw := bufio.NewWriter(w)
	for _, t := range rep.Transfers {
		fields := l.fields(t)
		for i, f := range fields {
			value := f.value
			if i == len(fields)-1 {
				if t.Valid() {
					value = amountStyle.Render(value)
				} else {
					value = invalidStyle.Render(value)
				}
			}
			fmt.Fprintf(bw, "%s %s\n", labelStyle.Render(f.label+":"), value)
		}
		fmt.Fprintln(bw, ruleStyle.Render(rule))
	}
	fmt.Fprintf(bw, "\n%s %d\n", labelStyle.Render(l.Count+":"), rep.Summary.TotalCount)
	fmt.Fprintf(bw, "%s %s\n", labelStyle.Render(l.Total+":"), totalStyle.Render(rep.Summary.TotalDisplay))
	for _, d := range rep.Diagnostics {
		fmt.Fprintln(bw, invalidStyle.Render("! "+d.String()))
	}
	return bw.Flush()
}

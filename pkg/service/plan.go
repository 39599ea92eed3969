package service

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/yurifrl/pixu/pkg/models"
	"github.com/yurifrl/pixu/pkg/parser"
	"github.com/yurifrl/pixu/pkg/plan"
	"github.com/yurifrl/pixu/pkg/render"
)

// SourceReport is the outcome of one plan source. Err is set when the source
// could not be read; Result is nil in that case.
type SourceReport struct {
	Label  string
	Path   string
	Result *parser.Result
	Err    error
}

type PlanReport struct {
	Sources []SourceReport
	Summary parser.Summary
}

// Transfers returns the transfers of every readable source, in plan order.
func (r *PlanReport) Transfers() []*models.Transfer {
	var out []*models.Transfer
	for _, s := range r.Sources {
		if s.Result != nil {
			out = append(out, s.Result.Transfers...)
		}
	}
	return out
}

func (r *PlanReport) Failed() int {
	n := 0
	for _, s := range r.Sources {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// RunPlan extracts every source of a plan. A source that cannot be read is
// reported and the rest still run.
func (p *Processor) RunPlan(pl *plan.Plan) *PlanReport {
	ps := p.parser
	if len(pl.Banks) > 0 {
		ps = newParser(p.config, p.logger, pl.Banks...)
	}

	report := &PlanReport{}
	for _, s := range pl.Sources {
		sr := SourceReport{Label: s.Label}
		sr.Path, sr.Err = pl.Path(s)
		if sr.Err == nil {
			if sr.Path != "" {
				sr.Result, sr.Err = extractFile(ps, sr.Path)
			} else {
				sr.Result = ps.Extract(s.Text)
			}
		}
		if sr.Err != nil {
			p.logger.Warn("failed to extract source", "label", s.Label, "path", sr.Path, "error", sr.Err)
		} else {
			p.logger.Debug("extracted source", "label", s.Label, "transfers", sr.Result.Summary.TotalCount)
		}
		report.Sources = append(report.Sources, sr)
	}
	report.Summary = parser.Summarize(report.Transfers())
	return report
}

// Print writes one line per source and a grand total.
func (r *PlanReport) Print(w io.Writer, labels render.Labels) {
	lr := lipgloss.NewRenderer(w)
	okStyle := lr.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle := lr.NewStyle().Foreground(lipgloss.Color("9"))
	totalStyle := lr.NewStyle().Bold(true)

	for _, s := range r.Sources {
		if s.Err != nil {
			fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("! %-20s | %v", s.Label, s.Err)))
			continue
		}
		sum := s.Result.Summary
		line := fmt.Sprintf("+ %-20s | %s: %d | %s", s.Label, labels.Count, sum.TotalCount, sum.TotalDisplay)
		if n := len(s.Result.Diagnostics); n > 0 {
			line += fmt.Sprintf(" | %d unparsed", n)
		}
		fmt.Fprintln(w, okStyle.Render(line))
	}
	fmt.Fprintf(w, "\n%s\n", totalStyle.Render(fmt.Sprintf("%s: %d | %s: %s",
		labels.Count, r.Summary.TotalCount, labels.Total, r.Summary.TotalDisplay)))
}

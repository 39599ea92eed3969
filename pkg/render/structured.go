package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type TransferView struct {
	ID            string `json:"id" yaml:"id"`
	Block         int    `json:"block" yaml:"block"`
	Bank          string `json:"bank" yaml:"bank"`
	Payee         string `json:"payee" yaml:"payee"`
	KeyType       string `json:"key_type" yaml:"key_type"`
	Key           string `json:"key" yaml:"key"`
	Branch        string `json:"branch" yaml:"branch"`
	Account       string `json:"account" yaml:"account"`
	Amount        string `json:"amount,omitempty" yaml:"amount,omitempty"`
	AmountDisplay string `json:"amount_display" yaml:"amount_display"`
	Valid         bool   `json:"valid" yaml:"valid"`
}

type SummaryView struct {
	TotalAmount  string `json:"total_amount" yaml:"total_amount"`
	TotalCount   int    `json:"total_count" yaml:"total_count"`
	TotalDisplay string `json:"total_display" yaml:"total_display"`
}

type DiagnosticView struct {
	Block int    `json:"block" yaml:"block"`
	Field string `json:"field" yaml:"field"`
	Raw   string `json:"raw" yaml:"raw"`
	Error string `json:"error" yaml:"error"`
}

type ReportView struct {
	Transfers   []TransferView   `json:"transfers" yaml:"transfers"`
	Summary     SummaryView      `json:"summary" yaml:"summary"`
	Diagnostics []DiagnosticView `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// View converts a report into plain serializable data.
func View(rep Report) ReportView {
	v := ReportView{
		Transfers: make([]TransferView, 0, len(rep.Transfers)),
		Summary: SummaryView{
			TotalAmount:  rep.Summary.TotalAmount.StringFixed(2),
			TotalCount:   rep.Summary.TotalCount,
			TotalDisplay: rep.Summary.TotalDisplay,
		},
	}
	for _, t := range rep.Transfers {
		tv := TransferView{
			ID:            t.ID(),
			Block:         t.Block(),
			Bank:          t.Bank(),
			Payee:         t.Payee(),
			KeyType:       t.Key().Kind.String(),
			Key:           t.Key().String(),
			Branch:        t.Branch(),
			Account:       t.Account(),
			AmountDisplay: t.AmountDisplay(),
			Valid:         t.Valid(),
		}
		if t.Valid() {
			tv.Amount = t.Amount().StringFixed(2)
		}
		v.Transfers = append(v.Transfers, tv)
	}
	for _, d := range rep.Diagnostics {
		dv := DiagnosticView{Block: d.Block, Field: d.Field, Raw: d.Raw}
		if d.Err != nil {
			dv.Error = d.Err.Error()
		}
		v.Diagnostics = append(v.Diagnostics, dv)
	}
	return v
}

func writeJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(View(rep)); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(View(rep)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

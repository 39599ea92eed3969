// Package render writes extraction results in the supported output formats.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yurifrl/pixu/pkg/csv"
	"github.com/yurifrl/pixu/pkg/models"
	"github.com/yurifrl/pixu/pkg/parser"
)

type Format string

const (
	FormatText   Format = "text"
	FormatPretty Format = "pretty"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatPretty, FormatCSV, FormatJSON, FormatYAML}

// ParseFormat accepts a format name in any case. An empty name means text.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Ext is the file extension used when a rendering is written to disk.
func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// Report is what gets rendered: a set of transfers, their totals and any
// normalization problems found while extracting them.
type Report struct {
	Transfers   []*models.Transfer
	Summary     parser.Summary
	Diagnostics []parser.Diagnostic
}

// FromResult builds a report from an extraction, keeping only transfers that
// pass filter. Totals are recomputed when a filter is given.
func FromResult(res *parser.Result, filter csv.FilterFunc[*models.Transfer]) Report {
	if filter == nil {
		return Report{Transfers: res.Transfers, Summary: res.Summary, Diagnostics: res.Diagnostics}
	}
	var kept []*models.Transfer
	for _, t := range res.Transfers {
		if filter(t) {
			kept = append(kept, t)
		}
	}
	return Report{Transfers: kept, Summary: parser.Summarize(kept), Diagnostics: res.Diagnostics}
}

type Renderer struct {
	format Format
	labels Labels
}

func New(format Format, labels Labels) *Renderer {
	return &Renderer{format: format, labels: labels}
}

func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) Render(w io.Writer, rep Report) error {
	switch r.format {
	case FormatText, "":
		return writeText(w, r.labels, rep)
	case FormatPretty:
		return writePretty(w, r.labels, rep)
	case FormatCSV:
		out, err := csv.Create(rep.Transfers, nil)
		if err != nil {
			return fmt.Errorf("failed to build csv: %w", err)
		}
		_, err = w.Write(out)
		return err
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatYAML:
		return writeYAML(w, rep)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, r.format)
	}
}

package service

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/pixu/pkg/config"
	"github.com/yurifrl/pixu/pkg/plan"
	"github.com/yurifrl/pixu/pkg/render"
)

func newTestProcessor(t *testing.T, cfg *config.Config) *Processor {
	t.Helper()
	p, err := NewProcessor(cfg, log.New(io.Discard))
	require.NoError(t, err)
	return p
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewProcessorUnknownFormat(t *testing.T) {
	cfg := config.New("")
	cfg.Format = "xml"
	_, err := NewProcessor(cfg, log.New(io.Discard))
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestDetermineOutputPath(t *testing.T) {
	p := newTestProcessor(t, config.New(""))
	assert.Equal(t, "/in/march-pixu.txt", p.determineOutputPath("/in/march.txt", "march.txt"))

	cfg := config.New("/out")
	cfg.Format = "json"
	p = newTestProcessor(t, cfg)
	assert.Equal(t, "/out/march-pixu.json", p.determineOutputPath("/in/march.xls", "march.xls"))
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "Bradesco Ana PIX CPF 1 R$ 10,00\nNubank Bia PIX R$ 2,50")
	writeFile(t, filepath.Join(dir, "notes.md"), "Bradesco Ana PIX R$ 10,00")
	writeFile(t, filepath.Join(dir, "broken.xls"), "not a workbook")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	cfg := config.New("")
	cfg.Format = "json"
	p := newTestProcessor(t, cfg)
	require.NoError(t, p.ProcessDirectory(dir))

	data, err := os.ReadFile(filepath.Join(dir, "a-pixu.json"))
	require.NoError(t, err)

	var v render.ReportView
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, 2, v.Summary.TotalCount)
	assert.Equal(t, "R$ 12,50", v.Summary.TotalDisplay)

	assert.NoFileExists(t, filepath.Join(dir, "notes-pixu.json"))
	assert.NoFileExists(t, filepath.Join(dir, "broken-pixu.json"))

	// a second run must not pick up its own output
	require.NoError(t, p.ProcessDirectory(dir))
	assert.NoFileExists(t, filepath.Join(dir, "a-pixu-pixu.json"))
}

func TestProcessDirectoryOutputPath(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(in, "paste.txt"), "Basa Rui PIX R$ 7,50")

	cfg := config.New(out)
	cfg.Locale = "pt"
	p := newTestProcessor(t, cfg)
	require.NoError(t, p.ProcessDirectory(in))

	data, err := os.ReadFile(filepath.Join(out, "paste-pixu.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Banco: Basa")
	assert.Contains(t, string(data), "Contas Pix: 1")
}

func TestProcessDirectoryMissing(t *testing.T) {
	p := newTestProcessor(t, config.New(""))
	assert.Error(t, p.ProcessDirectory(filepath.Join(t.TempDir(), "missing")))
}

func TestExtractFileUsesConfiguredBanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paste.txt")
	writeFile(t, path, "Inter Caio PIX R$ 1,00")

	cfg := config.New("")
	cfg.Banks = []string{"Inter"}
	res, err := newTestProcessor(t, cfg).ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, res.Transfers, 1)
	assert.Equal(t, "Inter", res.Transfers[0].Bank())
}

func TestRunPlan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "march.txt"), "Bradesco Ana PIX R$ 100,00\nPicPay Bia PIX R$ 1,234.56")
	writeFile(t, filepath.Join(dir, "plan.yaml"), `banks: [PicPay]
sources:
  - label: march
    file: march.txt
  - label: missing
    file: missing.txt
  - label: pasted
    text: "Neon Caio PIX R$ 0,50"
`)

	pl, err := plan.Load(filepath.Join(dir, "plan.yaml"))
	require.NoError(t, err)

	report := newTestProcessor(t, config.New("")).RunPlan(pl)
	require.Len(t, report.Sources, 3)
	assert.NoError(t, report.Sources[0].Err)
	assert.Equal(t, 2, report.Sources[0].Result.Summary.TotalCount)
	assert.Error(t, report.Sources[1].Err)
	assert.Nil(t, report.Sources[1].Result)
	assert.Equal(t, "R$ 0,50", report.Sources[2].Result.Summary.TotalDisplay)

	assert.Equal(t, 1, report.Failed())
	assert.Len(t, report.Transfers(), 3)
	assert.Equal(t, 3, report.Summary.TotalCount)
	assert.Equal(t, "R$ 100,50", report.Summary.TotalDisplay)

	var buf bytes.Buffer
	report.Print(&buf, render.English)
	out := buf.String()
	assert.Contains(t, out, "march")
	assert.Contains(t, out, "1 unparsed")
	assert.Contains(t, out, "! missing")
	assert.Contains(t, out, "Transactions: 3 | Total: R$ 100,50")
}

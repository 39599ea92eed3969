package plan

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `locale: pt
banks:
  - Inter
sources:
  - label: march
    file: march.txt
  - file: /abs/april.xls
  - text: "Nubank Bia PIX R$ 2,00"
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pt", p.Locale)
	assert.Equal(t, []string{"Inter"}, p.Banks)
	require.Len(t, p.Sources, 3)

	assert.Equal(t, "march", p.Sources[0].Label)
	assert.Equal(t, "april.xls", p.Sources[1].Label)
	assert.Equal(t, "source 3", p.Sources[2].Label)

	got, err := p.Path(p.Sources[0])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "march.txt"), got)

	got, err = p.Path(p.Sources[1])
	require.NoError(t, err)
	assert.Equal(t, "/abs/april.xls", got)

	got, err = p.Path(p.Sources[2])
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := &Plan{}
	got, err := p.Path(Source{File: "~/pix/a.txt"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pix", "a.txt"), got)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		empty bool
	}{
		{"no sources", "locale: pt\n", true},
		{"empty list", "sources: []\n", true},
		{"neither", "sources:\n  - label: x\n", false},
		{"both", "sources:\n  - file: a.txt\n    text: b\n", false},
		{"bad yaml", "sources: [", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			if tt.empty {
				assert.ErrorIs(t, err, ErrEmptyPlan)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	p, err := Parse([]byte(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	p.Print(&buf)
	expected := "Locale: pt\n" +
		"Extra banks: Inter\n" +
		"[1] label=march file=march.txt\n" +
		"[2] label=april.xls file=/abs/april.xls\n" +
		"[3] label=source 3 text=22 bytes\n"
	assert.Equal(t, expected, buf.String())
}

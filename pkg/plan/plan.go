package plan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrEmptyPlan = errors.New("plan has no sources")

// Plan is a batch of inputs extracted in one run.
type Plan struct {
	Locale  string   `yaml:"locale"`
	Format  string   `yaml:"format"`
	Banks   []string `yaml:"banks"`
	Sources []Source `yaml:"sources"`

	dir string
}

// Source is one entry of a plan. Either File or Text must be set.
type Source struct {
	Label string `yaml:"label"`
	File  string `yaml:"file"`
	Text  string `yaml:"text"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	p.dir = filepath.Dir(path)
	return p, nil
}

func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Sources) == 0 {
		return nil, ErrEmptyPlan
	}
	for i := range p.Sources {
		s := &p.Sources[i]
		if s.File == "" && s.Text == "" {
			return nil, fmt.Errorf("source %d has neither file nor text", i+1)
		}
		if s.File != "" && s.Text != "" {
			return nil, fmt.Errorf("source %d has both file and text", i+1)
		}
		if s.Label == "" {
			s.Label = s.defaultLabel(i)
		}
	}
	return &p, nil
}

func (s Source) defaultLabel(i int) string {
	if s.File != "" {
		return filepath.Base(s.File)
	}
	return fmt.Sprintf("source %d", i+1)
}

// Path resolves a source file: "~" expands to the home directory and relative
// paths are taken from the plan's own directory.
func (p *Plan) Path(s Source) (string, error) {
	if s.File == "" {
		return "", nil
	}
	path := s.File
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	if !filepath.IsAbs(path) && p.dir != "" {
		path = filepath.Join(p.dir, path)
	}
	return path, nil
}

func (p *Plan) Print(w io.Writer) {
	if p.Locale != "" {
		fmt.Fprintf(w, "Locale: %s\n", p.Locale)
	}
	if len(p.Banks) > 0 {
		fmt.Fprintf(w, "Extra banks: %s\n", strings.Join(p.Banks, ", "))
	}
	for i, s := range p.Sources {
		if s.File != "" {
			fmt.Fprintf(w, "[%d] label=%s file=%s\n", i+1, s.Label, s.File)
			continue
		}
		fmt.Fprintf(w, "[%d] label=%s text=%d bytes\n", i+1, s.Label, len(s.Text))
	}
}

package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/pixu/pkg/config"
	"github.com/yurifrl/pixu/pkg/parser"
	"github.com/yurifrl/pixu/pkg/render"
	"github.com/yurifrl/pixu/pkg/source"
)

const outputSuffix = "-pixu"

type Processor struct {
	config   *config.Config
	logger   *log.Logger
	parser   *parser.Parser
	renderer *render.Renderer
}

func NewProcessor(cfg *config.Config, logger *log.Logger) (*Processor, error) {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return &Processor{
		config:   cfg,
		logger:   logger,
		parser:   newParser(cfg, logger),
		renderer: render.New(format, render.LabelsFor(cfg.Locale)),
	}, nil
}

func newParser(cfg *config.Config, logger *log.Logger, extraBanks ...string) *parser.Parser {
	banks := append(append([]string{}, cfg.Banks...), extraBanks...)
	return parser.New(logger,
		parser.WithBanks(banks...),
		parser.WithWorkers(cfg.Workers),
	)
}

func (p *Processor) Parser() *parser.Parser {
	return p.parser
}

func (p *Processor) Renderer() *render.Renderer {
	return p.renderer
}

// ExtractFile reads one input (a path or "-" for stdin) and extracts it.
func (p *Processor) ExtractFile(path string) (*parser.Result, error) {
	return extractFile(p.parser, path)
}

func extractFile(ps *parser.Parser, path string) (*parser.Result, error) {
	text, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ps.ProcessBytes([]byte(text), filepath.Base(path)), nil
}

// ProcessDirectory renders every supported file in dir next to it, or into
// the configured output directory. Failing files are logged and skipped.
func (p *Processor) ProcessDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}

	for _, entry := range entries {
		if err := p.processEntry(dir, entry); err != nil {
			p.logger.Error("failed to process entry", "file", entry.Name(), "error", err)
		}
	}

	return nil
}

func (p *Processor) processEntry(dir string, entry os.DirEntry) error {
	if entry.IsDir() || !source.Supported(entry.Name()) {
		return nil
	}
	if strings.HasSuffix(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())), outputSuffix) {
		return nil
	}

	inputPath := filepath.Join(dir, entry.Name())
	outFile := p.determineOutputPath(inputPath, entry.Name())

	p.logger.Info("processing file", "path", inputPath)

	res, err := p.ExtractFile(inputPath)
	if err != nil {
		return fmt.Errorf("error extracting file: %w", err)
	}

	if err := p.writeResult(res, outFile); err != nil {
		return err
	}

	p.logger.Info("processed file successfully",
		"input", inputPath,
		"output", outFile,
		"transfers", res.Summary.TotalCount,
		"total", res.Summary.TotalDisplay)
	return nil
}

func (p *Processor) determineOutputPath(inputPath, fileName string) string {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	outExt := p.renderer.Format().Ext()
	if p.config.GetOutputPath() != "" {
		return filepath.Join(p.config.GetOutputPath(), baseName+outputSuffix+outExt)
	}
	return strings.TrimSuffix(inputPath, ext) + outputSuffix + outExt
}

func (p *Processor) writeResult(res *parser.Result, outputPath string) error {
	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer output.Close()

	if err := p.renderer.Render(output, render.FromResult(res, nil)); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	return output.Close()
}

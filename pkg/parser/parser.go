package parser

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/iter"

	"github.com/yurifrl/pixu/pkg/grammar"
	"github.com/yurifrl/pixu/pkg/models"
)

var lineBreak = regexp.MustCompile(`\r\n|\n|\r`)

type Parser struct {
	logger  *log.Logger
	grammar *grammar.Grammar
	workers int
}

type Option func(*Parser)

// WithBanks adds bank aliases to the default vocabulary.
func WithBanks(aliases ...string) Option {
	return func(p *Parser) {
		if len(aliases) == 0 {
			return
		}
		p.grammar = grammar.New(p.grammar.Vocabulary().With(aliases...))
	}
}

// WithWorkers bounds how many blocks are scanned at once. Zero or less uses
// one goroutine per CPU.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		if n < 0 {
			n = 0
		}
		p.workers = n
	}
}

func New(logger *log.Logger, opts ...Option) *Parser {
	p := &Parser{
		logger:  logger,
		grammar: grammar.New(nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SplitBlocks splits raw input on line breaks.
func SplitBlocks(text string) []string {
	if text == "" {
		return nil
	}
	return lineBreak.Split(text, -1)
}

// Extract splits text into blocks and extracts every transfer in them.
func (p *Parser) Extract(text string) *Result {
	return p.ExtractBlocks(SplitBlocks(text))
}

// ProcessBytes extracts transfers from raw input; name only labels log lines.
func (p *Parser) ProcessBytes(data []byte, name string) *Result {
	p.logger.Debug("processing input", "name", name, "bytes", len(data))
	return p.Extract(string(data))
}

type block struct {
	index int
	text  string
}

// ExtractBlocks scans blocks independently and aggregates them in input
// order. It never fails: amounts that cannot be normalized contribute zero
// and are reported as diagnostics.
func (p *Parser) ExtractBlocks(texts []string) *Result {
	blocks := make([]block, len(texts))
	for i, text := range texts {
		blocks[i] = block{index: i, text: text}
	}

	mapper := iter.Mapper[block, BlockResult]{MaxGoroutines: p.workers}
	results := mapper.Map(blocks, func(b *block) BlockResult {
		return p.extractBlock(b.index, b.text)
	})

	res := &Result{Blocks: results}
	total := Summary{}
	for _, br := range results {
		res.Transfers = append(res.Transfers, br.Transfers...)
		res.Diagnostics = append(res.Diagnostics, br.Diagnostics...)
		total = total.add(br.Subtotal, br.Count)
	}
	res.Summary = total.finish()

	p.logger.Debug("extraction complete",
		"blocks", len(results),
		"transfers", res.Summary.TotalCount,
		"total", res.Summary.TotalDisplay,
		"diagnostics", len(res.Diagnostics))
	return res
}

func (p *Parser) extractBlock(index int, text string) BlockResult {
	br := BlockResult{Index: index, Text: text}
	if strings.TrimSpace(text) == "" {
		br.finish()
		return br
	}

	for _, m := range p.grammar.FindAll(text) {
		t, err := normalize(m, index)
		if err != nil {
			// a match always carries an amount, so this is a grammar bug
			p.logger.Error("dropping mention", "block", index, "mention", m.Text(), "error", err)
			continue
		}
		if amountErr := t.AmountErr(); amountErr != nil {
			p.logger.Warn("amount not normalized", "block", index, "raw", t.AmountRaw(), "error", amountErr)
			br.Diagnostics = append(br.Diagnostics, Diagnostic{
				Block: index,
				Field: grammar.FieldAmount.String(),
				Raw:   t.AmountRaw(),
				Err:   amountErr,
			})
		}
		p.logger.Debug("transfer found", "block", index, "bank", t.Bank(), "payee", t.Payee(), "amount", t.AmountDisplay())
		br.Transfers = append(br.Transfers, t)
	}
	br.finish()
	return br
}

// Summarize totals any subset of transfers, such as a filtered one.
func Summarize(transfers []*models.Transfer) Summary {
	s := Summary{}
	for _, t := range transfers {
		s = s.add(t.Amount(), 1)
	}
	return s.finish()
}

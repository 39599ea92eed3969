package parser

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/pixu/pkg/models"
	"github.com/yurifrl/pixu/pkg/money"
)

// Summary totals the transfers of one extraction.
type Summary struct {
	TotalAmount  decimal.Decimal
	TotalCount   int
	TotalDisplay string
}

func (s Summary) add(amount decimal.Decimal, count int) Summary {
	s.TotalAmount = s.TotalAmount.Add(amount)
	s.TotalCount += count
	return s
}

func (s Summary) finish() Summary {
	s.TotalDisplay = money.Format(s.TotalAmount)
	return s
}

// BlockResult holds the transfers found in one block. Subtotal is kept as a
// number next to its display form so totals never go through a rendered
// string.
type BlockResult struct {
	Index           int
	Text            string
	Transfers       []*models.Transfer
	Subtotal        decimal.Decimal
	SubtotalDisplay string
	Count           int
	Diagnostics     []Diagnostic
}

func (b *BlockResult) finish() {
	amounts := make([]decimal.Decimal, len(b.Transfers))
	for i, t := range b.Transfers {
		amounts[i] = t.Amount()
	}
	b.Subtotal = money.Sum(amounts...)
	b.SubtotalDisplay = money.Format(b.Subtotal)
	b.Count = len(b.Transfers)
}

// Diagnostic reports a field that could not be normalized. The transfer is
// still part of the result.
type Diagnostic struct {
	Block int
	Field string
	Raw   string
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("block %d: %s %q: %v", d.Block, d.Field, d.Raw, d.Err)
}

// Result is everything extracted from one input.
type Result struct {
	Blocks      []BlockResult
	Transfers   []*models.Transfer
	Summary     Summary
	Diagnostics []Diagnostic
}

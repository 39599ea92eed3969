package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/pixu/pkg/csv"
	"github.com/yurifrl/pixu/pkg/models"
)

type filters struct {
	bank      string
	payee     string
	minAmount string
	maxAmount string
}

func (f *filters) empty() bool {
	return f.bank == "" && f.payee == "" && f.minAmount == "" && f.maxAmount == ""
}

func (f *filters) toFilterFunc() (csv.FilterFunc[*models.Transfer], error) {
	if f.empty() {
		return nil, nil
	}
	minAmount, err := parseBound("min", f.minAmount)
	if err != nil {
		return nil, err
	}
	maxAmount, err := parseBound("max", f.maxAmount)
	if err != nil {
		return nil, err
	}

	return func(t *models.Transfer) bool {
		if f.bank != "" && !strings.EqualFold(t.Bank(), f.bank) {
			return false
		}
		if f.payee != "" && !strings.Contains(strings.ToLower(t.Payee()), strings.ToLower(f.payee)) {
			return false
		}
		if minAmount != nil && t.Amount().LessThan(*minAmount) {
			return false
		}
		if maxAmount != nil && t.Amount().GreaterThan(*maxAmount) {
			return false
		}
		return true
	}, nil
}

// parseBound reads "1234.56" or "1234,56".
func parseBound(name, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, s, err)
	}
	return &d, nil
}

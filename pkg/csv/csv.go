package csv

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/pixu/pkg/models"
)

type Record interface {
	ID() string
	Bank() string
	Payee() string
	Key() models.PaymentKey
	Branch() string
	Account() string
	Amount() decimal.Decimal
	AmountDisplay() string
	Valid() bool
}

type FilterFunc[T Record] func(T) bool

var header = []string{"id", "bank", "payee", "key_type", "key", "branch", "account", "amount", "amount_display"}

// Create writes records that pass filter as CSV. Amounts that could not be
// normalized leave the amount column empty and keep the raw text in
// amount_display.
func Create[T Record](records []T, filter FilterFunc[T]) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		amount := ""
		if r.Valid() {
			amount = r.Amount().StringFixed(2)
		}
		key := r.Key()
		row := []string{
			r.ID(),
			r.Bank(),
			r.Payee(),
			key.Kind.String(),
			key.Value,
			r.Branch(),
			r.Account(),
			amount,
			r.AmountDisplay(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

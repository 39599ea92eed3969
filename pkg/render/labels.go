package render

import (
	"strings"

	"github.com/yurifrl/pixu/pkg/models"
)

// Labels holds the words used by the text and pretty formats.
type Labels struct {
	Bank    string
	Payee   string
	Key     string
	Branch  string
	Account string
	Amount  string
	Count   string
	Total   string

	// MissingF is shown for bank, branch and account when they were not
	// found; MissingM is shown for the key.
	MissingF string
	MissingM string
}

var English = Labels{
	Bank:     "Bank",
	Payee:    "Name",
	Key:      "Pix Key",
	Branch:   "Branch",
	Account:  "Account",
	Amount:   "Amount (R$)",
	Count:    "Transactions",
	Total:    "Total",
	MissingF: models.Unknown,
	MissingM: models.Unknown,
}

var Portuguese = Labels{
	Bank:     "Banco",
	Payee:    "Nome",
	Key:      "Chave Pix",
	Branch:   "Agência",
	Account:  "Conta",
	Amount:   "Valor (R$)",
	Count:    "Contas Pix",
	Total:    "Total",
	MissingF: "Não informada",
	MissingM: "Não informado",
}

// LabelsFor picks labels by locale. Anything other than "pt" or "pt-BR" gets
// English.
func LabelsFor(locale string) Labels {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "pt", "pt-br", "pt_br":
		return Portuguese
	default:
		return English
	}
}

type field struct {
	label string
	value string
}

func (l Labels) fields(t *models.Transfer) []field {
	return []field{
		{l.Bank, l.orMissing(t.Bank(), l.MissingF)},
		{l.Payee, t.Payee()},
		{l.Key, l.orMissing(t.Key().String(), l.MissingM)},
		{l.Branch, l.orMissing(t.Branch(), l.MissingF)},
		{l.Account, l.orMissing(t.Account(), l.MissingF)},
		{l.Amount, t.AmountDisplay()},
	}
}

func (l Labels) orMissing(v, missing string) string {
	if v == models.Unknown || v == "" {
		return missing
	}
	return v
}

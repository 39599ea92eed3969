package parser

import (
	"strings"

	"github.com/yurifrl/pixu/pkg/grammar"
	"github.com/yurifrl/pixu/pkg/models"
)

// keyPriority is the order in which captured keys are picked.
var keyPriority = []struct {
	field grammar.Field
	kind  models.KeyKind
}{
	{grammar.FieldTaxID, models.KeyTaxID},
	{grammar.FieldEmail, models.KeyEmail},
	{grammar.FieldPhone, models.KeyPhone},
}

func normalize(m grammar.Match, block int) (*models.Transfer, error) {
	bank, _ := m.Get(grammar.FieldBank)
	payee, _ := m.Get(grammar.FieldPayee)
	branch, _ := m.Get(grammar.FieldBranch)
	account, _ := m.Get(grammar.FieldAccount)
	amount, _ := m.Get(grammar.FieldAmount)

	kind, value := pickKey(m)

	return models.NewTransfer(bank).
		SetPayee(cleanPayee(payee)).
		SetKey(kind, value).
		SetBranch(branch).
		SetAccount(account).
		SetAmountFromText(amount).
		SetBlock(block).
		SetSpan(m.Start, m.End).
		Build()
}

func pickKey(m grammar.Match) (models.KeyKind, string) {
	for _, k := range keyPriority {
		if v, ok := m.Get(k.field); ok && strings.TrimSpace(v) != "" {
			return k.kind, strings.TrimSpace(v)
		}
	}
	return models.KeyUnknown, ""
}

// cleanPayee trims the name and drops a trailing PIX keyword left over by the
// capture boundary.
func cleanPayee(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, grammar.KeyLiteral)
	return strings.TrimSpace(name)
}

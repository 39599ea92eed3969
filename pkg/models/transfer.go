package models

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yurifrl/pixu/pkg/money"
)

// Unknown is the sentinel stored in fields a mention did not carry.
const Unknown = "unknown"

// KeyKind identifies which Pix key variant a Transfer carries.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyTaxID
	KeyEmail
	KeyPhone
)

func (k KeyKind) String() string {
	switch k {
	case KeyTaxID:
		return "tax_id"
	case KeyEmail:
		return "email"
	case KeyPhone:
		return "phone"
	default:
		return Unknown
	}
}

// PaymentKey is the identifier a transfer was addressed to. Value is empty
// when Kind is KeyUnknown.
type PaymentKey struct {
	Kind  KeyKind
	Value string
}

func (k PaymentKey) String() string {
	if k.Kind == KeyUnknown {
		return Unknown
	}
	return k.Value
}

// Span is a [Start, End) range of rune offsets inside a block.
type Span struct {
	Start int
	End   int
}

// Overlaps reports whether both spans share at least one position.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Transfer is one Pix transfer recognized in pasted notification text.
type Transfer struct {
	bank          string
	payee         string
	key           PaymentKey
	branch        string
	account       string
	amount        decimal.Decimal
	amountRaw     string
	amountDisplay string
	amountErr     error
	block         int
	span          Span
}

// TransferBuilder assembles a Transfer field by field.
type TransferBuilder struct {
	t   Transfer
	raw bool
}

// NewTransfer starts a builder for a transfer from the given bank. An empty
// bank is stored as Unknown.
func NewTransfer(bank string) *TransferBuilder {
	b := &TransferBuilder{}
	b.t.bank = orUnknown(bank)
	b.t.branch = Unknown
	b.t.account = Unknown
	return b
}

func (b *TransferBuilder) SetPayee(payee string) *TransferBuilder {
	b.t.payee = payee
	return b
}

func (b *TransferBuilder) SetKey(kind KeyKind, value string) *TransferBuilder {
	value = strings.TrimSpace(value)
	if value == "" {
		kind = KeyUnknown
	}
	if kind == KeyUnknown {
		value = ""
	}
	b.t.key = PaymentKey{Kind: kind, Value: value}
	return b
}

func (b *TransferBuilder) SetBranch(branch string) *TransferBuilder {
	b.t.branch = orUnknown(branch)
	return b
}

func (b *TransferBuilder) SetAccount(account string) *TransferBuilder {
	b.t.account = orUnknown(account)
	return b
}

// SetAmountFromText normalizes a captured amount such as "1.234,56". When the
// text cannot be normalized the raw string becomes the display value and the
// amount stays zero; the failure is kept and exposed through AmountErr.
func (b *TransferBuilder) SetAmountFromText(raw string) *TransferBuilder {
	b.raw = true
	b.t.amountRaw = raw
	amount, err := money.Parse(raw)
	if err != nil {
		b.t.amount = decimal.Zero
		b.t.amountDisplay = raw
		b.t.amountErr = err
		return b
	}
	b.t.amount = amount
	b.t.amountDisplay = money.Format(amount)
	b.t.amountErr = nil
	return b
}

func (b *TransferBuilder) SetBlock(index int) *TransferBuilder {
	b.t.block = index
	return b
}

func (b *TransferBuilder) SetSpan(start, end int) *TransferBuilder {
	b.t.span = Span{Start: start, End: end}
	return b
}

// Build validates and returns the transfer. A transfer without an amount
// capture is not a transfer.
func (b *TransferBuilder) Build() (*Transfer, error) {
	if !b.raw || strings.TrimSpace(b.t.amountRaw) == "" {
		return nil, errors.New("transfer has no amount")
	}
	if b.t.span.End < b.t.span.Start {
		return nil, fmt.Errorf("invalid span [%d,%d)", b.t.span.Start, b.t.span.End)
	}
	t := b.t
	return &t, nil
}

func (t *Transfer) Bank() string { return t.bank }
func (t *Transfer) Payee() string { return t.payee }
func (t *Transfer) Key() PaymentKey { return t.key }
func (t *Transfer) Branch() string { return t.branch }
func (t *Transfer) Account() string { return t.account }
func (t *Transfer) Amount() decimal.Decimal { return t.amount }
func (t *Transfer) AmountRaw() string { return t.amountRaw }
func (t *Transfer) AmountDisplay() string { return t.amountDisplay }
func (t *Transfer) AmountErr() error { return t.amountErr }
func (t *Transfer) Block() int { return t.block }
func (t *Transfer) Span() Span { return t.span }

// Valid reports whether the amount was normalized.
func (t *Transfer) Valid() bool { return t.amountErr == nil }

// ID returns a short stable identifier built from bank, payee, key and amount.
func (t *Transfer) ID() string {
	input := strings.ToLower(fmt.Sprintf("%s|%s|%s|%s",
		strings.TrimSpace(t.bank), strings.TrimSpace(t.payee), t.key.Value, t.amountRaw))
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash)[:8]
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

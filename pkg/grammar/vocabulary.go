package grammar

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultBanks lists the bank names and aliases recognized at the start of a
// mention. "PIX" is kept as an alias because notifications often open with it
// when the bank is omitted.
var DefaultBanks = []string{
	"Bradesco", "Brasil", "Itaú", "Itau", "CEF", "Nubank", "Santander", "Basa",
	"Banco do Brasil", "Banco Safra", "Caixa Econômica", "Banrisul", "Banestes",
	"Banco Original", "BTG", "XP Investimentos", "Neon", "C6 Bank", "XP", "C6",
	"Caixa Economica", "PIX", "Sicredi",
}

// Vocabulary is a priority-ordered list of bank aliases. Longer aliases come
// first so "Banco do Brasil" and "XP Investimentos" win over "Brasil" and
// "XP" whenever both could start a mention.
type Vocabulary struct {
	aliases []string
}

// NewVocabulary builds a vocabulary from aliases, dropping blanks and
// case-insensitive duplicates. Aliases of equal length keep their given order.
func NewVocabulary(aliases ...string) *Vocabulary {
	seen := make(map[string]bool, len(aliases))
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		a = strings.TrimSpace(a)
		key := strings.ToLower(a)
		if a == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return &Vocabulary{aliases: out}
}

// DefaultVocabulary returns the vocabulary built from DefaultBanks.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(DefaultBanks...)
}

// With returns a new vocabulary holding v's aliases plus extra.
func (v *Vocabulary) With(extra ...string) *Vocabulary {
	all := make([]string, 0, len(v.aliases)+len(extra))
	all = append(all, v.aliases...)
	all = append(all, extra...)
	return NewVocabulary(all...)
}

// Aliases returns the aliases in priority order.
func (v *Vocabulary) Aliases() []string {
	out := make([]string, len(v.aliases))
	copy(out, v.aliases)
	return out
}

// Canonical returns the alias spelled as declared for a case-insensitive
// match of name.
func (v *Vocabulary) Canonical(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, a := range v.aliases {
		if strings.EqualFold(a, name) {
			return a, true
		}
	}
	return "", false
}

// Rule matches any alias, most specific first.
func (v *Vocabulary) Rule() Rule {
	rules := make([]Rule, len(v.aliases))
	for i, a := range v.aliases {
		rules[i] = Lit(a)
	}
	return Alt(rules...)
}

// Package grammar recognizes Pix transfer mentions in free text.
//
// A mention reads, in order: a bank alias with an optional "(123)" code, the
// payee name, the PIX keyword, an optional key (CPF, Email or Fone), an
// optional branch (AG), an optional account (CC, C/C, CPOUP...) and a
// mandatory "R$" amount. Each part is a Rule that can be matched on its own.
package grammar

import "unicode"

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isWord(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsSpace(r) || r == '.' || r == '-'
}

func isTaxIDRune(r rune) bool { return isDigit(r) || r == '.' || r == '-' }

func isEmailRune(r rune) bool { return isWord(r) || r == '.' || r == '-' }

func isPhoneRune(r rune) bool {
	return isDigit(r) || unicode.IsSpace(r) || r == '(' || r == ')' || r == '-'
}

func isBranchRune(r rune) bool { return isDigit(r) || isASCIILetter(r) || r == '-' }

func isAccountRune(r rune) bool { return isWord(r) || r == '.' || r == '-' }

func isSeparator(r rune) bool { return r == '.' || r == ',' }

// KeyLiteral is the keyword separating the payee from the key section.
const KeyLiteral = "PIX"

var (
	ws0 = Repeat(unicode.IsSpace, 0, -1, false)
	ws1 = Repeat(unicode.IsSpace, 1, -1, false)

	// BankCode is the "(336)" style code some notifications append to the bank.
	BankCode = Seq(Lit("("), Repeat(isDigit, 1, -1, false), Lit(")"))

	// Payee is the shortest run of letters, spaces, dots and hyphens that lets
	// the rest of the mention match.
	Payee = Capture(FieldPayee, Repeat(isNameRune, 1, -1, true))

	KeyMarker = Seq(ws1, Lit(KeyLiteral), ws1)

	TaxID = Seq(Lit("CPF"), ws0, Capture(FieldTaxID, Repeat(isTaxIDRune, 1, -1, false)))

	Email = Seq(Lit("Email"), ws0, Capture(FieldEmail, Seq(
		Repeat(isEmailRune, 1, -1, false),
		Lit("@"),
		Repeat(isEmailRune, 1, -1, false),
	)))

	Phone = Seq(Lit("Fone"), ws0, Capture(FieldPhone, Seq(
		Opt(Lit("+")),
		Repeat(isPhoneRune, 1, -1, false),
	)))

	// Key is optional as a whole, trailing whitespace included, so a mention
	// without any key still matches.
	Key = Opt(Seq(Alt(TaxID, Email, Phone), ws1))

	Branch = Opt(Seq(Lit("AG"), ws0, Capture(FieldBranch, Repeat(isBranchRune, 1, -1, false))))

	AccountMarker = Seq(
		Lit("C"),
		Opt(Alt(Lit("/"), Repeat(unicode.IsSpace, 1, 1, false))),
		Alt(Lit("C"), Lit("POUP"), Lit("C/C"), Lit("CC"), Lit("CPOUP")),
	)

	Account = Opt(Seq(AccountMarker, ws0, Capture(FieldAccount, Repeat(isAccountRune, 1, -1, false))))

	// AmountDigits is 1 to 3 digits, any number of 3 digit groups and a final
	// 2 digit group, each group led by '.' or ','.
	AmountDigits = Seq(
		Repeat(isDigit, 1, 3, false),
		Star(Seq(Repeat(isSeparator, 1, 1, false), Repeat(isDigit, 3, 3, false))),
		Repeat(isSeparator, 1, 1, false),
		Repeat(isDigit, 2, 2, false),
	)

	Amount = Seq(Lit("R$"), ws0, Capture(FieldAmount, AmountDigits))
)

// Bank matches an alias of v followed by an optional bank code, which is
// consumed but not captured.
func Bank(v *Vocabulary) Rule {
	return Seq(Capture(FieldBank, v.Rule()), ws0, Opt(BankCode), ws0)
}

// Mention is the full rule for one transfer mention.
func Mention(v *Vocabulary) Rule {
	return Seq(Bank(v), Payee, KeyMarker, Key, Branch, ws0, Account, ws0, Amount)
}

// Grammar finds mentions in blocks of text.
type Grammar struct {
	vocab   *Vocabulary
	mention Rule
}

// New returns a grammar over v, or over the default vocabulary when v is nil.
func New(v *Vocabulary) *Grammar {
	if v == nil {
		v = DefaultVocabulary()
	}
	return &Grammar{vocab: v, mention: Mention(v)}
}

// Vocabulary returns the bank aliases the grammar recognizes.
func (g *Grammar) Vocabulary() *Vocabulary {
	return g.vocab
}

// FindAll returns every mention in text, left to right. Scanning resumes
// after each match, so matches never overlap.
func (g *Grammar) FindAll(text string) []Match {
	in := []rune(text)
	var matches []Match
	for pos := 0; pos < len(in); {
		m, ok := matchAt(g.mention, in, pos)
		if !ok || m.End <= pos {
			pos++
			continue
		}
		matches = append(matches, m)
		pos = m.End
	}
	return matches
}

// MatchFull runs r against text and succeeds only if r can consume all of it.
func MatchFull(r Rule, text string) (Match, bool) {
	in := []rune(text)
	s := &state{in: in}
	if !r(s, 0, func(e int) bool { return e == len(in) }) {
		return Match{}, false
	}
	return Match{Start: 0, End: len(in), text: in, caps: s.caps}, true
}

package grammar

import (
	"strings"
	"unicode/utf8"
)

// Field names a capture slot of a mention.
type Field int

const (
	FieldBank Field = iota
	FieldPayee
	FieldTaxID
	FieldEmail
	FieldPhone
	FieldBranch
	FieldAccount
	FieldAmount
	fieldCount
)

var fieldNames = [fieldCount]string{"bank", "payee", "tax_id", "email", "phone", "branch", "account", "amount"}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

type span struct {
	start, end int
	set        bool
}

type state struct {
	in   []rune
	caps [fieldCount]span
}

// Rule matches at pos and offers every end position it can reach to k, most
// preferred first, stopping as soon as k accepts one. Captures taken on a
// path that k rejects are undone before the next alternative is tried.
type Rule func(s *state, pos int, k func(end int) bool) bool

func empty(_ *state, pos int, k func(int) bool) bool {
	return k(pos)
}

// Seq matches rules one after the other.
func Seq(rules ...Rule) Rule {
	if len(rules) == 0 {
		return empty
	}
	head, tail := rules[0], Seq(rules[1:]...)
	return func(s *state, pos int, k func(int) bool) bool {
		return head(s, pos, func(mid int) bool {
			return tail(s, mid, k)
		})
	}
}

// Alt tries rules in order.
func Alt(rules ...Rule) Rule {
	return func(s *state, pos int, k func(int) bool) bool {
		for _, r := range rules {
			if r(s, pos, k) {
				return true
			}
		}
		return false
	}
}

// Opt prefers matching r and falls back to matching nothing.
func Opt(r Rule) Rule {
	return Alt(r, empty)
}

// Star matches r as many times as possible, giving repetitions back one by one.
func Star(r Rule) Rule {
	var self Rule
	self = func(s *state, pos int, k func(int) bool) bool {
		if r(s, pos, func(end int) bool { return end > pos && self(s, end, k) }) {
			return true
		}
		return k(pos)
	}
	return self
}

// Capture records the text matched by r into field f.
func Capture(f Field, r Rule) Rule {
	return func(s *state, pos int, k func(int) bool) bool {
		prev := s.caps[f]
		return r(s, pos, func(end int) bool {
			s.caps[f] = span{start: pos, end: end, set: true}
			if k(end) {
				return true
			}
			s.caps[f] = prev
			return false
		})
	}
}

// Lit matches word case-insensitively.
func Lit(word string) Rule {
	n := utf8.RuneCountInString(word)
	return func(s *state, pos int, k func(int) bool) bool {
		if pos+n > len(s.in) {
			return false
		}
		if !strings.EqualFold(string(s.in[pos:pos+n]), word) {
			return false
		}
		return k(pos + n)
	}
}

// Repeat matches between least and most runes accepted by class; most < 0 means
// unbounded. Greedy repeats offer the longest run first, lazy ones the
// shortest.
func Repeat(class func(rune) bool, least, most int, lazy bool) Rule {
	return func(s *state, pos int, k func(int) bool) bool {
		n := 0
		for pos+n < len(s.in) && (most < 0 || n < most) && class(s.in[pos+n]) {
			n++
		}
		if n < least {
			return false
		}
		if lazy {
			for i := least; i <= n; i++ {
				if k(pos + i) {
					return true
				}
			}
			return false
		}
		for i := n; i >= least; i-- {
			if k(pos + i) {
				return true
			}
		}
		return false
	}
}

// Match is one recognized mention inside a block. Start and End are rune
// offsets.
type Match struct {
	Start int
	End   int
	text  []rune
	caps  [fieldCount]span
}

// Get returns the text captured for f and whether f was captured at all.
func (m Match) Get(f Field) (string, bool) {
	if f < 0 || f >= fieldCount {
		return "", false
	}
	c := m.caps[f]
	if !c.set {
		return "", false
	}
	return string(m.text[c.start:c.end]), true
}

// Text returns the whole mention.
func (m Match) Text() string {
	return string(m.text[m.Start:m.End])
}

// MatchPrefix runs r anchored at the start of text and returns the preferred
// match, whatever follows it.
func MatchPrefix(r Rule, text string) (Match, bool) {
	return matchAt(r, []rune(text), 0)
}

func matchAt(r Rule, in []rune, pos int) (Match, bool) {
	s := &state{in: in}
	end := -1
	if !r(s, pos, func(e int) bool {
		end = e
		return true
	}) {
		return Match{}, false
	}
	return Match{Start: pos, End: end, text: in, caps: s.caps}, true
}

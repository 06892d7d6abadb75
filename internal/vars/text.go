package vars

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/values"
)

const (
	textValuesMsg = "chosen value(s) for a text variable" +
		" must be given as a string or a slice of strings"
	textSingleMsg = "must specify a single string" +
		" when using inequality operators"
)

// Eq selects records whose text is exactly one of the given values.
// Accepts a string or a slice of strings.
func (v *TextVariable) Eq(value any) (clause.Clause, error) {
	return v.match(value, clause.TextIs, true)
}

// Ne selects records whose text is none of the given values.
func (v *TextVariable) Ne(value any) (clause.Clause, error) {
	return v.match(value, clause.TextIs, false)
}

// Equals is the named form of Eq.
func (v *TextVariable) Equals(value any) (clause.Clause, error) {
	return v.Eq(value)
}

// Contains selects records whose text contains any of the given values.
func (v *TextVariable) Contains(value any) (clause.Clause, error) {
	return v.match(value, clause.TextContains, true)
}

// StartsWith selects records whose text begins with any of the given
// values.
func (v *TextVariable) StartsWith(value any) (clause.Clause, error) {
	return v.match(value, clause.TextBegins, true)
}

// EndsWith selects records whose text ends with any of the given values.
func (v *TextVariable) EndsWith(value any) (clause.Clause, error) {
	return v.match(value, clause.TextEnds, true)
}

// Matches selects records whose text matches any of the given wildcard
// patterns ("?" for one character, "*" for any run).
func (v *TextVariable) Matches(value any) (clause.Clause, error) {
	return v.match(value, clause.TextIs, true)
}

// Before selects records whose text sorts strictly before the given value;
// with allowEqual, at or before it.
func (v *TextVariable) Before(value any, allowEqual bool) (clause.Clause, error) {
	op := "<"
	if allowEqual {
		op = "<="
	}
	return v.rangeBound(op, value)
}

// After selects records whose text sorts strictly after the given value;
// with allowEqual, at or after it.
func (v *TextVariable) After(value any, allowEqual bool) (clause.Clause, error) {
	op := ">"
	if allowEqual {
		op = ">="
	}
	return v.rangeBound(op, value)
}

// Between selects records whose text sorts between start and end,
// inclusive. The comparison is case-insensitive, matching the server's
// collation rule: upper and lower case of the same letter sort equal, all
// other characters by code point. start must not sort after end.
func (v *TextVariable) Between(start, end any) (clause.Clause, error) {
	lo, err := values.String(start, textValuesMsg, textSingleMsg)
	if err != nil {
		return nil, err
	}
	hi, err := values.String(end, textValuesMsg, textSingleMsg)
	if err != nil {
		return nil, err
	}
	if caselessCompare(lo, hi) > 0 {
		return nil, values.NewInputError(fmt.Sprintf(
			"`start` must sort before `end`,"+
				" but '%s' sorts after '%s' when compared case-insensitively",
			lo, hi,
		))
	}
	rules := []string{
		fmt.Sprintf(">=%q", lo),
		fmt.Sprintf("<=%q", hi),
	}
	return clause.NewText(v.table, v.name, rules, clause.TextRanges, true, ""), nil
}

func (v *TextVariable) match(value any, matchType clause.TextMatchType, include bool) (clause.Clause, error) {
	vals, err := values.StringList(value, textValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewText(v.table, v.name, vals, matchType, include, ""), nil
}

func (v *TextVariable) rangeBound(op string, value any) (clause.Clause, error) {
	val, err := values.String(value, textValuesMsg, textSingleMsg)
	if err != nil {
		return nil, err
	}
	rule := fmt.Sprintf("%s%q", op, val)
	return clause.NewText(v.table, v.name, []string{rule}, clause.TextRanges, true, ""), nil
}

// caselessCompare orders two strings under the server's collation rule:
// upper and lower case forms of the same rune compare equal, everything
// else by code point. Returns -1, 0 or 1.
func caselessCompare(a, b string) int {
	for len(a) > 0 && len(b) > 0 {
		ra, sizeA := utf8.DecodeRuneInString(a)
		rb, sizeB := utf8.DecodeRuneInString(b)
		la, lb := unicode.ToLower(ra), unicode.ToLower(rb)
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		a, b = a[sizeA:], b[sizeB:]
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

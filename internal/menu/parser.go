// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package menu synchronizes the site's locale menu documents with the
// trilingual kitchen menu text file.
//
// A sync parses the text into items, merges them into the authoritative
// (base-language) document, then regenerates every secondary-language
// document from the merged result through per-language translation maps.
package menu

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/drunkowl/site-tools/pkg/types"
)

// ErrItemBeforeCategory is returned when an item line appears before any
// valid category header.
var ErrItemBeforeCategory = errors.New("item line before any category header")

// priceSeparators are the dash runes that split an item name from its price.
// A plain hyphen is not one of them: names such as "Coca-Cola" contain it.
const priceSeparators = "—–"

// separatorRunes make up horizontal-rule lines such as "---".
const separatorRunes = "-—–=_*"

// LineKind classifies one source line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineSeparator
	LineCategory
	LineItem
	LineUnknown
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineSeparator:
		return "separator"
	case LineCategory:
		return "category"
	case LineItem:
		return "item"
	default:
		return "unknown"
	}
}

// SkippedLine records a non-empty line that produced neither a category nor
// an item.
type SkippedLine struct {
	Number int
	Text   string
	Reason string
}

// ParseResult is the outcome of parsing a kitchen menu text.
type ParseResult struct {
	Items   []types.MenuItem
	Skipped []SkippedLine
}

// parseState is the accumulator folded over the source lines. category is
// nil until the first valid header and then sticks until the next one.
type parseState struct {
	category *types.TrilingualLabel
	result   ParseResult
}

// ParseFile reads and parses the kitchen menu at path.
func ParseFile(path string) (ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading menu source: %w", err)
	}
	if !utf8.Valid(data) {
		return ParseResult{}, fmt.Errorf("menu source %s is not valid UTF-8", path)
	}
	res, err := Parse(string(data))
	if err != nil {
		return ParseResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Parse turns kitchen menu text into items in file order. Malformed lines
// are skipped and reported in the result; only an item line with no
// preceding category header is an error.
func Parse(text string) (ParseResult, error) {
	var st parseState
	for i, line := range strings.Split(text, "\n") {
		var err error
		st, err = st.step(i+1, line)
		if err != nil {
			return ParseResult{}, err
		}
	}
	return st.result, nil
}

func (st parseState) step(number int, raw string) (parseState, error) {
	line := strings.TrimSpace(norm.NFC.String(raw))
	skip := func(reason string) (parseState, error) {
		st.result.Skipped = append(st.result.Skipped, SkippedLine{Number: number, Text: line, Reason: reason})
		return st, nil
	}

	switch Classify(line) {
	case LineBlank, LineSeparator:
		return st, nil

	case LineCategory:
		label, ok := splitLabel(line)
		if !ok {
			return skip("category header does not have three non-empty parts")
		}
		st.category = &label
		return st, nil

	case LineItem:
		namePart, pricePart := cutPrice(line)
		name, ok := splitLabel(namePart)
		if !ok {
			return skip("item name does not have three non-empty parts")
		}
		if st.category == nil {
			return st, fmt.Errorf("line %d %q: %w", number, line, ErrItemBeforeCategory)
		}
		st.result.Items = append(st.result.Items, types.MenuItem{
			Category: *st.category,
			Name:     name,
			Price:    extractPrice(pricePart),
		})
		return st, nil

	default:
		return skip("neither a category header nor an item line")
	}
}

// Classify reports the kind of a trimmed source line.
func Classify(line string) LineKind {
	switch {
	case line == "":
		return LineBlank
	case isSeparatorLine(line):
		return LineSeparator
	case strings.ContainsAny(line, priceSeparators):
		return LineItem
	case strings.Contains(line, "/"):
		return LineCategory
	default:
		return LineUnknown
	}
}

func isSeparatorLine(line string) bool {
	if utf8.RuneCountInString(line) < 3 {
		return false
	}
	for _, r := range line {
		if !strings.ContainsRune(separatorRunes, r) {
			return false
		}
	}
	return true
}

// splitLabel splits "A / B / C" into a trimmed triple. It fails unless there
// are exactly three non-empty parts.
func splitLabel(s string) (types.TrilingualLabel, bool) {
	var label types.TrilingualLabel
	parts := strings.Split(s, "/")
	if len(parts) != len(label) {
		return label, false
	}
	for i, p := range parts {
		label[i] = strings.TrimSpace(p)
		if label[i] == "" {
			return label, false
		}
	}
	return label, true
}

// cutPrice splits an item line at its first price separator.
func cutPrice(line string) (name, price string) {
	i := strings.IndexAny(line, priceSeparators)
	if i < 0 {
		return line, ""
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return line[:i], line[i+size:]
}

// extractPrice keeps only digits and periods, so "12.50 ₾" becomes "12.50".
func extractPrice(s string) string {
	kept := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(kept)
}

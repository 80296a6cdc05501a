package transform

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/dataset"
)

// stripWhitespace trims leading and trailing whitespace from every
// non-null value in the target columns
type stripWhitespace struct{}

func (stripWhitespace) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	targets := targetColumns(ds, params)
	out := ds.Clone()
	changed := 0
	for _, name := range targets {
		col, ok := out.Column(name)
		if !ok {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			v := col.Value(i)
			if trimmed := strings.TrimSpace(v); trimmed != v {
				col.Set(i, trimmed)
				changed++
			}
		}
	}
	return out, result(KindStripWhitespace, params, changed, targets), nil
}

// caseChange rewrites values to one letter case. Title casing goes
// through x/text so non-ASCII names fold correctly.
type caseChange struct {
	mode string
}

func (c caseChange) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	var kind Kind
	var conv func(string) string
	switch c.mode {
	case "upper":
		kind, conv = KindUppercase, strings.ToUpper
	case "title":
		caser := cases.Title(language.Und)
		kind, conv = KindTitlecase, caser.String
	default:
		kind, conv = KindLowercase, strings.ToLower
	}

	targets := targetColumns(ds, params)
	out := ds.Clone()
	changed := 0
	for _, name := range targets {
		col, ok := out.Column(name)
		if !ok {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			v := col.Value(i)
			if folded := conv(v); folded != v {
				col.Set(i, folded)
				changed++
			}
		}
	}
	return out, result(kind, params, changed, targets), nil
}

// emptyToNull converts empty-string values into nulls
type emptyToNull struct{}

func (emptyToNull) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	targets := targetColumns(ds, params)
	out := ds.Clone()
	changed := 0
	for _, name := range targets {
		col, ok := out.Column(name)
		if !ok {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			if !col.IsNull(i) && col.Value(i) == "" {
				col.SetNull(i)
				changed++
			}
		}
	}
	return out, result(KindEmptyToNull, params, changed, targets), nil
}

// dateLayouts are the input formats standardizeDates recognizes, tried
// in order
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// standardizeDates rewrites recognizable date values into one layout
// (the "format" parameter, ISO by default). Values that match no known
// layout are left untouched.
type standardizeDates struct{}

func (standardizeDates) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	target := params.String("format", "2006-01-02")
	targets := targetColumns(ds, params)
	out := ds.Clone()
	changed := 0
	for _, name := range targets {
		col, ok := out.Column(name)
		if !ok {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			v := strings.TrimSpace(col.Value(i))
			parsed, ok := parseDate(v)
			if !ok {
				continue
			}
			if formatted := parsed.Format(target); formatted != col.Value(i) {
				col.Set(i, formatted)
				changed++
			}
		}
	}
	return out, result(KindStandardizeDates, params, changed, targets), nil
}

func parseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package transform

import (
	"strconv"
	"strings"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/dataset"
)

// toNumeric canonicalizes numeric strings (stripping thousands
// separators and surrounding whitespace); values that do not parse
// become null, mirroring a coercing numeric conversion.
type toNumeric struct{}

func (toNumeric) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
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
			f, ok := dataset.ParseNumeric(strings.ReplaceAll(v, ",", ""))
			if !ok {
				col.SetNull(i)
				changed++
				continue
			}
			if canonical := strconv.FormatFloat(f, 'f', -1, 64); canonical != v {
				col.Set(i, canonical)
				changed++
			}
		}
	}
	return out, result(KindToNumeric, params, changed, targets), nil
}

// booleanValues maps accepted tokens to their canonical form
var booleanValues = map[string]string{
	"true": "true", "t": "true", "yes": "true", "y": "true", "1": "true", "on": "true",
	"false": "false", "f": "false", "no": "false", "n": "false", "0": "false", "off": "false",
}

// toBoolean canonicalizes boolean-like strings to true/false; values
// outside the token set become null
type toBoolean struct{}

func (toBoolean) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
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
			canonical, ok := booleanValues[strings.ToLower(strings.TrimSpace(v))]
			if !ok {
				col.SetNull(i)
				changed++
				continue
			}
			if canonical != v {
				col.Set(i, canonical)
				changed++
			}
		}
	}
	return out, result(KindToBoolean, params, changed, targets), nil
}

// toDatetime parses date-like strings and rewrites them in one layout
// (the "format" parameter, ISO by default); unparseable values become
// null
type toDatetime struct{}

func (toDatetime) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
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
			v := col.Value(i)
			parsed, ok := parseDate(strings.TrimSpace(v))
			if !ok {
				col.SetNull(i)
				changed++
				continue
			}
			if formatted := parsed.Format(target); formatted != v {
				col.Set(i, formatted)
				changed++
			}
		}
	}
	return out, result(KindToDatetime, params, changed, targets), nil
}

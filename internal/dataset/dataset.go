// Package dataset provides the in-memory columnar representation that
// profiling, detection, and transformation operate on. Values are held
// as strings with an explicit null mask; an empty string is a value,
// not a null.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Column is a named vector of string values with a null mask
type Column struct {
	Name   string
	values []string
	nulls  []bool
}

// NewColumn creates a column where every value is non-null
func NewColumn(name string, values []string) *Column {
	return &Column{
		Name:   name,
		values: values,
		nulls:  make([]bool, len(values)),
	}
}

// NewColumnWithNulls creates a column with an explicit null mask.
// The mask length must match the value length.
func NewColumnWithNulls(name string, values []string, nulls []bool) (*Column, error) {
	if len(values) != len(nulls) {
		return nil, fmt.Errorf("column %s: %d values but %d null flags", name, len(values), len(nulls))
	}
	return &Column{Name: name, values: values, nulls: nulls}, nil
}

// Len returns the number of rows in the column
func (c *Column) Len() int {
	return len(c.values)
}

// IsNull reports whether row i holds a null
func (c *Column) IsNull(i int) bool {
	return c.nulls[i]
}

// Value returns the value at row i. Callers should check IsNull first;
// null rows return the empty string.
func (c *Column) Value(i int) string {
	return c.values[i]
}

// Set stores a non-null value at row i
func (c *Column) Set(i int, v string) {
	c.values[i] = v
	c.nulls[i] = false
}

// SetNull marks row i as null
func (c *Column) SetNull(i int) {
	c.values[i] = ""
	c.nulls[i] = true
}

// NullCount returns the number of null rows
func (c *Column) NullCount() int {
	n := 0
	for _, isNull := range c.nulls {
		if isNull {
			n++
		}
	}
	return n
}

// NonNull returns all non-null values in row order
func (c *Column) NonNull() []string {
	out := make([]string, 0, len(c.values))
	for i, v := range c.values {
		if !c.nulls[i] {
			out = append(out, v)
		}
	}
	return out
}

// Floats parses the column's non-null values as floats, returning the
// parsed values, their row indices, and the ratio of non-null values
// that parsed successfully.
func (c *Column) Floats() (values []float64, rows []int, ratio float64) {
	nonNull := 0
	for i, v := range c.values {
		if c.nulls[i] {
			continue
		}
		nonNull++
		f, ok := ParseNumeric(v)
		if !ok {
			continue
		}
		values = append(values, f)
		rows = append(rows, i)
	}
	if nonNull == 0 {
		return nil, nil, 0
	}
	return values, rows, float64(len(values)) / float64(nonNull)
}

// clone returns a deep copy of the column
func (c *Column) clone() *Column {
	values := make([]string, len(c.values))
	copy(values, c.values)
	nulls := make([]bool, len(c.nulls))
	copy(nulls, c.nulls)
	return &Column{Name: c.Name, values: values, nulls: nulls}
}

// ParseNumeric parses a value as a float, tolerating surrounding
// whitespace. Empty strings do not parse.
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Dataset is an ordered collection of equal-length columns
type Dataset struct {
	columns []*Column
	byName  map[string]*Column
}

// New creates a dataset from columns. All columns must have the same
// length and unique names.
func New(columns ...*Column) (*Dataset, error) {
	d := &Dataset{byName: make(map[string]*Column, len(columns))}
	for _, col := range columns {
		if err := d.addColumn(col); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dataset) addColumn(col *Column) error {
	if _, exists := d.byName[col.Name]; exists {
		return fmt.Errorf("duplicate column name %q", col.Name)
	}
	if len(d.columns) > 0 && col.Len() != d.columns[0].Len() {
		return fmt.Errorf("column %q has %d rows, expected %d", col.Name, col.Len(), d.columns[0].Len())
	}
	d.columns = append(d.columns, col)
	d.byName[col.Name] = col
	return nil
}

// RowCount returns the number of rows
func (d *Dataset) RowCount() int {
	if len(d.columns) == 0 {
		return 0
	}
	return d.columns[0].Len()
}

// ColumnCount returns the number of columns
func (d *Dataset) ColumnCount() int {
	return len(d.columns)
}

// ColumnNames returns the column names in dataset order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column
func (d *Dataset) Column(name string) (*Column, bool) {
	col, ok := d.byName[name]
	return col, ok
}

// Columns returns all columns in dataset order
func (d *Dataset) Columns() []*Column {
	return d.columns
}

// Clone returns a deep copy. Transformers clone and mutate the copy so
// the input dataset is never changed.
func (d *Dataset) Clone() *Dataset {
	cloned := &Dataset{
		columns: make([]*Column, len(d.columns)),
		byName:  make(map[string]*Column, len(d.columns)),
	}
	for i, col := range d.columns {
		c := col.clone()
		cloned.columns[i] = c
		cloned.byName[c.Name] = c
	}
	return cloned
}

// RowKey builds a hashable key for row i across all columns, used for
// duplicate-row detection. Null and empty values are distinguished.
func (d *Dataset) RowKey(i int) string {
	var sb strings.Builder
	for _, col := range d.columns {
		if col.IsNull(i) {
			sb.WriteByte(0x01)
		} else {
			sb.WriteString(col.Value(i))
		}
		sb.WriteByte(0x00)
	}
	return sb.String()
}

// SelectRows returns a new dataset containing only the given rows, in
// the given order
func (d *Dataset) SelectRows(rows []int) *Dataset {
	out := &Dataset{
		columns: make([]*Column, len(d.columns)),
		byName:  make(map[string]*Column, len(d.columns)),
	}
	for ci, col := range d.columns {
		values := make([]string, len(rows))
		nulls := make([]bool, len(rows))
		for ri, r := range rows {
			values[ri] = col.values[r]
			nulls[ri] = col.nulls[r]
		}
		c := &Column{Name: col.Name, values: values, nulls: nulls}
		out.columns[ci] = c
		out.byName[c.Name] = c
	}
	return out
}

// DropColumns returns a new dataset without the named columns
func (d *Dataset) DropColumns(names ...string) *Dataset {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := &Dataset{byName: make(map[string]*Column)}
	for _, col := range d.columns {
		if drop[col.Name] {
			continue
		}
		c := col.clone()
		out.columns = append(out.columns, c)
		out.byName[c.Name] = c
	}
	return out
}

// RenameColumn renames a column in place
func (d *Dataset) RenameColumn(from, to string) error {
	col, ok := d.byName[from]
	if !ok {
		return fmt.Errorf("no column %q", from)
	}
	if _, exists := d.byName[to]; exists {
		return fmt.Errorf("column %q already exists", to)
	}
	delete(d.byName, from)
	col.Name = to
	d.byName[to] = col
	return nil
}

// AppendColumn adds a column to the end of the dataset
func (d *Dataset) AppendColumn(col *Column) error {
	return d.addColumn(col)
}

// MemoryEstimate approximates the in-memory footprint in bytes
func (d *Dataset) MemoryEstimate() int64 {
	var total int64
	for _, col := range d.columns {
		total += int64(len(col.Name))
		for _, v := range col.values {
			total += int64(len(v)) + 16 // string header
		}
		total += int64(len(col.nulls))
	}
	return total
}

// Head returns a dataset with at most n leading rows
func (d *Dataset) Head(n int) *Dataset {
	if n >= d.RowCount() {
		return d.Clone()
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return d.SelectRows(rows)
}

package reports

import (
	"bytes"
	"encoding/json"
)

// Row is one spreadsheet row. It marshals to a JSON object whose keys keep
// the column order they were set in.
type Row struct {
	columns []string
	values  map[string]string
}

func NewRow() *Row {
	return &Row{values: map[string]string{}}
}

func (r *Row) Set(column, value string) *Row {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
	return r
}

func (r *Row) Get(column string) string { return r.values[column] }

func (r *Row) Columns() []string { return append([]string(nil), r.columns...) }

func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

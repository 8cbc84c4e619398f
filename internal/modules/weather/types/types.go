package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is a sensor value as written by the producer: a JSON number (kept in
// its original textual form) or a JSON string. A null or missing value is not Valid.
type Value struct {
	Text    string
	Numeric bool
	Valid   bool
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{Text: s, Valid: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be a number or a string, got %s", data)
	}
	*v = Value{Text: n.String(), Numeric: true, Valid: true}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	if v.Numeric {
		return []byte(v.Text), nil
	}
	return json.Marshal(v.Text)
}

func (v Value) String() string {
	return v.Text
}

type Reading struct {
	Value     Value  `json:"value"`
	Timestamp string `json:"timestamp"`
}

// Dataset is the whole content of a readings file. Sequences are in insertion
// order, the most recent reading last.
type Dataset struct {
	Temperature []Reading `json:"temperature"`
	Humidity    []Reading `json:"humidity"`
}

// Latest returns the last reading of seq. ok is false when seq is empty.
func Latest(seq []Reading) (r Reading, ok bool) {
	if len(seq) == 0 {
		return Reading{}, false
	}
	return seq[len(seq)-1], true
}

// Snapshot is the latest state of a dataset as served by the JSON API.
// Absent readings encode as null.
type Snapshot struct {
	Temperature *Reading `json:"temperature"`
	Humidity    *Reading `json:"humidity"`
	LastUpdated *string  `json:"lastUpdated"`
}

// NewSnapshot follows the card's rules: lastUpdated comes from the temperature
// reading only.
func NewSnapshot(ds Dataset) Snapshot {
	var s Snapshot
	if t, ok := Latest(ds.Temperature); ok {
		s.Temperature = &t
		if t.Timestamp != "" {
			ts := t.Timestamp
			s.LastUpdated = &ts
		}
	}
	if h, ok := Latest(ds.Humidity); ok {
		s.Humidity = &h
	}
	return s
}

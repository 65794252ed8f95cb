// Package interchange converts roster documents to and from their text
// interchange form (JSON or YAML). The raw schema mirrors the document
// layout exactly, including key order of the shift-code catalog and of each
// employee's shifts, so that exports of an unmodified roster are
// byte-identical.
package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RawDocument is the top-level interchange structure.
type RawDocument struct {
	Metadata  *RawMetadata  `json:"metadata" yaml:"metadata"`
	Employees []RawEmployee `json:"employees" yaml:"employees"`
}

// RawMetadata holds the roster window and catalog as written in the file.
type RawMetadata struct {
	Title      string        `json:"title" yaml:"title"`
	StartDate  string        `json:"startDate" yaml:"startDate"`
	EndDate    string        `json:"endDate" yaml:"endDate"`
	ShiftCodes RawShiftCodes `json:"shiftCodes" yaml:"shiftCodes"`
}

// RawShiftCode is the value side of a shiftCodes entry.
type RawShiftCode struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// RawEmployee is one employee record as written in the file.
type RawEmployee struct {
	ID     *int      `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	Shifts RawShifts `json:"shifts" yaml:"shifts"`
}

// shape records what kind of value an ordered mapping field held in the
// source text, so validation can tell "absent" from "not a mapping".
type shape int

const (
	shapeAbsent shape = iota
	shapeNull
	shapeMapping
	shapeOther
)

func (s shape) missing() bool { return s == shapeAbsent || s == shapeNull }

// ShiftCodeEntry is one code of the catalog, in file order.
type ShiftCodeEntry struct {
	Code string
	RawShiftCode
}

// RawShiftCodes is the ordered shiftCodes mapping.
type RawShiftCodes struct {
	Entries []ShiftCodeEntry
	shape   shape
}

// ShiftEntry is one date -> code pair, in file order.
type ShiftEntry struct {
	Date string
	Code string
}

// RawShifts is an employee's ordered shifts mapping.
type RawShifts struct {
	Entries []ShiftEntry
	shape   shape
}

// NewRawShiftCodes builds a mapping-shaped catalog.
func NewRawShiftCodes(entries ...ShiftCodeEntry) RawShiftCodes {
	if entries == nil {
		entries = []ShiftCodeEntry{}
	}
	return RawShiftCodes{Entries: entries, shape: shapeMapping}
}

// NewRawShifts builds a mapping-shaped shifts field.
func NewRawShifts(entries ...ShiftEntry) RawShifts {
	if entries == nil {
		entries = []ShiftEntry{}
	}
	return RawShifts{Entries: entries, shape: shapeMapping}
}

// ── JSON ─────────────────────────────────────────────────────────────────────

func (c *RawShiftCodes) UnmarshalJSON(data []byte) error {
	c.Entries = nil
	s, err := decodeJSONObject(data, func(key string, dec *json.Decoder) error {
		var v RawShiftCode
		if err := dec.Decode(&v); err != nil {
			return err
		}
		c.Entries = append(c.Entries, ShiftCodeEntry{Code: key, RawShiftCode: v})
		return nil
	})
	c.shape = s
	return err
}

func (c RawShiftCodes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, e.Code)
		buf.WriteString(`:{"name":`)
		writeJSONString(&buf, e.Name)
		buf.WriteString(`,"color":`)
		writeJSONString(&buf, e.Color)
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *RawShifts) UnmarshalJSON(data []byte) error {
	s.Entries = nil
	sh, err := decodeJSONObject(data, func(key string, dec *json.Decoder) error {
		var code string
		if err := dec.Decode(&code); err != nil {
			return err
		}
		s.Entries = append(s.Entries, ShiftEntry{Date: key, Code: code})
		return nil
	})
	s.shape = sh
	return err
}

func (s RawShifts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, e.Date)
		buf.WriteByte(':')
		writeJSONString(&buf, e.Code)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeJSONObject walks a JSON object key by key, calling fn for every
// member. Non-object values are reported through the returned shape rather
// than as an error.
func decodeJSONObject(data []byte, fn func(key string, dec *json.Decoder) error) (shape, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return shapeNull, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return shapeOther, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return shapeOther, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return shapeMapping, err
		}
		key, ok := tok.(string)
		if !ok {
			return shapeMapping, fmt.Errorf("unexpected object key %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return shapeMapping, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return shapeMapping, err
	}
	return shapeMapping, nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
}

// ── YAML ─────────────────────────────────────────────────────────────────────

func (c *RawShiftCodes) UnmarshalYAML(node *yaml.Node) error {
	c.Entries = nil
	s, err := decodeYAMLMapping(node, func(key string, value *yaml.Node) error {
		var v RawShiftCode
		if err := value.Decode(&v); err != nil {
			return err
		}
		c.Entries = append(c.Entries, ShiftCodeEntry{Code: key, RawShiftCode: v})
		return nil
	})
	c.shape = s
	return err
}

func (c RawShiftCodes) MarshalYAML() (interface{}, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range c.Entries {
		value := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		value.Content = append(value.Content,
			yamlString("name"), yamlString(e.Name),
			yamlString("color"), yamlString(e.Color),
		)
		m.Content = append(m.Content, yamlString(e.Code), value)
	}
	return m, nil
}

func (s *RawShifts) UnmarshalYAML(node *yaml.Node) error {
	s.Entries = nil
	sh, err := decodeYAMLMapping(node, func(key string, value *yaml.Node) error {
		var code string
		if err := value.Decode(&code); err != nil {
			return err
		}
		s.Entries = append(s.Entries, ShiftEntry{Date: key, Code: code})
		return nil
	})
	s.shape = sh
	return err
}

func (s RawShifts) MarshalYAML() (interface{}, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range s.Entries {
		m.Content = append(m.Content, yamlString(e.Date), yamlString(e.Code))
	}
	return m, nil
}

func decodeYAMLMapping(node *yaml.Node, fn func(key string, value *yaml.Node) error) (shape, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return shapeNull, nil
	}
	if node.Kind != yaml.MappingNode {
		return shapeOther, nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return shapeMapping, err
		}
	}
	return shapeMapping, nil
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

package precision

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Value 元数据中的原始字段, 保留源文本, 不经过 float64
type Value struct {
	raw   string
	valid bool
}

func NewValue(raw string) Value {
	return Value{raw: raw, valid: true}
}

func (v Value) String() string {
	return v.raw
}

// Valid 源数据为标量(数字或字符串)时为 true
func (v Value) Valid() bool {
	return v.valid
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = Value{}
		return nil
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewValue(s)
	case c == '-' || (c >= '0' && c <= '9'):
		// 数字保留原文, 例如 0.1 不会变成 0.1000000000000000055...
		*v = NewValue(string(data))
	default:
		// null / bool / object / array
		*v = Value{raw: string(data)}
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() != "!!null" && node.ShortTag() != "!!bool" {
		*v = NewValue(node.Value)
		return nil
	}
	*v = Value{raw: node.Value}
	return nil
}

func (v Value) MarshalYAML() (interface{}, error) {
	if !v.valid {
		return nil, nil
	}
	return v.raw, nil
}

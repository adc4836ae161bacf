package models

import "encoding/json"

// BoolFromInt - custom type для обработки bool значений из JSON как чисел или булев
type BoolFromInt bool

// UnmarshalJSON реализует custom unmarshaling для BoolFromInt
func (b *BoolFromInt) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case bool:
		*b = BoolFromInt(v)
	case float64:
		*b = BoolFromInt(v != 0)
	case int:
		*b = BoolFromInt(v != 0)
	case int64:
		*b = BoolFromInt(v != 0)
	case string:
		*b = BoolFromInt(v == "true" || v == "1")
	default:
		*b = false
	}

	return nil
}

// MarshalJSON реализует custom marshaling для BoolFromInt
func (b BoolFromInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// Package jsonx converts values to and from JSON text.
package jsonx

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// api sorts map keys so equal values always produce equal text. Selector
// combinators are not HTML escaped.
var api = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// ToJSON encodes exported fields of v.
func ToJSON(v any) (string, error) {
	s, err := api.MarshalToString(v)
	if err != nil {
		return "", fmt.Errorf("unable to encode %T: %w", v, err)
	}
	return s, nil
}

// FromJSON decodes data into a new T, so the result has all methods of T.
// Unknown fields are ignored and missing ones are left zero.
func FromJSON[T any](data string) (*T, error) {
	v := new(T)
	if err := api.UnmarshalFromString(data, v); err != nil {
		return nil, fmt.Errorf("unable to decode %T: %w", v, err)
	}
	return v, nil
}
